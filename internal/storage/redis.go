package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/constants"
)

// ErrNotFound 键不存在时返回，包装底层的redis.Nil
var ErrNotFound = redis.Nil

// Redis 提供文本MD5去重缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("Redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis %s 失败: %w", cfg.Address, err)
	}

	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// md5RecordExpire 返回MD5映射的过期时长
func (r *Redis) md5RecordExpire() time.Duration {
	days := r.config.MD5RecordExpireDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// CacheTextMD5 记录文本MD5到解析记录ID的映射，并把MD5加入去重集合
func (r *Redis) CacheTextMD5(ctx context.Context, md5sum, recordID string) error {
	if md5sum == "" || recordID == "" {
		return fmt.Errorf("md5和记录ID均不能为空")
	}

	key := fmt.Sprintf(constants.KeyTextMD5ToRecordID, md5sum)
	pipe := r.Client.TxPipeline()
	pipe.Set(ctx, key, recordID, r.md5RecordExpire())
	pipe.SAdd(ctx, constants.KeyTextMD5Set, md5sum)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入MD5缓存失败: %w", err)
	}
	return nil
}

// LookupTextMD5 通过文本MD5查找已有的解析记录ID，未命中时返回ErrNotFound
func (r *Redis) LookupTextMD5(ctx context.Context, md5sum string) (string, error) {
	key := fmt.Sprintf(constants.KeyTextMD5ToRecordID, md5sum)
	recordID, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return recordID, nil
}

// HasTextMD5 判断文本MD5是否在去重集合中
func (r *Redis) HasTextMD5(ctx context.Context, md5sum string) (bool, error) {
	return r.Client.SIsMember(ctx, constants.KeyTextMD5Set, md5sum).Result()
}

// AddFileMD5 把原始文件MD5加入去重集合
func (r *Redis) AddFileMD5(ctx context.Context, md5sum string) error {
	return r.Client.SAdd(ctx, constants.KeyFileMD5Set, md5sum).Err()
}

// HasFileMD5 判断原始文件MD5是否已存在
func (r *Redis) HasFileMD5(ctx context.Context, md5sum string) (bool, error) {
	return r.Client.SIsMember(ctx, constants.KeyFileMD5Set, md5sum).Result()
}
