package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/constants"
)

// newTestRedis 启动miniredis并连接适配器
func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	r, err := NewRedisAdapter(&config.RedisConfig{
		Address:             mr.Addr(),
		PoolSize:            2,
		DialTimeoutSeconds:  1,
		ReadTimeoutSeconds:  1,
		WriteTimeoutSeconds: 1,
		MD5RecordExpireDays: 7,
	})
	require.NoError(t, err, "连接miniredis不应失败")
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

// TestCacheAndLookupTextMD5 测试MD5映射的写入与查询
func TestCacheAndLookupTextMD5(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	md5sum := "d41d8cd98f00b204e9800998ecf8427e"
	require.NoError(t, r.CacheTextMD5(ctx, md5sum, "record-123"))

	recordID, err := r.LookupTextMD5(ctx, md5sum)
	require.NoError(t, err)
	assert.Equal(t, "record-123", recordID)

	ok, err := r.HasTextMD5(ctx, md5sum)
	require.NoError(t, err)
	assert.True(t, ok, "MD5必须同时进入去重集合")

	// 映射键必须带过期时间
	key := fmt.Sprintf(constants.KeyTextMD5ToRecordID, md5sum)
	assert.Greater(t, mr.TTL(key), time.Duration(0), "映射键必须设置TTL")
}

// TestLookupTextMD5Miss 测试未命中时返回ErrNotFound
func TestLookupTextMD5Miss(t *testing.T) {
	r, _ := newTestRedis(t)

	_, err := r.LookupTextMD5(context.Background(), "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestCacheTextMD5Validation 测试空参数校验
func TestCacheTextMD5Validation(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	assert.Error(t, r.CacheTextMD5(ctx, "", "record-123"))
	assert.Error(t, r.CacheTextMD5(ctx, "abc", ""))
}

// TestFileMD5Set 测试原始文件MD5去重集合
func TestFileMD5Set(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	ok, err := r.HasFileMD5(ctx, "aaa")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.AddFileMD5(ctx, "aaa"))
	ok, err = r.HasFileMD5(ctx, "aaa")
	require.NoError(t, err)
	assert.True(t, ok)
}
