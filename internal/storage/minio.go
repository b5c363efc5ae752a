package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/logger"
)

// MinIO 提供原始简历文件的对象存储
type MinIO struct {
	client          *minio.Client
	cfg             *config.MinIOConfig
	originalsBucket string
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	originalsBucket := cfg.OriginalsBucket
	if originalsBucket == "" {
		originalsBucket = "resume-originals"
	}

	m := &MinIO{
		client:          client,
		cfg:             cfg,
		originalsBucket: originalsBucket,
	}

	if err := m.ensureBucketExists(originalsBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保存储桶 %s 存在失败: %w", originalsBucket, err)
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Str("bucket", originalsBucket).Msg("MinIO客户端初始化成功")
	return m, nil
}

// ensureBucketExists 确保存储桶存在，不存在时创建
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	ctx := context.Background()
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
		logger.Info().Str("bucket", bucketName).Msg("创建存储桶成功")
	}
	return nil
}

// originalObjectName 按记录ID生成原始文件的对象路径
func originalObjectName(recordID, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("originals/%s%s", recordID, ext)
}

// UploadOriginal 上传原始简历文件，返回对象路径
func (m *MinIO) UploadOriginal(ctx context.Context, recordID, filename string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("上传内容不能为空")
	}
	objectName := originalObjectName(recordID, filename)

	opts := minio.PutObjectOptions{ContentType: contentType}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.originalsBucket, objectName, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return "", fmt.Errorf("上传原始文件到 %s/%s 失败: %w", m.originalsBucket, objectName, err)
	}
	return objectName, nil
}

// DownloadOriginal 下载原始简历文件内容
func (m *MinIO) DownloadOriginal(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalsBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", m.originalsBucket, objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 内容失败: %w", m.originalsBucket, objectName, err)
	}
	return data, nil
}

// DeleteOriginal 删除原始简历文件
func (m *MinIO) DeleteOriginal(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, m.originalsBucket, objectName, minio.RemoveObjectOptions{})
}
