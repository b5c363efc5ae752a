package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/logger"
	"github.com/cyb3r-cych0/resume-parser/internal/storage/models"
)

// MySQL 提供解析记录的持久化
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := db.AutoMigrate(&models.ParseRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	logger.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("MySQL连接并迁移成功")
	return &MySQL{db: db, cfg: cfg}, nil
}

// NewMySQLFromDB 复用已建立的GORM连接，不做迁移，测试与嵌入场景使用
func NewMySQLFromDB(db *gorm.DB) *MySQL {
	return &MySQL{db: db}
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// SaveParseRecord 保存或更新一条解析记录
func (m *MySQL) SaveParseRecord(ctx context.Context, record *models.ParseRecord) error {
	if record == nil {
		return fmt.Errorf("解析记录不能为空")
	}
	return m.db.WithContext(ctx).Save(record).Error
}

// GetParseRecordByID 通过记录ID获取解析记录
func (m *MySQL) GetParseRecordByID(ctx context.Context, recordID string) (*models.ParseRecord, error) {
	var record models.ParseRecord
	if err := m.db.WithContext(ctx).First(&record, "record_id = ?", recordID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindParseRecordByTextMD5 通过文本MD5查找最近一条解析记录，未找到时返回gorm.ErrRecordNotFound
func (m *MySQL) FindParseRecordByTextMD5(ctx context.Context, md5sum string) (*models.ParseRecord, error) {
	var record models.ParseRecord
	err := m.db.WithContext(ctx).
		Where("raw_text_md5 = ?", md5sum).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListParseRecords 按创建时间倒序分页列出解析记录
func (m *MySQL) ListParseRecords(ctx context.Context, page, pageSize int) ([]models.ParseRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := m.db.WithContext(ctx).Model(&models.ParseRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计解析记录数失败: %w", err)
	}

	var records []models.ParseRecord
	err := m.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询解析记录失败: %w", err)
	}
	return records, total, nil
}

// UpdateParseRecordStatus 更新解析记录的处理状态
func (m *MySQL) UpdateParseRecordStatus(ctx context.Context, recordID string, status string) error {
	return m.db.WithContext(ctx).
		Model(&models.ParseRecord{}).
		Where("record_id = ?", recordID).
		Update("status", status).Error
}
