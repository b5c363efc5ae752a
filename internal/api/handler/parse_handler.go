package handler

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/extractor"
	"github.com/cyb3r-cych0/resume-parser/internal/logger"
	"github.com/cyb3r-cych0/resume-parser/internal/parser"
	"github.com/cyb3r-cych0/resume-parser/internal/storage"
	"github.com/cyb3r-cych0/resume-parser/internal/storage/models"
	"github.com/cyb3r-cych0/resume-parser/internal/types"
	"github.com/cyb3r-cych0/resume-parser/internal/worker"
)

// 解析状态
const (
	StatusParsed    = "parsed"
	StatusDuplicate = "duplicate"
	StatusQueued    = "queued"
)

// ErrEmptyInput 输入文本为空
var ErrEmptyInput = errors.New("输入文本不能为空")

// ErrFileTooLarge 上传文件超过大小限制
var ErrFileTooLarge = errors.New("上传文件超过大小限制")

// ParseHandler 解析请求处理器，协调提取管道与各存储组件。
// MySQL/Redis/MinIO/RabbitMQ均为可选，缺失时退化为纯解析模式。
type ParseHandler struct {
	cfg      *config.Config
	storage  *storage.Storage
	registry *parser.Registry
	engine   *extractor.Engine
}

// NewParseHandler 创建解析请求处理器
func NewParseHandler(cfg *config.Config, store *storage.Storage, registry *parser.Registry, engine *extractor.Engine) *ParseHandler {
	if registry == nil {
		registry = parser.DefaultRegistry()
	}
	if engine == nil {
		engine = extractor.NewEngine()
	}
	return &ParseHandler{
		cfg:      cfg,
		storage:  store,
		registry: registry,
		engine:   engine,
	}
}

// ParseResponse 解析请求响应
type ParseResponse struct {
	RecordID string             `json:"record_id,omitempty"`
	Status   string             `json:"status"`
	Result   *types.ParseResult `json:"result,omitempty"`
}

// HandleParseText 同步解析纯文本简历。
// 文本MD5命中去重缓存时直接返回已有记录，不重复解析。
func (h *ParseHandler) HandleParseText(ctx context.Context, rawText string) (*ParseResponse, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	sum := md5.Sum([]byte(rawText))
	textMD5 := hex.EncodeToString(sum[:])

	if resp, ok := h.lookupDuplicate(ctx, textMD5); ok {
		return resp, nil
	}

	recordID := uuid.NewString()
	record, err := worker.BuildParseRecord(ctx, h.engine, recordID, rawText, h.cfg.Extractor.Version)
	if err != nil {
		return nil, err
	}

	h.persistRecord(ctx, record)

	result, err := decodeResult(record)
	if err != nil {
		return nil, err
	}
	return &ParseResponse{RecordID: recordID, Status: StatusParsed, Result: result}, nil
}

// HandleParseFile 解析上传的简历文件。
// async为true且MinIO与RabbitMQ可用时转为异步：上传原始文件并投递解析任务。
func (h *ParseHandler) HandleParseFile(ctx context.Context, filename string, data []byte, contentType string, async bool) (*ParseResponse, error) {
	maxBytes := int64(h.cfg.Extractor.MaxFileSizeMB) * 1024 * 1024
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %d字节", ErrFileTooLarge, len(data))
	}
	if !h.registry.Supports(filename) {
		return nil, &parser.UnsupportedFormatError{Extension: strings.ToLower(filepath.Ext(filename))}
	}

	if async && h.storage != nil && h.storage.MinIO != nil && h.storage.RabbitMQ != nil {
		return h.enqueueParseTask(ctx, filename, data, contentType)
	}

	rawText, err := h.registry.ExtractText(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	resp, err := h.HandleParseText(ctx, rawText)
	if err != nil {
		return nil, err
	}

	// 解析成功后尽力归档原始文件，失败不影响响应
	if resp.Status == StatusParsed && h.storage != nil && h.storage.MinIO != nil {
		objectPath, upErr := h.storage.MinIO.UploadOriginal(ctx, resp.RecordID, filename, data, contentType)
		if upErr != nil {
			logger.Warn().Err(upErr).Str("record_id", resp.RecordID).Msg("归档原始文件失败")
		} else if h.storage.MySQL != nil {
			h.attachOriginalFile(ctx, resp.RecordID, filename, objectPath)
		}
	}
	return resp, nil
}

// HandleGetRecord 按ID查询解析记录
func (h *ParseHandler) HandleGetRecord(ctx context.Context, recordID string) (*models.ParseRecord, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, fmt.Errorf("未配置MySQL，查询能力不可用")
	}
	return h.storage.MySQL.GetParseRecordByID(ctx, recordID)
}

// ListResponse 分页列表响应
type ListResponse struct {
	Records  []models.ParseRecord `json:"records"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// HandleListRecords 按创建时间倒序分页列出解析记录
func (h *ParseHandler) HandleListRecords(ctx context.Context, page, pageSize int) (*ListResponse, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, fmt.Errorf("未配置MySQL，查询能力不可用")
	}
	records, total, err := h.storage.MySQL.ListParseRecords(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &ListResponse{Records: records, Total: total, Page: page, PageSize: pageSize}, nil
}

// lookupDuplicate 文本MD5去重：先查redis缓存，缓存未命中或不可用时回查MySQL
func (h *ParseHandler) lookupDuplicate(ctx context.Context, textMD5 string) (*ParseResponse, bool) {
	if h.storage == nil {
		return nil, false
	}

	if h.storage.Redis != nil {
		recordID, err := h.storage.Redis.LookupTextMD5(ctx, textMD5)
		switch {
		case err == nil:
			return h.duplicateFromCache(ctx, recordID)
		case !errors.Is(err, storage.ErrNotFound):
			logger.Warn().Err(err).Msg("查询MD5去重缓存失败，回查MySQL")
		}
	}

	if h.storage.MySQL == nil {
		return nil, false
	}
	record, err := h.storage.MySQL.FindParseRecordByTextMD5(ctx, textMD5)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Err(err).Msg("按文本MD5回查解析记录失败")
		}
		return nil, false
	}

	resp := &ParseResponse{RecordID: record.RecordID, Status: StatusDuplicate}
	if result, decErr := decodeResult(record); decErr == nil {
		resp.Result = result
	}
	// 回填缓存，相同文本的后续请求走缓存路径
	if h.storage.Redis != nil {
		if cacheErr := h.storage.Redis.CacheTextMD5(ctx, textMD5, record.RecordID); cacheErr != nil {
			logger.Warn().Err(cacheErr).Str("record_id", record.RecordID).Msg("回填MD5去重缓存失败")
		}
	}
	logger.Info().Str("record_id", record.RecordID).Msg("文本MD5命中数据库去重")
	return resp, true
}

// duplicateFromCache 缓存命中后加载记录内容，记录已不在库中时当作未命中
func (h *ParseHandler) duplicateFromCache(ctx context.Context, recordID string) (*ParseResponse, bool) {
	resp := &ParseResponse{RecordID: recordID, Status: StatusDuplicate}
	if h.storage.MySQL != nil {
		record, dbErr := h.storage.MySQL.GetParseRecordByID(ctx, recordID)
		switch {
		case dbErr == nil:
			if result, decErr := decodeResult(record); decErr == nil {
				resp.Result = result
			}
		case errors.Is(dbErr, gorm.ErrRecordNotFound):
			return nil, false
		default:
			logger.Warn().Err(dbErr).Str("record_id", recordID).Msg("加载去重命中的解析记录失败")
		}
	}
	logger.Info().Str("record_id", recordID).Msg("文本MD5命中去重缓存")
	return resp, true
}

// persistRecord 尽力落库并写入去重缓存
func (h *ParseHandler) persistRecord(ctx context.Context, record *models.ParseRecord) {
	if h.storage == nil {
		return
	}
	if h.storage.MySQL != nil {
		if err := h.storage.MySQL.SaveParseRecord(ctx, record); err != nil {
			logger.Error().Err(err).Str("record_id", record.RecordID).Msg("保存解析记录失败")
			return
		}
	}
	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheTextMD5(ctx, record.RawTextMD5, record.RecordID); err != nil {
			logger.Warn().Err(err).Str("record_id", record.RecordID).Msg("写入MD5去重缓存失败")
		}
	}
}

// enqueueParseTask 异步路径：上传原始文件并投递解析任务
func (h *ParseHandler) enqueueParseTask(ctx context.Context, filename string, data []byte, contentType string) (*ParseResponse, error) {
	recordID := uuid.NewString()

	objectPath, err := h.storage.MinIO.UploadOriginal(ctx, recordID, filename, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("上传原始文件失败: %w", err)
	}

	fileSum := md5.Sum(data)
	task := storage.ParseTaskMessage{
		RecordID:         recordID,
		OriginalFilename: filename,
		OriginalFilePath: objectPath,
		RawFileMD5:       hex.EncodeToString(fileSum[:]),
		SubmittedAt:      time.Now(),
	}

	mqCfg := &h.cfg.RabbitMQ
	if err := h.storage.RabbitMQ.EnsureExchange(mqCfg.ParseEventsExchange, "direct", true); err != nil {
		return nil, fmt.Errorf("声明解析事件交换机失败: %w", err)
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx, mqCfg.ParseEventsExchange, mqCfg.ParseRoutingKey, task, true); err != nil {
		return nil, fmt.Errorf("投递解析任务失败: %w", err)
	}

	logger.Info().Str("record_id", recordID).Str("filename", filename).Msg("解析任务已投递")
	return &ParseResponse{RecordID: recordID, Status: StatusQueued}, nil
}

// attachOriginalFile 把归档后的对象路径补写到解析记录
func (h *ParseHandler) attachOriginalFile(ctx context.Context, recordID, filename, objectPath string) {
	err := h.storage.MySQL.DB().WithContext(ctx).
		Model(&models.ParseRecord{}).
		Where("record_id = ?", recordID).
		Updates(map[string]interface{}{
			"original_filename":  filename,
			"original_file_path": objectPath,
		}).Error
	if err != nil {
		logger.Warn().Err(err).Str("record_id", recordID).Msg("补写原始文件路径失败")
	}
}

// decodeResult 从落库记录还原解析结果
func decodeResult(record *models.ParseRecord) (*types.ParseResult, error) {
	var parsed types.SchemaRecord
	if err := json.Unmarshal(record.ParsedJSON, &parsed); err != nil {
		return nil, fmt.Errorf("反序列化解析结果失败: %w", err)
	}
	var confidence types.ConfidenceBundle
	if len(record.ConfidenceJSON) > 0 {
		if err := json.Unmarshal(record.ConfidenceJSON, &confidence); err != nil {
			return nil, fmt.Errorf("反序列化置信度失败: %w", err)
		}
	}
	return &types.ParseResult{Parsed: &parsed, Confidence: &confidence}, nil
}
