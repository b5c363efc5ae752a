package worker

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/constants"
	"github.com/cyb3r-cych0/resume-parser/internal/extractor"
	"github.com/cyb3r-cych0/resume-parser/internal/logger"
	"github.com/cyb3r-cych0/resume-parser/internal/parser"
	"github.com/cyb3r-cych0/resume-parser/internal/storage"
	"github.com/cyb3r-cych0/resume-parser/internal/storage/models"
)

// Worker 异步解析任务消费者：从队列取任务，下载原始文件，
// 提取文本并运行解析管道，结果落库并写入去重缓存。
type Worker struct {
	cfg      *config.Config
	store    *storage.Storage
	registry *parser.Registry
	engine   *extractor.Engine
}

// NewWorker 创建解析任务消费者
func NewWorker(cfg *config.Config, store *storage.Storage, registry *parser.Registry, engine *extractor.Engine) (*Worker, error) {
	if cfg == nil || store == nil {
		return nil, fmt.Errorf("配置与存储管理器均不能为空")
	}
	if store.RabbitMQ == nil {
		return nil, fmt.Errorf("worker模式需要配置RabbitMQ")
	}
	if store.MinIO == nil {
		return nil, fmt.Errorf("worker模式需要配置MinIO")
	}
	if registry == nil {
		registry = parser.DefaultRegistry()
	}
	if engine == nil {
		engine = extractor.NewEngine()
	}
	return &Worker{cfg: cfg, store: store, registry: registry, engine: engine}, nil
}

// Run 声明拓扑并启动消费者协程，阻塞直到ctx取消
func (w *Worker) Run(ctx context.Context) error {
	mq := w.store.RabbitMQ
	mqCfg := &w.cfg.RabbitMQ

	if err := mq.EnsureExchange(mqCfg.ParseEventsExchange, "direct", true); err != nil {
		return fmt.Errorf("声明解析事件交换机失败: %w", err)
	}
	if err := mq.EnsureQueue(mqCfg.ParseTaskQueue, true); err != nil {
		return fmt.Errorf("声明解析任务队列失败: %w", err)
	}
	if err := mq.BindQueue(mqCfg.ParseTaskQueue, mqCfg.ParseEventsExchange, mqCfg.ParseRoutingKey); err != nil {
		return fmt.Errorf("绑定解析任务队列失败: %w", err)
	}

	deliveries, err := mq.Consume(mqCfg.ParseTaskQueue, "resume-parse-worker")
	if err != nil {
		return fmt.Errorf("开始消费解析任务失败: %w", err)
	}

	workers := mqCfg.ConsumerWorkers
	if workers <= 0 {
		workers = 3
	}
	logger.Info().Int("workers", workers).Str("queue", mqCfg.ParseTaskQueue).Msg("解析worker启动")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					w.handleDelivery(ctx, d)
				}
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}

// handleDelivery 处理单条任务消息，失败时丢弃不重入队
func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var task storage.ParseTaskMessage
	if err := json.Unmarshal(d.Body, &task); err != nil {
		logger.Error().Err(err).Msg("解析任务消息反序列化失败，丢弃")
		_ = d.Nack(false, false)
		return
	}

	start := time.Now()
	if err := w.processTask(ctx, &task); err != nil {
		logger.Error().Err(err).Str("record_id", task.RecordID).Msg("处理解析任务失败")
		if w.store.MySQL != nil {
			_ = w.store.MySQL.UpdateParseRecordStatus(ctx, task.RecordID, constants.StatusFailed)
		}
		_ = d.Nack(false, false)
		return
	}

	logger.Info().
		Str("record_id", task.RecordID).
		Dur("elapsed", time.Since(start)).
		Msg("解析任务完成")
	_ = d.Ack(false)
}

// processTask 下载原始文件、提取文本并运行解析管道
func (w *Worker) processTask(ctx context.Context, task *storage.ParseTaskMessage) error {
	if task.RecordID == "" || task.OriginalFilePath == "" {
		return fmt.Errorf("任务消息缺少record_id或original_file_path")
	}

	data, err := w.store.MinIO.DownloadOriginal(ctx, task.OriginalFilePath)
	if err != nil {
		return fmt.Errorf("下载原始文件失败: %w", err)
	}

	rawText, err := w.registry.ExtractText(ctx, data, task.OriginalFilename)
	if err != nil {
		return fmt.Errorf("提取文本失败: %w", err)
	}

	record, err := BuildParseRecord(ctx, w.engine, task.RecordID, rawText, w.cfg.Extractor.Version)
	if err != nil {
		return err
	}
	record.OriginalFilename = task.OriginalFilename
	record.OriginalFilePath = task.OriginalFilePath

	if w.store.MySQL != nil {
		if err := w.store.MySQL.SaveParseRecord(ctx, record); err != nil {
			return fmt.Errorf("保存解析记录失败: %w", err)
		}
	}
	if w.store.Redis != nil {
		if err := w.store.Redis.CacheTextMD5(ctx, record.RawTextMD5, record.RecordID); err != nil {
			logger.Warn().Err(err).Str("record_id", record.RecordID).Msg("写入MD5去重缓存失败")
		}
	}
	return nil
}

// BuildParseRecord 对原始文本运行解析管道并组装落库记录
func BuildParseRecord(ctx context.Context, engine *extractor.Engine, recordID, rawText, parserVersion string) (*models.ParseRecord, error) {
	result, err := engine.ExtractAndNormalize(ctx, rawText, nil)
	if err != nil {
		return nil, fmt.Errorf("解析管道执行失败: %w", err)
	}

	parsedJSON, err := models.ToJSON(result.Parsed)
	if err != nil {
		return nil, fmt.Errorf("序列化解析结果失败: %w", err)
	}
	confidenceJSON, err := models.ToJSON(result.Confidence)
	if err != nil {
		return nil, fmt.Errorf("序列化置信度失败: %w", err)
	}

	sum := md5.Sum([]byte(rawText))
	if parserVersion == "" {
		parserVersion = constants.DefaultParserVersion
	}

	return &models.ParseRecord{
		RecordID:       recordID,
		RawTextMD5:     hex.EncodeToString(sum[:]),
		ParsedJSON:     parsedJSON,
		ConfidenceJSON: confidenceJSON,
		OverallScore:   result.Confidence.OverallQualityScore,
		ParserVersion:  parserVersion,
		Status:         constants.StatusCompleted,
	}, nil
}
