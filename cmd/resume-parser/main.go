package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"github.com/cyb3r-cych0/resume-parser/internal/api/handler"
	"github.com/cyb3r-cych0/resume-parser/internal/api/router"
	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/extractor"
	"github.com/cyb3r-cych0/resume-parser/internal/logger"
	"github.com/cyb3r-cych0/resume-parser/internal/nlp"
	"github.com/cyb3r-cych0/resume-parser/internal/parser"
	"github.com/cyb3r-cych0/resume-parser/internal/storage"
	"github.com/cyb3r-cych0/resume-parser/internal/worker"
)

func main() {
	var configPath string
	var workerMode bool
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，留空时在常见位置查找")
	pflag.BoolVarP(&workerMode, "worker", "w", false, "以异步解析worker模式运行")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()
	logger.Info().Msg("存储服务初始化成功")

	engine := buildEngine(cfg)
	registry := parser.DefaultRegistry()

	if workerMode {
		runWorker(ctx, cfg, storageManager, registry, engine)
		return
	}
	runServer(ctx, cfg, storageManager, registry, engine)
}

// buildEngine 按配置装配提取引擎，NLP能力缺失时降级为纯规则管道
func buildEngine(cfg *config.Config) *extractor.Engine {
	opts := []extractor.Option{extractor.WithLogger(logger.Logger)}

	if nerClient := nlp.NewNERClient(cfg.NLP, logger.Logger); nerClient != nil {
		opts = append(opts, extractor.WithNER(nerClient))
		logger.Info().Str("url", cfg.NLP.NERURL).Msg("NER能力已启用")
	}
	if embClient := nlp.NewEmbeddingClient(cfg.NLP, logger.Logger); embClient != nil {
		opts = append(opts, extractor.WithEmbedder(embClient))
		logger.Info().Str("url", cfg.NLP.EmbeddingURL).Msg("向量化能力已启用")
	}
	return extractor.NewEngine(opts...)
}

// runWorker 以异步解析worker模式运行，阻塞直到收到终止信号
func runWorker(ctx context.Context, cfg *config.Config, storageManager *storage.Storage, registry *parser.Registry, engine *extractor.Engine) {
	w, err := worker.NewWorker(cfg, storageManager, registry, engine)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化worker失败")
	}

	workerCtx, stop := context.WithCancel(ctx)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("接收到终止信号，worker正在退出")
		stop()
	}()

	if err := w.Run(workerCtx); err != nil && err != context.Canceled {
		logger.Fatal().Err(err).Msg("worker运行失败")
	}
	logger.Info().Msg("worker已退出")
}

// runServer 启动HTTP服务并优雅退出
func runServer(ctx context.Context, cfg *config.Config, storageManager *storage.Storage, registry *parser.Registry, engine *extractor.Engine) {
	parseHandler := handler.NewParseHandler(cfg, storageManager, registry, engine)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	router.RegisterRoutes(h, cfg, parseHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}
