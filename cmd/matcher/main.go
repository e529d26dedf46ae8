package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"github.com/Iskandar1009/job-resume-matching/internal/api/handler"
	"github.com/Iskandar1009/job-resume-matching/internal/api/router"
	"github.com/Iskandar1009/job-resume-matching/internal/cache"
	"github.com/Iskandar1009/job-resume-matching/internal/config"
	"github.com/Iskandar1009/job-resume-matching/internal/constants"
	"github.com/Iskandar1009/job-resume-matching/internal/logger"
	"github.com/Iskandar1009/job-resume-matching/internal/matching"
	"github.com/Iskandar1009/job-resume-matching/internal/parser"
	"github.com/Iskandar1009/job-resume-matching/internal/storage"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径")
	pflag.Parse()

	// 1. 加载配置文件
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置文件失败")
	}

	// 2. 初始化日志系统
	initLogger(cfg)
	hlog.SetLogger(hertzzerolog.From(logger.Logger))

	// 3. 初始化存储管理器
	ctx := context.Background()
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储管理器失败")
	}
	defer storageManager.Close()

	// 4. 组装匹配流水线
	matchHandler, err := buildMatchHandler(ctx, cfg, storageManager)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化匹配流水线失败")
	}
	logger.Info().Msg("匹配流水线初始化成功")

	// 5. 创建HTTP服务器并注册路由
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
	)
	router.RegisterRoutes(h, matchHandler)

	// 6. 启动HTTP服务器
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 7. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	// 8. 优雅关闭HTTP服务器
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化日志系统
func initLogger(cfg *config.Config) {
	logConfig := logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	}
	if logConfig.TimeFormat == "" {
		logConfig.TimeFormat = time.RFC3339
	}
	logger.Init(logConfig)

	logger.Logger = logger.Logger.With().
		Str("app", "resume-matcher").
		Logger()
}

// buildMatchHandler 组装完整的匹配流水线
// 所有依赖都在此显式构造并注入：缓存后端 → PDF提取器 → 文本缓存 →
// 向量提供方（带缓存） → 相似度引擎 → 打分器 → HTTP处理器
func buildMatchHandler(ctx context.Context, cfg *config.Config, storageManager *storage.Storage) (*handler.MatchHandler, error) {
	textBackend, vectorBackend, err := buildCacheBackends(cfg, storageManager)
	if err != nil {
		return nil, err
	}

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		return nil, err
	}
	textCache := cache.NewTextCache(textBackend, pdfExtractor)

	aliyunEmbedder, err := parser.NewAliyunEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	// 限流器放在缓存内侧，命中缓存的调用不消耗配额
	embedder := parser.NewCachedEmbedder(
		parser.NewRateLimitedEmbedder(parser.NewEmbedderAdapter(aliyunEmbedder), cfg.Embedding.QPM),
		vectorBackend,
		cfg.Embedding.Dimensions,
	)

	engine, err := matching.NewSimilarityEngine(matching.WeightTable(cfg.Matching.Weights))
	if err != nil {
		return nil, err
	}

	scorer := matching.NewPairScorer(textCache, engine, embedder, cfg.Matching.MaxTextChars)
	return handler.NewMatchHandler(scorer, storageManager), nil
}

// buildCacheBackends 按配置选择缓存后端：文件系统（默认）或Redis
func buildCacheBackends(cfg *config.Config, storageManager *storage.Storage) (cache.Backend, cache.Backend, error) {
	if strings.ToLower(cfg.Cache.Backend) == "redis" {
		textTTL := constants.DefaultTextCacheTTL
		if cfg.Cache.TextTTLHours > 0 {
			textTTL = time.Duration(cfg.Cache.TextTTLHours) * time.Hour
		}
		vectorTTL := constants.DefaultVectorCacheTTL
		if cfg.Cache.VectorTTLHours > 0 {
			vectorTTL = time.Duration(cfg.Cache.VectorTTLHours) * time.Hour
		}
		textBackend := cache.NewKVBackend(storageManager.Redis, constants.TextCacheKeyPrefix, textTTL)
		vectorBackend := cache.NewKVBackend(storageManager.Redis, constants.VectorCacheKeyPrefix, vectorTTL)
		return textBackend, vectorBackend, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		dir = "cache"
	}
	textBackend, err := cache.NewFSBackend(filepath.Join(dir, "texts"))
	if err != nil {
		return nil, nil, err
	}
	vectorBackend, err := cache.NewFSBackend(filepath.Join(dir, "embeddings"))
	if err != nil {
		return nil, nil, err
	}
	return textBackend, vectorBackend, nil
}
