package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Iskandar1009/job-resume-matching/internal/config"
)

// Storage 存储管理器，聚合所有存储相关依赖
// 所有组件都是可选的：未配置的组件保持nil，调用方按需判空
type Storage struct {
	// 键值存储，作为文本/向量缓存的后端
	Redis *Redis

	// 对象存储，归档上传的原始文档
	MinIO *MinIO

	// 关系型数据库，持久化匹配历史
	MySQL *MySQL
}

// NewStorage 创建存储管理器
// 单个可选组件初始化失败只记录警告；缓存后端指定为redis但Redis不可用时返回错误
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}
	var initErrors []string

	// 初始化Redis（如果配置了）
	if cfg.Redis.Address != "" {
		log.Printf("初始化Redis at %s...", cfg.Redis.Address)
		redisAdapter, err := NewRedisAdapter(&cfg.Redis)
		if err != nil {
			log.Printf("警告: 初始化Redis失败: %v", err)
			initErrors = append(initErrors, fmt.Sprintf("Redis: %v", err))
		} else {
			storage.Redis = redisAdapter
		}
	}

	// 缓存后端依赖Redis时，Redis初始化失败是硬错误
	if strings.ToLower(cfg.Cache.Backend) == "redis" && storage.Redis == nil {
		return nil, fmt.Errorf("缓存后端为redis但Redis不可用: %s", strings.Join(initErrors, "; "))
	}

	// 初始化MinIO（如果配置了）
	if cfg.MinIO.Endpoint != "" {
		log.Printf("初始化MinIO...")
		var minioLogger *log.Logger
		if cfg.Logger.Level == "debug" {
			minioLogger = log.New(os.Stderr, "[MinIOStorage] ", log.LstdFlags)
		} else {
			minioLogger = log.New(io.Discard, "", 0)
		}
		minioAdapter, err := NewMinIO(&cfg.MinIO, minioLogger)
		if err != nil {
			log.Printf("警告: 初始化MinIO失败: %v", err)
			initErrors = append(initErrors, fmt.Sprintf("MinIO: %v", err))
		} else {
			storage.MinIO = minioAdapter
		}
	}

	// 初始化MySQL（如果配置了）
	if cfg.MySQL.Host != "" {
		log.Printf("初始化MySQL...")
		mysqlAdapter, err := NewMySQL(&cfg.MySQL)
		if err != nil {
			log.Printf("警告: 初始化MySQL失败: %v", err)
			initErrors = append(initErrors, fmt.Sprintf("MySQL: %v", err))
		} else {
			storage.MySQL = mysqlAdapter
		}
	}

	if len(initErrors) > 0 {
		log.Printf("部分存储组件初始化失败，对应功能降级: %s", strings.Join(initErrors, "; "))
	}

	return storage, nil
}

// Close 关闭所有存储连接
func (s *Storage) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Printf("关闭Redis连接失败: %v", err)
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			log.Printf("关闭MySQL连接失败: %v", err)
		}
	}
}
