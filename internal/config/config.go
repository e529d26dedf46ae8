package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，例如 ":8000"
}

// EmbeddingConfig 阿里云Embedding配置（OpenAI兼容端点）
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	QPM        int    `yaml:"qpm"` // 每分钟允许的请求数，0表示使用默认值
}

// CacheConfig 缓存配置：文本缓存与向量缓存共用同一后端
type CacheConfig struct {
	Backend        string `yaml:"backend"`          // "fs" 或 "redis"
	Dir            string `yaml:"dir"`              // fs后端的根目录
	TextTTLHours   int    `yaml:"text_ttl_hours"`   // Redis后端文本缓存过期时间(小时)，0表示使用默认值
	VectorTTLHours int    `yaml:"vector_ttl_hours"` // Redis后端向量缓存过期时间(小时)，0表示使用默认值
}

// MatchingConfig 匹配策略配置
// 权重与阈值来自线上调参结果，属于可调策略而非结构性约束
type MatchingConfig struct {
	MaxTextChars int                `yaml:"max_text_chars"` // 参与匹配的文本截断长度
	Weights      map[string]float64 `yaml:"weights"`        // 各比较维度的权重，总和必须为1.0
}

// RedisConfig Redis配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
}

// MinIOConfig MinIO配置，用于归档上传的原始文档
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	Bucket          string `yaml:"bucket"`   // 文档归档桶
	Location        string `yaml:"location"` // 桶所在区域
}

// MySQLConfig MySQL配置，用于持久化匹配历史
type MySQLConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifeTime int    `yaml:"conn_max_life_time"` // 连接最大生命周期(分钟)
	LogLevel        string `yaml:"log_level"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// Config 应用程序配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Matching  MatchingConfig  `yaml:"matching"`
	Redis     RedisConfig     `yaml:"redis"`
	MinIO     MinIOConfig     `yaml:"minio"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// createDefaultConfig 返回内置默认配置
// 权重默认值：职位名称0.5、技能0.2、经验0.2、教育0.1
func createDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8000",
		},
		Embedding: EmbeddingConfig{
			BaseURL:    "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings",
			Model:      "text-embedding-v3",
			Dimensions: 1024,
			QPM:        60,
		},
		Cache: CacheConfig{
			Backend: "fs",
			Dir:     "cache",
		},
		Matching: MatchingConfig{
			MaxTextChars: 4000,
			Weights: map[string]float64{
				"title":      0.5,
				"skills":     0.2,
				"experience": 0.2,
				"education":  0.1,
			},
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "json",
			TimeFormat: "",
		},
	}
}

// LoadConfig 加载配置文件
// 如果未指定路径，则在常见位置查找；找不到配置文件时返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-matcher", "config.yaml"),
		}

		// 可执行文件所在目录及其上级目录
		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到配置文件时使用默认配置，不视为错误
		if configPath == "" {
			cfg := createDefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", configPath, err)
	}

	cfg := createDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", configPath, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides 环境变量覆盖配置文件中的敏感字段
func applyEnvOverrides(cfg *Config) {
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		cfg.Embedding.APIKey = envKey
	}
	if envURL := os.Getenv("ALIYUN_API_URL"); envURL != "" {
		cfg.Embedding.BaseURL = envURL
	}
	if envModel := os.Getenv("ALIYUN_MODEL"); envModel != "" {
		cfg.Embedding.Model = envModel
	}
}

// Validate 校验配置的内部一致性
func (c *Config) Validate() error {
	backend := strings.ToLower(c.Cache.Backend)
	if backend != "" && backend != "fs" && backend != "redis" {
		return fmt.Errorf("不支持的缓存后端: %s", c.Cache.Backend)
	}
	if backend == "redis" && c.Redis.Address == "" {
		return fmt.Errorf("缓存后端为redis时必须配置redis.address")
	}

	if c.Matching.MaxTextChars <= 0 {
		return fmt.Errorf("matching.max_text_chars 必须为正数")
	}

	if len(c.Matching.Weights) == 0 {
		return fmt.Errorf("matching.weights 不能为空")
	}
	var sum float64
	for field, w := range c.Matching.Weights {
		if w <= 0 || w > 1 {
			return fmt.Errorf("权重 %s=%v 必须在 (0, 1] 区间内", field, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("matching.weights 总和必须为1.0，当前为 %v", sum)
	}

	return nil
}
