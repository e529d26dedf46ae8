package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Iskandar1009/job-resume-matching/internal/config"
	"github.com/Iskandar1009/job-resume-matching/internal/storage/models"
)

// MySQL 关系型数据库适配器，持久化匹配历史
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 创建MySQL连接并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database)

	logLevel := gormlogger.Warn
	switch cfg.LogLevel {
	case "silent":
		logLevel = gormlogger.Silent
	case "error":
		logLevel = gormlogger.Error
	case "info":
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层数据库连接失败: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeTime) * time.Minute)
	}

	m := &MySQL{db: db}
	if err := m.autoMigrateSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

// autoMigrateSchema 自动迁移表结构
func (m *MySQL) autoMigrateSchema() error {
	if err := m.db.AutoMigrate(&models.MatchRecord{}); err != nil {
		return fmt.Errorf("自动迁移表结构失败: %w", err)
	}
	return nil
}

// DB 返回底层gorm连接
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveMatchRecords 批量写入匹配历史
func (m *MySQL) SaveMatchRecords(ctx context.Context, records []models.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := m.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("写入匹配历史失败: %w", err)
	}
	return nil
}

// RecentMatchRecords 查询某个职位最近的匹配历史
func (m *MySQL) RecentMatchRecords(ctx context.Context, jobFileName string, limit int) ([]models.MatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.MatchRecord
	err := m.db.WithContext(ctx).
		Where("job_file_name = ?", jobFileName).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询匹配历史失败: %w", err)
	}
	return records, nil
}
