package cache // 按内容寻址的缓存层，支持文件系统与Redis两种后端

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backend 缓存后端接口
// 缓存值是键的纯函数，并发写同一键允许竞争（后写者胜），重复计算只浪费算力不影响正确性
type Backend interface {
	// Get 按键查询，未命中时返回 found=false 且无错误
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set 写入缓存条目，写入必须是原子的：半写入的条目绝不能被读出
	Set(ctx context.Context, key, value string) error
}

// FSBackend 文件系统后端，每个条目一个文件，文件名即键
type FSBackend struct {
	dir string
}

// NewFSBackend 创建文件系统后端，目录不存在时自动创建
func NewFSBackend(dir string) (*FSBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建缓存目录失败 %s: %w", dir, err)
	}
	return &FSBackend{dir: dir}, nil
}

func (b *FSBackend) entryPath(key string) string {
	return filepath.Join(b.dir, key+".txt")
}

func (b *FSBackend) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(b.entryPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("读取缓存条目失败 %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set 先写临时文件再重命名，保证读侧看不到半写入的条目
func (b *FSBackend) Set(ctx context.Context, key, value string) error {
	tmp, err := os.CreateTemp(b.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建缓存临时文件失败: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入缓存临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("关闭缓存临时文件失败: %w", err)
	}

	if err := os.Rename(tmpName, b.entryPath(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("重命名缓存条目失败: %w", err)
	}
	return nil
}

// KVStore 键值存储的最小接口，Redis适配器实现它
type KVStore interface {
	GetValue(ctx context.Context, key string) (value string, found bool, err error)
	SetValue(ctx context.Context, key, value string, ttl time.Duration) error
}

// KVBackend 基于键值存储的缓存后端，带键前缀与过期时间
type KVBackend struct {
	kv     KVStore
	prefix string
	ttl    time.Duration
}

// NewKVBackend 创建键值存储后端
func NewKVBackend(kv KVStore, prefix string, ttl time.Duration) *KVBackend {
	return &KVBackend{kv: kv, prefix: prefix, ttl: ttl}
}

func (b *KVBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return b.kv.GetValue(ctx, b.prefix+key)
}

func (b *KVBackend) Set(ctx context.Context, key, value string) error {
	return b.kv.SetValue(ctx, b.prefix+key, value, b.ttl)
}
