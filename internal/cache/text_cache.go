package cache

import (
	"context"
	"os"
	"strings"

	"github.com/Iskandar1009/job-resume-matching/internal/logger"
	"github.com/Iskandar1009/job-resume-matching/internal/matching"
	"github.com/Iskandar1009/job-resume-matching/pkg/utils"
)

// TextExtractor 文档文本提取接口，由PDF解析器实现
type TextExtractor interface {
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)
}

// TextCache 按内容寻址的文档文本缓存
// 以文件字节内容的MD5为键，相同内容无论路径和文件名如何都命中同一条目
// 缓存只是副作用：命中与否绝不能改变返回的文本
type TextCache struct {
	backend   Backend
	extractor TextExtractor
}

// NewTextCache 创建文本缓存
func NewTextCache(backend Backend, extractor TextExtractor) *TextCache {
	return &TextCache{backend: backend, extractor: extractor}
}

// GetText 返回文档的纯文本内容
// 缓存命中时直接返回，否则调用提取器并在成功后写入缓存
// 提取失败或提取结果为纯空白时返回错误且不写缓存，瞬时故障可以在下次调用时重试
func (c *TextCache) GetText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", matching.NewExtractionError("读取文件失败: " + err.Error())
	}
	key := utils.CalculateMD5(data)

	if cached, found, err := c.backend.Get(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("读取文本缓存失败，回退到直接提取")
	} else if found && strings.TrimSpace(cached) != "" {
		return cached, nil
	}

	text, _, err := c.extractor.ExtractFromFile(ctx, path)
	if err != nil {
		return "", matching.NewExtractionError(err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return "", matching.NewExtractionError("文档不包含可提取的文本: " + path)
	}

	// 缓存写入失败只记录日志，不影响本次返回结果
	if err := c.backend.Set(ctx, key, text); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("写入文本缓存失败")
	}

	return text, nil
}
