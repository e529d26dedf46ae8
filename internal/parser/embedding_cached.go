package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iskandar1009/job-resume-matching/internal/cache"
	"github.com/Iskandar1009/job-resume-matching/internal/logger"
	"github.com/Iskandar1009/job-resume-matching/internal/matching"
	"github.com/Iskandar1009/job-resume-matching/pkg/utils"
)

// CachedEmbedder 为底层Embedder增加按文本内容寻址的向量缓存
// 键为文本MD5，值为JSON编码的向量；纯空白文本直接返回零向量，不触发底层调用
type CachedEmbedder struct {
	inner      matching.Embedder
	backend    cache.Backend
	dimensions int
}

var _ matching.Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder 创建带缓存的Embedder
// dimensions 用于空文本的零向量长度，应与底层模型的向量维度一致
func NewCachedEmbedder(inner matching.Embedder, backend cache.Backend, dimensions int) *CachedEmbedder {
	if dimensions <= 0 {
		dimensions = 1024
	}
	return &CachedEmbedder{inner: inner, backend: backend, dimensions: dimensions}
}

// EmbedStrings 实现 matching.Embedder 接口
// 命中的文本直接取缓存向量，未命中的批量交给底层计算后回填缓存
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))

	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			out[i] = make([]float64, c.dimensions)
			continue
		}

		key := utils.CalculateStringMD5(trimmed)
		if cached, found, err := c.backend.Get(ctx, key); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("读取向量缓存失败，回退到直接计算")
		} else if found {
			var vec []float64
			if json.Unmarshal([]byte(cached), &vec) == nil && len(vec) > 0 {
				out[i] = vec
				continue
			}
			logger.Warn().Str("key", key).Msg("向量缓存条目损坏，忽略并重新计算")
		}

		missIdx = append(missIdx, i)
		missTexts = append(missTexts, trimmed)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vectors, err := c.inner.EmbedStrings(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("底层Embedder返回的向量数量 (%d) 与输入数量 (%d) 不匹配", len(vectors), len(missTexts))
	}

	for j, i := range missIdx {
		out[i] = vectors[j]

		// 缓存写入失败只记录日志
		encoded, err := json.Marshal(vectors[j])
		if err != nil {
			continue
		}
		key := utils.CalculateStringMD5(missTexts[j])
		if err := c.backend.Set(ctx, key, string(encoded)); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("写入向量缓存失败")
		}
	}

	return out, nil
}
