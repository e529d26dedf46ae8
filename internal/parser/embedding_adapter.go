package parser

import (
	"context"

	"github.com/cloudwego/eino/components/embedding"

	"github.com/Iskandar1009/job-resume-matching/internal/matching"
)

// EmbedderAdapter 将 eino 的 embedding.Embedder 适配为核心要求的窄接口 matching.Embedder
// 向量提供方由调用方显式构造并注入，不使用任何全局状态
type EmbedderAdapter struct {
	inner embedding.Embedder
}

var _ matching.Embedder = (*EmbedderAdapter)(nil)

// NewEmbedderAdapter 创建适配器
func NewEmbedderAdapter(inner embedding.Embedder) *EmbedderAdapter {
	return &EmbedderAdapter{inner: inner}
}

func (a *EmbedderAdapter) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	return a.inner.EmbedStrings(ctx, texts)
}
