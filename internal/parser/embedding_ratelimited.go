package parser

import (
	"context"

	"github.com/Iskandar1009/job-resume-matching/internal/matching"
	"github.com/Iskandar1009/job-resume-matching/pkg/ratelimit"
)

// RateLimitedEmbedder 为底层Embedder增加令牌桶限流与瞬时错误重试
// 放在向量缓存内侧，只有真正打到外部服务的调用才消耗令牌
type RateLimitedEmbedder struct {
	inner   matching.Embedder
	limiter *ratelimit.TokenBucket
}

var _ matching.Embedder = (*RateLimitedEmbedder)(nil)

// NewRateLimitedEmbedder 创建限流Embedder，qpm非正时使用默认值60
func NewRateLimitedEmbedder(inner matching.Embedder, qpm int) *RateLimitedEmbedder {
	if qpm <= 0 {
		qpm = 60
	}
	return &RateLimitedEmbedder{
		inner:   inner,
		limiter: ratelimit.NewTokenBucket(qpm, 0),
	}
}

// EmbedStrings 实现 matching.Embedder 接口
func (r *RateLimitedEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	var vectors [][]float64
	err := r.limiter.RetryWithBackoff(ctx, func() error {
		var innerErr error
		vectors, innerErr = r.inner.EmbedStrings(ctx, texts)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}
