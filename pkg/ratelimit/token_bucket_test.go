package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenBucketAllow 验证容量内的请求通过，超出后被拒绝
func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(60, 2)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "令牌耗尽后应拒绝请求")
}

// TestTokenBucketWaitContextCanceled 验证上下文取消时Wait及时返回
func TestTokenBucketWaitContextCanceled(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	require.True(t, tb.Allow()) // 耗尽令牌

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRetryWithBackoffRetriesTransientErrors 验证瞬时错误按退避策略重试
func TestRetryWithBackoffRetriesTransientErrors(t *testing.T) {
	tb := NewTokenBucket(6000, 100).WithRetryPolicy(time.Millisecond, 3)

	calls := 0
	err := tb.RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("429 Too Many Requests")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// TestRetryWithBackoffStopsOnPermanentError 验证不可重试的错误立即向上返回
func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	tb := NewTokenBucket(6000, 100).WithRetryPolicy(time.Millisecond, 3)

	calls := 0
	err := tb.RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("неверный формат запроса")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "业务错误不应触发重试")
}

// TestIsRetryableError 验证可重试错误的识别
func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("dial tcp: i/o timeout")))
	assert.True(t, isRetryableError(errors.New("HTTP 429 Too Many Requests")))
	assert.True(t, isRetryableError(errors.New("context deadline exceeded")))
	assert.False(t, isRetryableError(errors.New("поле отсутствует")))
	assert.False(t, isRetryableError(nil))
}
