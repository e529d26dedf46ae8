package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeScoresEmpty 验证空输入返回空切片而不是nil
func TestNormalizeScoresEmpty(t *testing.T) {
	got := NormalizeScores(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = NormalizeScores([]float64{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestNormalizeScoresAllEqual 验证所有得分相等时统一返回50.0
func TestNormalizeScoresAllEqual(t *testing.T) {
	assert.Equal(t, []float64{50.0}, NormalizeScores([]float64{73.2}))
	assert.Equal(t, []float64{50.0, 50.0, 50.0}, NormalizeScores([]float64{5, 5, 5}))
	assert.Equal(t, []float64{50.0, 50.0}, NormalizeScores([]float64{0, 0}))
}

// TestNormalizeScoresLinearRescale 验证线性缩放到完整的0-100区间
func TestNormalizeScoresLinearRescale(t *testing.T) {
	got := NormalizeScores([]float64{0, 10})
	assert.Equal(t, []float64{0, 100}, got)

	got = NormalizeScores([]float64{20, 50, 80})
	assert.Equal(t, []float64{0, 50, 100}, got)
}

// TestNormalizeScoresPreservesOrder 验证输出顺序与输入一一对应且保持相对排序
func TestNormalizeScoresPreservesOrder(t *testing.T) {
	in := []float64{42.5, 87.1, 12.9, 60.0}
	got := NormalizeScores(in)
	assert.Len(t, got, len(in))

	// 极值落在区间端点
	assert.Equal(t, 100.0, got[1])
	assert.Equal(t, 0.0, got[2])
	// 相对排序保持不变
	assert.Greater(t, got[3], got[0])
	assert.Greater(t, got[1], got[3])
}
