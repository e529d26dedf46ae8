package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTextProvider 用内存映射模拟文本缓存，路径未注册时返回错误
type stubTextProvider struct {
	texts map[string]string
}

func (s *stubTextProvider) GetText(ctx context.Context, path string) (string, error) {
	text, ok := s.texts[path]
	if !ok {
		return "", errors.New("документ не найден")
	}
	return text, nil
}

// TestScorePairEndToEnd 验证完整打分流程：取文本、分段、相似度、解释
func TestScorePairEndToEnd(t *testing.T) {
	texts := &stubTextProvider{texts: map[string]string{
		"resume.pdf": "Желаемая позиция: Backend Engineer\n",
		"job.pdf":    "Название вакансии: Backend Engineer\n",
	}}
	engine := newTestEngine(t)
	scorer := NewPairScorer(texts, engine, &stubEmbedder{}, 0)

	result := scorer.ScorePair(context.Background(), "resume.pdf", "job.pdf")

	// 职位名称完全一致，该维度得100分，总分=0.5*100=50
	assert.Equal(t, 100.0, result.SectionScores[ScoreTitle])
	assert.Equal(t, 50.0, result.Score)
	assert.Contains(t, result.Explanation, "Хорошее совпадение (50%).")
	assert.Contains(t, result.Explanation, "«название должности»")
}

// TestScorePairEmptyTextReturnsFixedExplanation 验证空文本返回固定解释而不报错
func TestScorePairEmptyTextReturnsFixedExplanation(t *testing.T) {
	texts := &stubTextProvider{texts: map[string]string{
		"resume.pdf": "   \n\t",
		"job.pdf":    "Название вакансии: Engineer",
	}}
	engine := newTestEngine(t)
	scorer := NewPairScorer(texts, engine, &stubEmbedder{}, 0)

	result := scorer.ScorePair(context.Background(), "resume.pdf", "job.pdf")

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.SectionScores)
	assert.Equal(t, "Не удалось извлечь текст из документов.", result.Explanation)
}

// TestScorePairTextProviderError 验证文本提取失败被吸收为零分结果
func TestScorePairTextProviderError(t *testing.T) {
	texts := &stubTextProvider{texts: map[string]string{
		"job.pdf": "Название вакансии: Engineer",
	}}
	engine := newTestEngine(t)
	scorer := NewPairScorer(texts, engine, &stubEmbedder{}, 0)

	result := scorer.ScorePair(context.Background(), "missing.pdf", "job.pdf")

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.SectionScores)
	assert.True(t, strings.HasPrefix(result.Explanation, "Ошибка извлечения текста: "))
	assert.Contains(t, result.Explanation, "документ не найден")
}

// embedderFails 总是返回错误的Embedder
type embedderFails struct{}

func (embedderFails) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	return nil, errors.New("сервис недоступен")
}

// TestScorePairEmbeddingError 验证向量计算失败被吸收为零分结果
func TestScorePairEmbeddingError(t *testing.T) {
	texts := &stubTextProvider{texts: map[string]string{
		"resume.pdf": "Желаемая позиция: Backend Engineer",
		"job.pdf":    "Название вакансии: Backend Engineer",
	}}
	engine := newTestEngine(t)
	scorer := NewPairScorer(texts, engine, embedderFails{}, 0)

	result := scorer.ScorePair(context.Background(), "resume.pdf", "job.pdf")

	assert.Equal(t, 0.0, result.Score)
	assert.True(t, strings.HasPrefix(result.Explanation, "Ошибка вычисления соответствия: "))
}

// TestScorePairNoSectionsMatched 验证无任何匹配信号时输出无匹配文案
func TestScorePairNoSectionsMatched(t *testing.T) {
	// 双方文本非空但没有可比较的分段：简历无职位名称等，职位无要求等
	texts := &stubTextProvider{texts: map[string]string{
		"resume.pdf": "просто длинное предложение без каких либо заголовков вообще совсем",
		"job.pdf":    "ещё одно длинное предложение тоже без каких либо заголовков совсем",
	}}
	engine := newTestEngine(t)
	embedder := &stubEmbedder{}
	scorer := NewPairScorer(texts, engine, embedder, 0)

	result := scorer.ScorePair(context.Background(), "resume.pdf", "job.pdf")

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "Совпадений не обнаружено. Проверьте формат документов.", result.Explanation)
	assert.Equal(t, 0, embedder.calls, "没有可比较的分段时不应触发向量计算")
}

// TestTruncateText 验证按字符数截断，相同输入截断位置稳定
func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", TruncateText("abc", 10))
	assert.Equal(t, "abc", TruncateText("abcdef", 3))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 0), "非正上限表示不截断")

	// 多字节字符按字符数截断，不能截出半个字符
	assert.Equal(t, "навы", TruncateText("навыки", 4))
	assert.Equal(t, TruncateText("навыки", 4), TruncateText("навыки", 4))
}

// TestScorePairTruncationApplied 验证截断在消费时生效
func TestScorePairTruncationApplied(t *testing.T) {
	// 职位名称出现在截断点之后，截断后该维度无信号
	longPrefix := strings.Repeat("а", 100)
	texts := &stubTextProvider{texts: map[string]string{
		"resume.pdf": longPrefix + "\nЖелаемая позиция: Backend Engineer",
		"job.pdf":    "Название вакансии: Backend Engineer",
	}}
	engine := newTestEngine(t)
	scorer := NewPairScorer(texts, engine, &stubEmbedder{}, 50)

	result := scorer.ScorePair(context.Background(), "resume.pdf", "job.pdf")

	require.NotEmpty(t, result.SectionScores)
	assert.Equal(t, 0.0, result.SectionScores[ScoreTitle], "截断后的文本里已没有职位名称")
}
