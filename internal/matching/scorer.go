package matching

import (
	"context"
	"strings"
)

// TextProvider 提供文档的纯文本内容，通常由按内容寻址的文本缓存实现
type TextProvider interface {
	GetText(ctx context.Context, path string) (string, error)
}

// PairScorer 对单个(简历, 职位)对执行完整打分流程：
// 取文本 → 截断 → 分段 → 相似度计算 → 解释生成
type PairScorer struct {
	texts    TextProvider
	engine   *SimilarityEngine
	embedder Embedder
	maxChars int
}

// NewPairScorer 创建打分器，所有依赖显式注入
func NewPairScorer(texts TextProvider, engine *SimilarityEngine, embedder Embedder, maxChars int) *PairScorer {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &PairScorer{
		texts:    texts,
		engine:   engine,
		embedder: embedder,
		maxChars: maxChars,
	}
}

// defaultMaxChars 参与匹配计算的文本截断长度默认值
const defaultMaxChars = 4000

// TruncateText 按字符数截断文本，相同输入总在同一位置截断
func TruncateText(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}

// ScorePair 对一对文档打分并打包结果
// 单对文档的任何错误（文本提取、向量计算）都在此边界吸收为零分结果，
// 错误详情写入解释字段，保证批处理中其余文档对不受影响
func (s *PairScorer) ScorePair(ctx context.Context, resumePath, jobPath string) MatchResult {
	resumeText, err := s.texts.GetText(ctx, resumePath)
	if err != nil {
		return errorResult("Ошибка извлечения текста: " + err.Error())
	}
	jobText, err := s.texts.GetText(ctx, jobPath)
	if err != nil {
		return errorResult("Ошибка извлечения текста: " + err.Error())
	}

	// 截断发生在消费时，缓存里保存的是全文
	resumeText = TruncateText(resumeText, s.maxChars)
	jobText = TruncateText(jobText, s.maxChars)

	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return MatchResult{
			Score:         0.0,
			SectionScores: SectionScores{},
			Explanation:   ExplanationNoText,
		}
	}

	resumeSections := ExtractResumeSections(resumeText)
	jobSections := ExtractJobSections(jobText)

	total, scores, err := s.engine.ScoreSections(ctx, resumeSections, jobSections, s.embedder)
	if err != nil {
		return errorResult("Ошибка вычисления соответствия: " + err.Error())
	}

	return MatchResult{
		Score:         total,
		SectionScores: scores,
		Explanation:   GenerateExplanation(scores, total),
	}
}

// errorResult 将错误信息打包为零分结果
func errorResult(detail string) MatchResult {
	return MatchResult{
		Score:         0.0,
		SectionScores: SectionScores{},
		Explanation:   detail,
	}
}
