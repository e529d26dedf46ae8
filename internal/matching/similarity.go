package matching

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Embedder 文本向量化接口
// 实现必须保证确定性：相同文本总是产出相同的定长向量，输入输出按序一一对应
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// SimilarityEngine 按固定的比较维度计算两个分段结果的相似度
// 比较维度固定为：职位名称、技能↔要求、经验↔职责、教育↔学历要求
type SimilarityEngine struct {
	weights WeightTable
}

// NewSimilarityEngine 创建相似度引擎，权重表不合法时返回错误
func NewSimilarityEngine(weights WeightTable) (*SimilarityEngine, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("权重表校验失败: %w", err)
	}
	return &SimilarityEngine{weights: weights}, nil
}

// Weights 返回引擎使用的权重表
func (e *SimilarityEngine) Weights() WeightTable {
	return e.weights
}

// comparisonPairs 组装固定的比较文本对
// 技能与经验两个维度都拼接自述文本作为补充信号
func comparisonPairs(resume, job SectionMap) map[string][2]string {
	combinedSkills := strings.TrimSpace(resume[FieldSkills] + "\n" + resume[FieldAbout])
	combinedExp := strings.TrimSpace(resume[FieldExperience] + "\n" + resume[FieldAbout])

	return map[string][2]string{
		ScoreTitle:      {resume[FieldPosition], job[FieldJobTitle]},
		ScoreSkills:     {combinedSkills, job[FieldJobRequirements]},
		ScoreExperience: {combinedExp, job[FieldJobResponsibilities]},
		ScoreEducation:  {resume[FieldEducation], job[FieldJobEducation]},
	}
}

// ScoreSections 计算按维度的相似度得分与加权总分
// 任一侧文本为空的维度得0分且不触发向量计算
func (e *SimilarityEngine) ScoreSections(ctx context.Context, resume, job SectionMap, embedder Embedder) (float64, SectionScores, error) {
	pairs := comparisonPairs(resume, job)

	scores := make(SectionScores, len(ScoreFieldOrder))
	for _, field := range ScoreFieldOrder {
		pair := pairs[field]
		resumeText, jobText := pair[0], pair[1]
		if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
			scores[field] = 0.0
			continue
		}

		vectors, err := embedder.EmbedStrings(ctx, []string{resumeText, jobText})
		if err != nil {
			return 0, nil, NewEmbeddingError(err.Error())
		}
		if len(vectors) != 2 {
			return 0, nil, NewEmbeddingError(fmt.Sprintf("期望2个向量，实际返回%d个", len(vectors)))
		}

		sim := cosineSimilarity(vectors[0], vectors[1])
		if sim < 0 {
			sim = 0
		}
		scores[field] = Round2(sim * 100)
	}

	var total float64
	for _, field := range ScoreFieldOrder {
		total += scores[field] * e.weights[field]
	}
	return Round2(total), scores, nil
}

// cosineSimilarity 计算余弦相似度
// 无论向量提供方是否已经归一化，这里都重新做L2归一化，保证得分范围正确
func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Round2 四舍五入到两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
