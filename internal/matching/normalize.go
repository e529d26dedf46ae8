package matching

// NormalizeScores 将一批原始总分线性缩放到 0-100 区间，用于同一职位下跨候选人排序
// 输入输出长度与顺序一致；空输入返回空切片；所有得分相等时统一返回50.0，
// 既避免除零也表示这批得分没有区分度。只在同一职位的批次内使用，不跨职位混用
func NormalizeScores(scores []float64) []float64 {
	if len(scores) == 0 {
		return []float64{}
	}

	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	normalized := make([]float64, len(scores))
	if maxScore == minScore {
		for i := range normalized {
			normalized[i] = 50.0
		}
		return normalized
	}

	for i, s := range scores {
		normalized[i] = (s - minScore) / (maxScore - minScore) * 100
	}
	return normalized
}
