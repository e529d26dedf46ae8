package matching

import (
	"fmt"
	"strconv"
	"strings"
)

// 匹配解释面向俄语用户输出

// fieldLabels 比较维度到人类可读名称的固定映射，缺失条目回退到原始字段名
var fieldLabels = map[string]string{
	ScoreTitle:      "название должности",
	ScoreSkills:     "навыки и требования",
	ScoreExperience: "опыт и обязанности",
	ScoreEducation:  "образование",
}

// 固定的解释文案
const (
	explanationNoData  = "Недостаточно данных для объяснения совпадения."
	explanationNoMatch = "Совпадений не обнаружено. Проверьте формат документов."
	// ExplanationNoText 文档无法提取出文本时的固定解释
	ExplanationNoText = "Не удалось извлечь текст из документов."
)

// 匹配质量分层阈值，与权重一样属于可调策略
const (
	tierExcellent = 60.0
	tierGood      = 40.0
	tierAverage   = 20.0
)

// GenerateExplanation 将各维度得分与总分转换为简短的自然语言解释
// 先给出总分的定性分层，再指出最强与最弱的信号维度
// 并列时按规范维度顺序取第一个，保证结果确定
func GenerateExplanation(scores SectionScores, total float64) string {
	if len(scores) == 0 {
		return explanationNoData
	}

	nonZero := 0
	for _, v := range scores {
		if v > 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		return explanationNoMatch
	}

	var parts []string
	switch {
	case total >= tierExcellent:
		parts = append(parts, fmt.Sprintf("Отличное совпадение (%s%%).", formatScore(total)))
	case total >= tierGood:
		parts = append(parts, fmt.Sprintf("Хорошее совпадение (%s%%).", formatScore(total)))
	case total >= tierAverage:
		parts = append(parts, fmt.Sprintf("Среднее совпадение (%s%%).", formatScore(total)))
	default:
		parts = append(parts, fmt.Sprintf("Низкое совпадение (%s%%).", formatScore(total)))
	}

	best, worst := strongestAndWeakest(scores)
	parts = append(parts, fmt.Sprintf("Сильнее всего: «%s» (%s%%).", labelFor(best), formatScore(scores[best])))
	if nonZero > 1 {
		parts = append(parts, fmt.Sprintf("Слабее всего: «%s» (%s%%).", labelFor(worst), formatScore(scores[worst])))
	}

	return strings.Join(parts, " ")
}

// strongestAndWeakest 在非零维度中选出得分最高与最低的字段
// 遍历顺序为规范维度顺序，严格大于/小于比较保证并列时取顺序靠前者
func strongestAndWeakest(scores SectionScores) (best, worst string) {
	bestScore, worstScore := -1.0, -1.0
	for _, field := range ScoreFieldOrder {
		v, ok := scores[field]
		if !ok || v <= 0 {
			continue
		}
		if bestScore < 0 || v > bestScore {
			best, bestScore = field, v
		}
		if worstScore < 0 || v < worstScore {
			worst, worstScore = field, v
		}
	}
	return best, worst
}

func labelFor(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// formatScore 输出最短的小数表示：80 → "80"，43.5 → "43.5"
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
