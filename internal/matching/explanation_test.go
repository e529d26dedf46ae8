package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerateExplanationEmptyScores 验证空得分表返回固定文案
func TestGenerateExplanationEmptyScores(t *testing.T) {
	assert.Equal(t, "Недостаточно данных для объяснения совпадения.", GenerateExplanation(nil, 0))
	assert.Equal(t, "Недостаточно данных для объяснения совпадения.", GenerateExplanation(SectionScores{}, 0))
}

// TestGenerateExplanationAllZero 验证全零得分返回无匹配文案
func TestGenerateExplanationAllZero(t *testing.T) {
	scores := SectionScores{
		ScoreTitle:      0,
		ScoreSkills:     0,
		ScoreExperience: 0,
		ScoreEducation:  0,
	}
	assert.Equal(t, "Совпадений не обнаружено. Проверьте формат документов.", GenerateExplanation(scores, 0))
}

// TestGenerateExplanationTiers 验证总分分层的边界取值
func TestGenerateExplanationTiers(t *testing.T) {
	scores := SectionScores{ScoreTitle: 50, ScoreSkills: 50}

	testCases := []struct {
		total  float64
		prefix string
	}{
		{80, "Отличное совпадение (80%)."},
		{60, "Отличное совпадение (60%)."},
		{59.99, "Хорошее совпадение (59.99%)."},
		{40, "Хорошее совпадение (40%)."},
		{39.99, "Среднее совпадение (39.99%)."},
		{20, "Среднее совпадение (20%)."},
		{19.99, "Низкое совпадение (19.99%)."},
		{0, "Низкое совпадение (0%)."},
	}

	for _, tc := range testCases {
		got := GenerateExplanation(scores, tc.total)
		assert.Contains(t, got, tc.prefix, "总分 %v", tc.total)
	}
}

// TestGenerateExplanationStrongestAndWeakest 验证最强与最弱维度的文案
func TestGenerateExplanationStrongestAndWeakest(t *testing.T) {
	scores := SectionScores{
		ScoreTitle:      90,
		ScoreSkills:     30,
		ScoreExperience: 10,
		ScoreEducation:  0,
	}
	got := GenerateExplanation(scores, 55.5)

	assert.Equal(t,
		"Хорошее совпадение (55.5%). "+
			"Сильнее всего: «название должности» (90%). "+
			"Слабее всего: «опыт и обязанности» (10%).",
		got)
}

// TestGenerateExplanationTieBreakCanonicalOrder 验证并列得分按规范维度顺序取第一个
func TestGenerateExplanationTieBreakCanonicalOrder(t *testing.T) {
	scores := SectionScores{
		ScoreTitle:      80,
		ScoreSkills:     80,
		ScoreExperience: 10,
		ScoreEducation:  0,
	}
	got := GenerateExplanation(scores, 58)

	// 并列最高分取title（顺序靠前），教育为0不参与最弱比较
	assert.Contains(t, got, "Сильнее всего: «название должности» (80%).")
	assert.Contains(t, got, "Слабее всего: «опыт и обязанности» (10%).")
}

// TestGenerateExplanationSingleNonZeroOmitsWeakest 验证仅一个非零维度时不输出最弱维度
func TestGenerateExplanationSingleNonZeroOmitsWeakest(t *testing.T) {
	scores := SectionScores{
		ScoreTitle:      100,
		ScoreSkills:     0,
		ScoreExperience: 0,
		ScoreEducation:  0,
	}
	got := GenerateExplanation(scores, 50)

	assert.Contains(t, got, "Сильнее всего: «название должности» (100%).")
	assert.NotContains(t, got, "Слабее всего")
}

// TestGenerateExplanationZeroScoresExcluded 验证零分维度不参与最强最弱比较
func TestGenerateExplanationZeroScoresExcluded(t *testing.T) {
	scores := SectionScores{
		ScoreTitle:      0,
		ScoreSkills:     5,
		ScoreExperience: 70,
		ScoreEducation:  0,
	}
	got := GenerateExplanation(scores, 15)

	assert.Contains(t, got, "Сильнее всего: «опыт и обязанности» (70%).")
	assert.Contains(t, got, "Слабее всего: «навыки и требования» (5%).")
	assert.NotContains(t, got, "«название должности»")
	assert.NotContains(t, got, "«образование»")
}

// TestFormatScoreShortestDecimal 验证得分的最短小数表示
func TestFormatScoreShortestDecimal(t *testing.T) {
	assert.Equal(t, "80", formatScore(80))
	assert.Equal(t, "43.5", formatScore(43.5))
	assert.Equal(t, "66.67", formatScore(66.67))
	assert.Equal(t, "0", formatScore(0))
}
