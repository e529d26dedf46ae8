package matching

import (
	"fmt"
	"math"
)

// WeightTable 各比较维度的固定权重，总和必须为1.0
// 权重值是调参得到的策略参数，不是结构性约束
type WeightTable map[string]float64

// DefaultWeights 返回默认权重表：职位名称0.5、技能0.2、经验0.2、教育0.1
func DefaultWeights() WeightTable {
	return WeightTable{
		ScoreTitle:      0.5,
		ScoreSkills:     0.2,
		ScoreExperience: 0.2,
		ScoreEducation:  0.1,
	}
}

// Validate 校验权重表：每个比较维度必须有 (0, 1] 区间内的权重，且总和为1.0
func (w WeightTable) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("权重表不能为空")
	}
	var sum float64
	for _, field := range ScoreFieldOrder {
		weight, ok := w[field]
		if !ok {
			return fmt.Errorf("权重表缺少字段 %s", field)
		}
		if weight <= 0 || weight > 1 {
			return fmt.Errorf("字段 %s 的权重 %v 必须在 (0, 1] 区间内", field, weight)
		}
		sum += weight
	}
	if len(w) != len(ScoreFieldOrder) {
		return fmt.Errorf("权重表包含未知字段")
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("权重总和必须为1.0，当前为 %v", sum)
	}
	return nil
}
