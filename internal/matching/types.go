package matching // 简历与职位描述匹配的核心逻辑：分段、相似度计算、解释生成与归一化

// 简历文档的固定字段集
const (
	FieldPosition   = "position"   // 期望职位
	FieldAbout      = "about"      // 自我描述
	FieldSkills     = "skills"     // 技能
	FieldExperience = "experience" // 工作经历
	FieldEducation  = "education"  // 教育经历
)

// 职位描述文档的固定字段集
const (
	FieldJobCompany          = "company"          // 公司名称
	FieldJobTitle            = "title"            // 职位名称
	FieldJobLocation         = "location"         // 工作地点
	FieldJobRequirements     = "requirements"     // 任职要求
	FieldJobResponsibilities = "responsibilities" // 工作职责
	FieldJobEducation        = "education"        // 学历要求，从任职要求中派生
)

// 比较维度（得分字段），简历字段与职位字段的交集
const (
	ScoreTitle      = "title"
	ScoreSkills     = "skills"
	ScoreExperience = "experience"
	ScoreEducation  = "education"
)

// ScoreFieldOrder 比较维度的规范顺序，打分、加权与并列裁决都按此顺序遍历
var ScoreFieldOrder = []string{ScoreTitle, ScoreSkills, ScoreExperience, ScoreEducation}

// ResumeFieldOrder 简历字段的规范顺序
var ResumeFieldOrder = []string{FieldPosition, FieldAbout, FieldSkills, FieldExperience, FieldEducation}

// JobFieldOrder 职位字段的规范顺序
var JobFieldOrder = []string{
	FieldJobCompany, FieldJobTitle, FieldJobLocation,
	FieldJobRequirements, FieldJobResponsibilities, FieldJobEducation,
}

// SectionMap 文档分段结果：固定字段名到提取文本的映射
// 不变式：识别的每个字段键始终存在，未命中时值为空字符串而非缺键
type SectionMap map[string]string

// SectionScores 各比较维度的相似度得分，取值范围 [0, 100]
type SectionScores map[string]float64

// MatchResult 单个(简历, 职位)对的匹配结果，创建后不再修改
type MatchResult struct {
	Score         float64       `json:"score"`          // 加权总分，范围 [0, 100]
	SectionScores SectionScores `json:"section_scores"` // 各维度得分
	Explanation   string        `json:"explanation"`    // 人类可读的匹配解释
}
