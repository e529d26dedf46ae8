package matching

import (
	"regexp"
	"strings"
	"unicode"
)

// 分段提取基于俄/英双语的标题关键词模式
// 每个字段按优先级维护一组候选模式，先命中且捕获组非空者生效，不做跨模式合并

// extractRule 单个字段的有序候选模式
type extractRule struct {
	field    string
	patterns []*regexp.Regexp
}

// 简历字段的提取规则表
var resumeRules = []extractRule{
	{
		// 期望职位只按行内提取，不允许跨行捕获
		field: FieldPosition,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Желаемая\s+(?:позиция|должность).*?:?\s*\n?([^\n]+)`),
			regexp.MustCompile(`(?i)Целевая\s+(?:позиция|роль).*?:?\s*\n?([^\n]+)`),
			regexp.MustCompile(`(?i)Desired\s+(?:position|role|job).*?:?\s*\n?([^\n]+)`),
			regexp.MustCompile(`(?i)Objective\s*:?\s*\n?([^\n]+)`),
		},
	},
	{
		field: FieldAbout,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:Обо мне|Профиль).*?:(.*?)(?:Навыки|Опыт работы|$)`),
			regexp.MustCompile(`(?is)(?:Profile|Summary|About\s+me).*?:(.*?)(?:Skills|Experience|Education|$)`),
		},
	},
	{
		field: FieldSkills,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Навыки.*?:(.*?)(?:Опыт работы|Образование|$)`),
			regexp.MustCompile(`(?is)Skills.*?:(.*?)(?:Experience|Education|$)`),
		},
	},
	{
		field: FieldExperience,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Опыт\s+работы.*?:(.*?)(?:Образование|Сертификаты|Навыки|$)`),
			regexp.MustCompile(`(?is)Work\s+Experience.*?:(.*?)(?:Education|Skills|Certificates|$)`),
		},
	},
	{
		field: FieldEducation,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Образование.*?:(.*?)(?:Сертификаты|Навыки|$)`),
			regexp.MustCompile(`(?is)Education.*?:(.*?)(?:Certificates|Skills|Experience|$)`),
		},
	},
}

// 职位字段的提取规则表
var jobRules = []extractRule{
	{
		field: FieldJobCompany,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Название компании.*?:\s*(.*?)(?:Название вакансии|Локация|Требования|$)`),
			regexp.MustCompile(`(?is)Company\s*(?:name)?\s*:\s*(.*?)(?:Job\s+title|Location|Requirements|$)`),
		},
	},
	{
		field: FieldJobTitle,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Название вакансии:\s*(.*?)(?:Локация|Требования|$)`),
			regexp.MustCompile(`(?is)(?:Job\s+title|Vacancy|Position)\s*:\s*(.*?)(?:Location|Requirements|$)`),
		},
	},
	{
		field: FieldJobLocation,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Локация:\s*(.*?)(?:Требования|Обязанности|$)`),
			regexp.MustCompile(`(?is)Location\s*:\s*(.*?)(?:Requirements|Responsibilities|$)`),
		},
	},
	{
		field: FieldJobRequirements,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Требования.*?:\s*(.*?)(?:Обязанности|$)`),
			regexp.MustCompile(`(?is)Requirements.*?:\s*(.*?)(?:Responsibilities|$)`),
		},
	},
	{
		field: FieldJobResponsibilities,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)Обязанности.*?:\s*(.*)$`),
			regexp.MustCompile(`(?is)Responsibilities.*?:\s*(.*)$`),
		},
	},
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// 期望职位兜底扫描时需要跳过的联系方式行
	contactInfoRe = regexp.MustCompile(`(?i)(тел|email|citizenship|гражданство|возраст)`)
	// 无显式技能栏时尝试的"补充信息"尾部段落
	additionalInfoRe = regexp.MustCompile(`(?is)Дополнительная информация\s*:?\s*(.*)`)
	// 职位学历要求从任职要求文本中检索，而非独立的顶层模式
	degreeRequirementRe = regexp.MustCompile(`(?i)(?:высшее\s+образование|higher\s+education|bachelor)`)
)

// 期望职位兜底扫描的行数上限
const positionScanLines = 15

// collapseWhitespace 将连续空白折叠为单个空格并去除首尾空白
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// firstMatch 按优先级依次尝试模式，返回第一个非空捕获
// 模式含多个捕获组时取最后一个非空组（前置组用于标题别名）
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for i := len(m) - 1; i >= 1; i-- {
			if val := collapseWhitespace(m[i]); val != "" {
				return val
			}
		}
	}
	return ""
}

// ExtractResumeSections 将简历纯文本分段为固定字段集
// 所有字段键始终存在，兜底全部失败后保持空字符串
func ExtractResumeSections(text string) SectionMap {
	text = strings.TrimSpace(text)
	sections := make(SectionMap, len(resumeRules))
	for _, rule := range resumeRules {
		sections[rule.field] = firstMatch(text, rule.patterns)
	}

	// 兜底1：标题模式未命中时，在文档开头若干行内找一条短职位行
	if sections[FieldPosition] == "" {
		sections[FieldPosition] = fallbackPositionLine(text)
	}

	// 兜底2：无显式技能栏时尝试"补充信息"段落
	if sections[FieldSkills] == "" {
		if m := additionalInfoRe.FindStringSubmatch(text); m != nil {
			sections[FieldSkills] = collapseWhitespace(m[1])
		}
	}

	// 兜底3：仍为空时复用自述文本，技能与自我描述视为重叠信号
	if sections[FieldSkills] == "" && sections[FieldAbout] != "" {
		sections[FieldSkills] = sections[FieldAbout]
	}

	return sections
}

// fallbackPositionLine 在文档前若干行中寻找一条以大写字母开头的短行（2-6个词）
// 跳过包含电话、邮箱、国籍、年龄等联系信息关键词的行
func fallbackPositionLine(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > positionScanLines {
		lines = lines[:positionScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if contactInfoRe.MatchString(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 6 {
			continue
		}
		if first := []rune(line)[0]; unicode.IsUpper(first) {
			return line
		}
	}
	return ""
}

// ExtractJobSections 将职位描述纯文本分段为固定字段集
// 学历要求不设独立的顶层模式，而是在已提取的任职要求文本中检索学历条款
func ExtractJobSections(text string) SectionMap {
	text = strings.TrimSpace(text)
	sections := make(SectionMap, len(jobRules)+1)
	for _, rule := range jobRules {
		sections[rule.field] = firstMatch(text, rule.patterns)
	}

	sections[FieldJobEducation] = ""
	if req := sections[FieldJobRequirements]; req != "" {
		if clause := degreeRequirementRe.FindString(req); clause != "" {
			sections[FieldJobEducation] = strings.TrimSpace(clause)
		}
	}

	return sections
}
