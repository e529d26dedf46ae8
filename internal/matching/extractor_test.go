package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractResumeSectionsRussianHeaders 验证俄语标题模式的简历分段
func TestExtractResumeSectionsRussianHeaders(t *testing.T) {
	text := `Иванов Иван
Желаемая позиция: Backend Engineer
Обо мне: Опытный разработчик с интересом к распределённым системам.
Навыки: Go, PostgreSQL, Docker
Опыт работы: 5 лет в финтехе, разработка платёжных сервисов.
Образование: МГУ, прикладная математика
Сертификаты: AWS SAA`

	sections := ExtractResumeSections(text)

	assert.Equal(t, "Backend Engineer", sections[FieldPosition], "期望职位提取错误")
	assert.Contains(t, sections[FieldAbout], "Опытный разработчик", "自述提取错误")
	assert.Contains(t, sections[FieldSkills], "Go, PostgreSQL, Docker", "技能提取错误")
	assert.Contains(t, sections[FieldExperience], "5 лет в финтехе", "经历提取错误")
	assert.Contains(t, sections[FieldEducation], "МГУ", "教育经历提取错误")
}

// TestExtractResumeSectionsEnglishHeaders 验证英语标题模式作为次级候选
func TestExtractResumeSectionsEnglishHeaders(t *testing.T) {
	text := `John Smith
Objective: Senior Go Developer
Skills: Go, Kubernetes, gRPC
Work Experience: Built billing pipelines at a fintech startup.
Education: BSc Computer Science`

	sections := ExtractResumeSections(text)

	assert.Equal(t, "Senior Go Developer", sections[FieldPosition])
	assert.Contains(t, sections[FieldSkills], "Go, Kubernetes, gRPC")
	assert.Contains(t, sections[FieldExperience], "billing pipelines")
	assert.Contains(t, sections[FieldEducation], "BSc Computer Science")
}

// TestExtractResumeSectionsAllKeysPresent 验证所有字段键始终存在，未命中为空字符串
func TestExtractResumeSectionsAllKeysPresent(t *testing.T) {
	sections := ExtractResumeSections("совершенно нерелевантный текст без заголовков и с одним длинным предложением которое ни на что не похоже")

	for _, field := range ResumeFieldOrder {
		_, ok := sections[field]
		assert.True(t, ok, "字段 %s 的键必须存在", field)
	}
}

// TestExtractResumePositionFallback 验证标题模式未命中时的短行兜底扫描
func TestExtractResumePositionFallback(t *testing.T) {
	text := `тел: +7 999 123-45-67
email: analyst@example.com
Senior Data Analyst
Опыт работы: анализ данных в ритейле`

	sections := ExtractResumeSections(text)

	assert.Equal(t, "Senior Data Analyst", sections[FieldPosition], "兜底扫描应取第一条合格的短行")
}

// TestExtractResumePositionFallbackSkipsContactLines 验证兜底扫描跳过联系信息行
func TestExtractResumePositionFallbackSkipsContactLines(t *testing.T) {
	text := `Гражданство Россия возраст 30
Java Developer Middle
дальше обычный текст`

	sections := ExtractResumeSections(text)

	assert.Equal(t, "Java Developer Middle", sections[FieldPosition])
}

// TestExtractResumeSkillsAdditionalInfoFallback 验证"补充信息"段落作为技能兜底
func TestExtractResumeSkillsAdditionalInfoFallback(t *testing.T) {
	text := `Желаемая позиция: QA Engineer
Опыт работы: ручное тестирование веб-приложений
Дополнительная информация: Selenium, Python, умение писать автотесты`

	sections := ExtractResumeSections(text)

	assert.Contains(t, sections[FieldSkills], "Selenium, Python", "技能应来自补充信息段落")
}

// TestExtractResumeSkillsAboutFallback 验证所有技能模式失败后复用自述文本
func TestExtractResumeSkillsAboutFallback(t *testing.T) {
	text := `Желаемая позиция: DevOps Engineer
Обо мне: Администрирую Linux, настраиваю CI/CD, люблю автоматизацию.
Опыт работы: 3 года поддержки инфраструктуры`

	sections := ExtractResumeSections(text)

	require.NotEmpty(t, sections[FieldAbout])
	assert.Equal(t, sections[FieldAbout], sections[FieldSkills], "无技能栏时技能应复用自述文本")
}

// TestExtractResumeWhitespaceCollapsed 验证捕获文本的空白折叠
func TestExtractResumeWhitespaceCollapsed(t *testing.T) {
	text := "Навыки:  Go,\n\tDocker,   Kafka\nОбразование: где-то"

	sections := ExtractResumeSections(text)

	assert.Equal(t, "Go, Docker, Kafka", sections[FieldSkills], "连续空白必须折叠为单个空格")
}

// TestExtractJobSections 验证职位描述的分段
func TestExtractJobSections(t *testing.T) {
	text := `Название компании: ООО Рога и Копыта
Название вакансии: Backend Engineer
Локация: Москва
Требования: Высшее образование, опыт Go от 3 лет
Обязанности: разработка и поддержка микросервисов`

	sections := ExtractJobSections(text)

	assert.Equal(t, "ООО Рога и Копыта", sections[FieldJobCompany])
	assert.Equal(t, "Backend Engineer", sections[FieldJobTitle])
	assert.Equal(t, "Москва", sections[FieldJobLocation])
	assert.Contains(t, sections[FieldJobRequirements], "опыт Go от 3 лет")
	assert.Contains(t, sections[FieldJobResponsibilities], "микросервисов")
}

// TestExtractJobEducationDerivedFromRequirements 验证学历要求从任职要求文本派生
func TestExtractJobEducationDerivedFromRequirements(t *testing.T) {
	text := `Название вакансии: Аналитик
Требования: Высшее образование, SQL, Excel
Обязанности: отчётность`

	sections := ExtractJobSections(text)

	assert.NotEmpty(t, sections[FieldJobEducation], "任职要求中含学历条款时education不应为空")
	assert.Contains(t, sections[FieldJobRequirements], "SQL")
}

// TestExtractJobEducationAbsent 验证无学历条款时education为空字符串且键存在
func TestExtractJobEducationAbsent(t *testing.T) {
	text := `Название вакансии: Курьер
Требования: наличие велосипеда
Обязанности: доставка заказов`

	sections := ExtractJobSections(text)

	val, ok := sections[FieldJobEducation]
	require.True(t, ok, "education键必须存在")
	assert.Equal(t, "", val)
}

// TestExtractJobSectionsAllKeysPresent 验证职位字段键的完整性
func TestExtractJobSectionsAllKeysPresent(t *testing.T) {
	sections := ExtractJobSections("пустой текст")

	for _, field := range JobFieldOrder {
		_, ok := sections[field]
		assert.True(t, ok, "字段 %s 的键必须存在", field)
	}
}

// TestFirstMatchPriorityOrder 验证模式按优先级先命中者生效，不做合并
func TestFirstMatchPriorityOrder(t *testing.T) {
	// 俄语与英语标题同时存在时，排在前面的俄语模式生效
	text := `Желаемая позиция: Инженер
Objective: Engineer`

	sections := ExtractResumeSections(text)

	assert.Equal(t, "Инженер", sections[FieldPosition])
}
