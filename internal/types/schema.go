package types

// SectionLabel 表示简历章节的规范标签
type SectionLabel = string

const (
	// SectionHeader 文档顶部区域（姓名、联系方式所在）
	SectionHeader SectionLabel = "header"
	// SectionContact 联系方式章节
	SectionContact SectionLabel = "contact"
	// SectionSummary 个人简介章节
	SectionSummary SectionLabel = "summary"
	// SectionEducation 教育经历章节
	SectionEducation SectionLabel = "education"
	// SectionExperience 工作经历章节
	SectionExperience SectionLabel = "experience"
	// SectionSkills 技能章节
	SectionSkills SectionLabel = "skills"
	// SectionProjects 项目经历章节
	SectionProjects SectionLabel = "projects"
	// SectionCertifications 证书章节
	SectionCertifications SectionLabel = "certifications"
	// SectionPublications 论文发表章节
	SectionPublications SectionLabel = "publications"
	// SectionAchievements 获奖经历章节
	SectionAchievements SectionLabel = "achievements"
	// SectionExtracurricular 课外活动章节
	SectionExtracurricular SectionLabel = "extracurricular"
	// SectionTestScores 考试成绩章节
	SectionTestScores SectionLabel = "test_scores"
	// SectionLanguages 语言能力章节
	SectionLanguages SectionLabel = "languages"
	// SectionInterests 兴趣爱好章节
	SectionInterests SectionLabel = "interests"
	// SectionOther 未分类内容章节
	SectionOther SectionLabel = "other"
)

// Section 表示一个带标签的简历章节
type Section struct {
	Label SectionLabel // 规范标签，或未匹配时的自由标题文本（小写）
	Text  string       // 章节正文
}

// Sections 保序的章节集合。
// 同一标签只保留一个合并后的文本块：重复标题按出现顺序拼接，空行分隔。
type Sections struct {
	order []SectionLabel
	index map[SectionLabel]int
	items []Section
}

// NewSections 创建空的章节集合
func NewSections() *Sections {
	return &Sections{index: make(map[SectionLabel]int)}
}

// Append 向指定标签追加文本。标签已存在时内容以空行拼接，保持首次出现的位置。
func (s *Sections) Append(label SectionLabel, text string) {
	if i, ok := s.index[label]; ok {
		if text != "" {
			if s.items[i].Text != "" {
				s.items[i].Text += "\n\n" + text
			} else {
				s.items[i].Text = text
			}
		}
		return
	}
	s.index[label] = len(s.items)
	s.order = append(s.order, label)
	s.items = append(s.items, Section{Label: label, Text: text})
}

// Get 返回标签对应的文本，不存在时返回空串
func (s *Sections) Get(label SectionLabel) string {
	if i, ok := s.index[label]; ok {
		return s.items[i].Text
	}
	return ""
}

// Has 判断标签是否存在
func (s *Sections) Has(label SectionLabel) bool {
	_, ok := s.index[label]
	return ok
}

// Labels 按出现顺序返回全部标签
func (s *Sections) Labels() []SectionLabel {
	out := make([]SectionLabel, len(s.order))
	copy(out, s.order)
	return out
}

// Len 返回章节数量
func (s *Sections) Len() int {
	return len(s.items)
}

// All 按出现顺序返回全部章节
func (s *Sections) All() []Section {
	out := make([]Section, len(s.items))
	copy(out, s.items)
	return out
}

// ToMap 转换为 label→text 映射（丢失顺序，仅用于序列化展示）
func (s *Sections) ToMap() map[string]string {
	out := make(map[string]string, len(s.items))
	for _, sec := range s.items {
		out[sec.Label] = sec.Text
	}
	return out
}

// WorkExperienceEntry 表示一段工作经历。
// 保留条件：组织/职位至少有其一，且起止年份至少有其一。
type WorkExperienceEntry struct {
	Organization string   `json:"organization"`
	Title        string   `json:"title"`
	StartYear    string   `json:"startYear"`
	EndYear      string   `json:"endYear"`
	Details      []string `json:"details"`
}

// TestScores 固定的六项考试成绩子映射，所有键始终存在
type TestScores struct {
	SAT   string `json:"sat"`
	ACT   string `json:"act"`
	GRE   string `json:"gre"`
	GMAT  string `json:"gmat"`
	TOEFL string `json:"toefl"`
	IELTS string `json:"ielts"`
}

// SchemaRecord 固定结构的解析结果。
// 契约：无论提取成功与否，每个键都必须存在且类型正确；
// 标量字段默认空串，列表字段默认空列表。
type SchemaRecord struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`

	Summary string `json:"summary"`

	HighSchoolName            string `json:"highSchoolName"`
	HighSchoolAddress         string `json:"highSchoolAddress"`
	HighSchoolGpaOrPercentage string `json:"highSchoolGpaOrPercentage"`
	HighSchoolGpaScale        string `json:"highSchoolGpaScale"`
	HighSchoolBoard           string `json:"highSchoolBoard"`
	HighSchoolGraduationYear  string `json:"highSchoolGraduationYear"`

	UgCollegeName            string `json:"ugCollegeName"`
	UgCollegeAddress         string `json:"ugCollegeAddress"`
	UgCollegeGpaOrPercentage string `json:"ugCollegeGpaOrPercentage"`
	UgCollegeGpaScale        string `json:"ugCollegeGpaScale"`
	UgUniversity             string `json:"ugUniversity"`
	UgGraduationYear         string `json:"ugGraduationYear"`
	UgDegree                 string `json:"ugDegree"`
	UgMajor                  string `json:"ugMajor"`

	PgCollegeName            string `json:"pgCollegeName"`
	PgCollegeAddress         string `json:"pgCollegeAddress"`
	PgCollegeGpaOrPercentage string `json:"pgCollegeGpaOrPercentage"`
	PgCollegeGpaScale        string `json:"pgCollegeGpaScale"`
	PgUniversity             string `json:"pgUniversity"`
	PgGraduationYear         string `json:"pgGraduationYear"`
	PgDegree                 string `json:"pgDegree"`
	PgMajor                  string `json:"pgMajor"`

	Certifications            []string              `json:"certifications"`
	ExtraCurricularActivities []string              `json:"extraCurricularActivities"`
	WorkExperience            []WorkExperienceEntry `json:"workExperience"`
	ResearchPublications      []string              `json:"researchPublications"`
	Achievements              []string              `json:"achievements"`

	TestScores TestScores `json:"testScores"`

	SkillsByCategory map[string][]string `json:"skillsByCategory"`
}

// NewSchemaRecord 创建所有列表字段均已初始化的空记录
func NewSchemaRecord() *SchemaRecord {
	return &SchemaRecord{
		Certifications:            []string{},
		ExtraCurricularActivities: []string{},
		WorkExperience:            []WorkExperienceEntry{},
		ResearchPublications:      []string{},
		Achievements:              []string{},
		SkillsByCategory:          map[string][]string{},
	}
}

// EntityFields 返回受"实体字段守卫"约束的标量字段指针映射。
// 这些字段应是短实体名而非叙述句，归一化时会施加长度上限与PII泄漏剥离。
func (r *SchemaRecord) EntityFields() map[string]*string {
	return map[string]*string{
		"name":              &r.Name,
		"highSchoolName":    &r.HighSchoolName,
		"highSchoolAddress": &r.HighSchoolAddress,
		"highSchoolBoard":   &r.HighSchoolBoard,
		"ugCollegeName":     &r.UgCollegeName,
		"ugCollegeAddress":  &r.UgCollegeAddress,
		"ugUniversity":      &r.UgUniversity,
		"ugDegree":          &r.UgDegree,
		"ugMajor":           &r.UgMajor,
		"pgCollegeName":     &r.PgCollegeName,
		"pgCollegeAddress":  &r.PgCollegeAddress,
		"pgUniversity":      &r.PgUniversity,
		"pgDegree":          &r.PgDegree,
		"pgMajor":           &r.PgMajor,
	}
}

// YearFields 返回所有毕业年份字段的指针映射
func (r *SchemaRecord) YearFields() map[string]*string {
	return map[string]*string{
		"highSchoolGraduationYear": &r.HighSchoolGraduationYear,
		"ugGraduationYear":         &r.UgGraduationYear,
		"pgGraduationYear":         &r.PgGraduationYear,
	}
}

// GpaPair GPA数值与刻度字段对
type GpaPair struct {
	Value *string
	Scale *string
}

// GpaFields 返回三组GPA字段对
func (r *SchemaRecord) GpaFields() map[string]GpaPair {
	return map[string]GpaPair{
		"highSchoolGpaOrPercentage": {&r.HighSchoolGpaOrPercentage, &r.HighSchoolGpaScale},
		"ugCollegeGpaOrPercentage":  {&r.UgCollegeGpaOrPercentage, &r.UgCollegeGpaScale},
		"pgCollegeGpaOrPercentage":  {&r.PgCollegeGpaOrPercentage, &r.PgCollegeGpaScale},
	}
}

// ConfidenceBundle 每个文档一次性重新计算的置信度集合
type ConfidenceBundle struct {
	// 字段原始得分 (0-1)
	FieldScores map[string]float64 `json:"field_scores"`
	// 字段百分比 (0-100)
	FieldPercentages map[string]float64 `json:"field_percentages"`
	// 加权总体质量得分 (0-100)
	OverallQualityScore float64 `json:"overall_quality_score"`
}

// ParseResult 管道最终输出：结构化记录 + 置信度
type ParseResult struct {
	Parsed     *SchemaRecord     `json:"parsed"`
	Confidence *ConfidenceBundle `json:"confidence,omitempty"`
}
