package extractor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// Engine 简历语义提取引擎。
// 一次构造可并发复用：所有可变状态都在调用栈或带锁缓存里。
// NER与向量后端均为可选能力，不配置时退化为纯规则管道，结果结构不变。
type Engine struct {
	segmenter *Segmenter
	scorer    *Scorer
	logger    zerolog.Logger
}

// Option 引擎的可选配置
type Option func(*engineOptions)

type engineOptions struct {
	ner      NERProvider
	embedder Embedder
	logger   zerolog.Logger
}

// WithNER 注入命名实体识别后端
func WithNER(ner NERProvider) Option {
	return func(o *engineOptions) { o.ner = ner }
}

// WithEmbedder 注入文本向量后端
func WithEmbedder(e Embedder) Option {
	return func(o *engineOptions) { o.embedder = e }
}

// WithLogger 注入结构化日志器
func WithLogger(l zerolog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// NewEngine 创建提取引擎
func NewEngine(opts ...Option) *Engine {
	o := engineOptions{logger: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Engine{
		segmenter: NewSegmenter(o.embedder),
		scorer:    NewScorer(o.ner, o.embedder),
		logger:    o.logger,
	}
}

// ExtractAndNormalize 运行完整提取管道并返回归一化后的结果。
// sections 为 nil 时先做章节切分。任何子提取器失败只损失对应字段，
// 返回的记录始终满足模式契约（所有键存在、类型正确）。
func (e *Engine) ExtractAndNormalize(ctx context.Context, rawText string, sections *types.Sections) (*types.ParseResult, error) {
	if sections == nil {
		sections = e.segmenter.Segment(ctx, rawText)
	}

	rec := types.NewSchemaRecord()
	candidates := CollectCandidates(rawText, sections)
	fieldScores := make(map[string]float64)

	// 身份字段：候选评分选优
	if c, score := e.scorer.SelectBest(ctx, FieldName, candidates[FieldName]); c != nil {
		rec.Name = sanitizeName(c.Text)
		fieldScores["name"] = score
	}
	if c, score := e.scorer.SelectBest(ctx, FieldEmail, candidates[FieldEmail]); c != nil {
		rec.Email = c.Text
		fieldScores["email"] = score
	}
	if c, score := e.scorer.SelectBest(ctx, FieldPhoneNumber, candidates[FieldPhoneNumber]); c != nil {
		rec.PhoneNumber = c.Text
		fieldScores["phoneNumber"] = score
	}
	if c, score := e.scorer.SelectBest(ctx, FieldSummary, candidates[FieldSummary]); c != nil {
		rec.Summary = c.Text
		fieldScores["summary"] = score
	}

	// 教育：结构化解析优先，候选选优兜底
	e.fillEducation(ctx, rec, sections, candidates, fieldScores)

	// 工作经历
	rec.WorkExperience = ExtractWorkExperience(sections)

	// 证书：候选行去重收集
	rec.Certifications = collectLines(candidates[FieldCertifications])

	// 技能
	skills := ExtractSkills(sections.Get(types.SectionSkills))
	rec.SkillsByCategory = ClassifySkills(skills)

	// 考试成绩
	rec.TestScores = ExtractTestScores(sections, rawText)

	// 列表章节直取
	rec.ExtraCurricularActivities = sectionLines(sections, types.SectionExtracurricular)
	rec.ResearchPublications = sectionLines(sections, types.SectionPublications)
	rec.Achievements = sectionLines(sections, types.SectionAchievements)

	rec = Normalize(rec, sections)
	confidence := BuildConfidence(rec, fieldScores)

	e.logger.Debug().
		Int("sections", sections.Len()).
		Int("work_entries", len(rec.WorkExperience)).
		Float64("overall_quality", confidence.OverallQualityScore).
		Msg("提取管道完成")

	return &types.ParseResult{Parsed: rec, Confidence: confidence}, nil
}

// fillEducation 将教育解析结果写入记录，机构名缺失时用候选选优兜底
func (e *Engine) fillEducation(ctx context.Context, rec *types.SchemaRecord, sections *types.Sections, candidates map[Field][]Candidate, fieldScores map[string]float64) {
	var degreeLines []string
	for _, c := range candidates[FieldDegree] {
		degreeLines = append(degreeLines, c.Text)
	}
	edu := ParseEducation(sections, degreeLines)

	rec.HighSchoolName = edu.HighSchoolName
	rec.HighSchoolGpaOrPercentage = edu.HighSchoolGpa
	rec.HighSchoolGpaScale = edu.HighSchoolGpaScale
	rec.HighSchoolBoard = edu.HighSchoolBoard
	rec.HighSchoolGraduationYear = edu.HighSchoolYear

	rec.UgCollegeName = edu.UgCollegeName
	rec.UgDegree = edu.UgDegree
	rec.UgMajor = edu.UgMajor
	rec.UgCollegeGpaOrPercentage = edu.UgGpa
	rec.UgCollegeGpaScale = edu.UgGpaScale
	rec.UgGraduationYear = edu.UgYear

	rec.PgCollegeName = edu.PgCollegeName
	rec.PgDegree = edu.PgDegree
	rec.PgMajor = edu.PgMajor
	rec.PgCollegeGpaOrPercentage = edu.PgGpa
	rec.PgCollegeGpaScale = edu.PgGpaScale
	rec.PgGraduationYear = edu.PgYear

	if rec.UgCollegeName == "" {
		if c, score := e.scorer.SelectBest(ctx, FieldUgCollegeName, candidates[FieldUgCollegeName]); c != nil {
			rec.UgCollegeName = c.Text
			fieldScores["ugCollegeName"] = score
		}
	}
}

// nameLabelSuffixRe 姓名行尾部的联系方式标签残留
var nameLabelSuffixRe = strings.NewReplacer("email", "", "Email", "", "phone", "", "Phone", "", ":", "")

// sanitizeName 清洗姓名候选：
// 剥离尾部联系方式标签，命中黑名单词或叙述词时整体拒绝
func sanitizeName(name string) string {
	name = cleanLine(nameLabelSuffixRe.Replace(name))
	if name == "" {
		return ""
	}
	if nameBlacklistRe.MatchString(name) || conflictRe.MatchString(name) {
		return ""
	}
	return name
}

// collectLines 候选行去重后按原顺序收集
func collectLines(cands []Candidate) []string {
	var lines []string
	for _, c := range cands {
		lines = append(lines, c.Text)
	}
	return dedupeStrings(lines)
}

// sectionLines 取章节非空行
func sectionLines(sections *types.Sections, label types.SectionLabel) []string {
	if sections == nil {
		return nil
	}
	return splitLines(sections.Get(label))
}
