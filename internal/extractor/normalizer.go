package extractor

import (
	"strings"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// entityWordCeiling 实体字段的词数上限：超过说明提取到了叙述句而非实体名
const entityWordCeiling = 12

// Normalize 对记录做全量归一化守卫，返回副本，输入不被修改。
// 归一化是全函数且幂等的：任何输入都能产出合法记录，重复应用结果不变。
// sections 仅用于工作经历的组织回填，可以为 nil。
func Normalize(rec *types.SchemaRecord, sections *types.Sections) *types.SchemaRecord {
	if rec == nil {
		return types.NewSchemaRecord()
	}

	out := *rec

	// 标量统一折叠空白
	out.Name = cleanLine(out.Name)
	out.Email = cleanLine(out.Email)
	out.PhoneNumber = cleanLine(out.PhoneNumber)
	out.Summary = cleanLine(out.Summary)

	// 实体字段守卫：PII泄漏与叙述渗入直接清零，残缺值不如空值
	for _, p := range out.EntityFields() {
		*p = guardEntity(*p)
	}

	// 年份统一为 YYYY
	for _, p := range out.YearFields() {
		*p = NormalizeYear(*p)
	}

	// GPA：数值与刻度成对归一化
	for _, pair := range out.GpaFields() {
		v, s := NormalizeGpa(*pair.Value, *pair.Scale)
		*pair.Value = v
		*pair.Scale = s
	}

	out.Certifications = coerceList(out.Certifications)
	out.ExtraCurricularActivities = coerceList(out.ExtraCurricularActivities)
	out.ResearchPublications = coerceList(out.ResearchPublications)
	out.Achievements = coerceList(out.Achievements)

	if out.SkillsByCategory == nil {
		out.SkillsByCategory = map[string][]string{}
	}

	out.WorkExperience = normalizeWorkEntries(out.WorkExperience, sections)

	return &out
}

// guardEntity 实体字段守卫：
// 含邮箱、URL、7位以上连续数字，或超过12词时整体清零
func guardEntity(v string) string {
	v = cleanLine(v)
	if v == "" {
		return ""
	}
	if emailRe.MatchString(v) || urlRe.MatchString(v) || longDigitRe.MatchString(v) {
		return ""
	}
	if len(strings.Fields(v)) > entityWordCeiling {
		return ""
	}
	return v
}

// NormalizeGpa 归一化GPA数值与刻度对。
// 值含%或刻度为%时归为百分比；无刻度的纯数值按范围推断刻度；
// 推断不出刻度或值像年份时整对清零。
func NormalizeGpa(value, scale string) (string, string) {
	value = cleanLine(value)
	scale = cleanLine(scale)
	if value == "" {
		return "", ""
	}

	if strings.Contains(value, "%") || scale == "%" {
		return strings.TrimRight(strings.TrimSpace(value), "%"), "%"
	}

	if yearRe.MatchString(value) {
		return "", ""
	}
	if scale == "" {
		scale = inferGpaScale(value)
		if scale == "" {
			return "", ""
		}
	}
	return value, scale
}

// normalizeWorkEntries 工作经历守卫：
// 年份归一化、组织回填、保留条件过滤（组织/职位至少有其一 且
// 起止年份至少有其一）、合并去重、细节上限。
// 回填先于保留过滤，缺组织但职位/年份完整的条目不会被误删。
func normalizeWorkEntries(entries []types.WorkExperienceEntry, sections *types.Sections) []types.WorkExperienceEntry {
	prepared := make([]types.WorkExperienceEntry, 0, len(entries))
	for _, e := range entries {
		e.Organization = guardEntity(e.Organization)
		e.Title = cleanLine(e.Title)
		e.StartYear = NormalizeYear(e.StartYear)
		e.EndYear = ensureYearOrPresent(e.EndYear)
		e.Details = coerceList(e.Details)
		prepared = append(prepared, e)
	}
	prepared = FillMissingOrganizations(prepared, sections)

	cleaned := make([]types.WorkExperienceEntry, 0, len(prepared))
	for _, e := range prepared {
		e.Organization = guardEntity(e.Organization)
		if (e.Organization != "" || e.Title != "") && (e.StartYear != "" || e.EndYear != "") {
			cleaned = append(cleaned, e)
		}
	}
	cleaned = MergeWorkEntries(cleaned)
	if cleaned == nil {
		cleaned = []types.WorkExperienceEntry{}
	}
	return cleaned
}

// coerceList nil列表归一化为空列表，元素折叠空白并剔除空项
func coerceList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := cleanLine(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}
