package extractor

import (
	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// overallWeights 总体质量得分的字段权重：
// 核心身份与工作经历权重最高，锦上添花的列表字段最低。
var overallWeights = map[string]float64{
	"name":                 3.0,
	"email":                3.0,
	"phoneNumber":          2.0,
	"workExperience":       3.0,
	"ugCollegeName":        2.0,
	"pgCollegeName":        1.0,
	"skillsByCategory":     2.0,
	"summary":              1.0,
	"certifications":       0.5,
	"researchPublications": 0.5,
	"achievements":         0.5,
}

// defaultOverallWeight 未列出字段的兜底权重
const defaultOverallWeight = 1.0

// listItemFullCount 列表字段达到此条数即计满分
const listItemFullCount = 3

// BuildConfidence 基于归一化后的记录与选优得分计算置信度。
// 每个文档一次性整体重算，从不增量修补。
// fieldScores 来自选优阶段的原始得分 (0-1)，缺失的字段按存在性规则计算。
func BuildConfidence(rec *types.SchemaRecord, fieldScores map[string]float64) *types.ConfidenceBundle {
	if rec == nil {
		rec = types.NewSchemaRecord()
	}
	if fieldScores == nil {
		fieldScores = map[string]float64{}
	}

	pct := make(map[string]float64)

	// 正则强字段：存在即满分
	pct["email"] = presencePct(rec.Email)
	pct["phoneNumber"] = presencePct(rec.PhoneNumber)

	// 评分字段：选优得分折算为百分比
	pct["name"] = presenceScaled(rec.Name, fieldScores["name"])

	// 机构字段：存在给固定高分（通过了守卫即有据可依）
	pct["ugCollegeName"] = fixedPct(rec.UgCollegeName, 90)
	pct["pgCollegeName"] = fixedPct(rec.PgCollegeName, 90)

	pct["ugGraduationYear"] = fixedPct(rec.UgGraduationYear, 80)
	pct["pgGraduationYear"] = fixedPct(rec.PgGraduationYear, 80)
	pct["highSchoolGraduationYear"] = fixedPct(rec.HighSchoolGraduationYear, 80)

	pct["ugCollegeGpaOrPercentage"] = fixedPct(rec.UgCollegeGpaOrPercentage, 70)
	pct["pgCollegeGpaOrPercentage"] = fixedPct(rec.PgCollegeGpaOrPercentage, 70)
	pct["highSchoolGpaOrPercentage"] = fixedPct(rec.HighSchoolGpaOrPercentage, 70)

	pct["summary"] = presencePct(rec.Summary)

	pct["certifications"] = listPct(len(rec.Certifications))
	pct["extraCurricularActivities"] = listPct(len(rec.ExtraCurricularActivities))
	pct["researchPublications"] = listPct(len(rec.ResearchPublications))
	pct["achievements"] = listPct(len(rec.Achievements))

	skillCount := 0
	for _, v := range rec.SkillsByCategory {
		skillCount += len(v)
	}
	pct["skillsByCategory"] = listPct(skillCount)

	pct["workExperience"] = workExperiencePct(rec.WorkExperience)

	overall := 0.0
	weightSum := 0.0
	for field, p := range pct {
		w, ok := overallWeights[field]
		if !ok {
			w = defaultOverallWeight
		}
		overall += w * p
		weightSum += w
	}
	if weightSum > 0 {
		overall /= weightSum
	}

	return &types.ConfidenceBundle{
		FieldScores:         fieldScores,
		FieldPercentages:    pct,
		OverallQualityScore: overall,
	}
}

// workExperiencePct 工作经历按条目结构完整度打分：
// 组织35% + 职位35% + 起始年15% + 结束年15%，取全部条目的平均
func workExperiencePct(entries []types.WorkExperienceEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range entries {
		s := 0.0
		if e.Organization != "" {
			s += 35
		}
		if e.Title != "" {
			s += 35
		}
		if e.StartYear != "" {
			s += 15
		}
		if e.EndYear != "" {
			s += 15
		}
		total += s
	}
	return total / float64(len(entries))
}

// presencePct 存在即满分
func presencePct(v string) float64 {
	if v != "" {
		return 100
	}
	return 0
}

// presenceScaled 存在时按选优得分折算，得分缺失给保底60分
func presenceScaled(v string, score float64) float64 {
	if v == "" {
		return 0
	}
	if score <= 0 {
		return 60
	}
	return clamp01(score) * 100
}

// fixedPct 存在给固定分
func fixedPct(v string, p float64) float64 {
	if v != "" {
		return p
	}
	return 0
}

// listPct 列表字段按条数线性计分，3条及以上满分
func listPct(n int) float64 {
	if n <= 0 {
		return 0
	}
	if n >= listItemFullCount {
		return 100
	}
	return float64(n) / float64(listItemFullCount) * 100
}
