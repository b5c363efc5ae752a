package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

func eduSections(text string) *types.Sections {
	s := types.NewSections()
	s.Append(types.SectionEducation, text)
	return s
}

// TestParseEducationTiers 测试本科与研究生层级的分类与字段提取
func TestParseEducationTiers(t *testing.T) {
	text := `Harvard University
Master of Science in Data Science
2021
Stanford University
Bachelor of Science in Computer Science, GPA 3.7
2015 - 2019`

	out := ParseEducation(eduSections(text), nil)

	assert.Equal(t, "Harvard University", out.PgCollegeName)
	assert.Equal(t, "Master of Science in Data Science", out.PgDegree)
	assert.Equal(t, "data science", out.PgMajor)
	assert.Equal(t, "2021", out.PgYear)
	assert.Empty(t, out.PgGpa, "块内只有年份时不能把年份当GPA")

	assert.Equal(t, "Stanford University", out.UgCollegeName)
	assert.Equal(t, "Bachelor of Science in Computer Science", out.UgDegree, "学位片段在逗号处截断")
	assert.Equal(t, "computer science", out.UgMajor)
	assert.Equal(t, "3.7", out.UgGpa)
	assert.Equal(t, "4", out.UgGpaScale, "无显式刻度的3.7应推断为4分制")
	assert.Equal(t, "2019", out.UgYear, "区间取结束年为毕业年")
}

// TestParseEducationHighSchool 测试高中层级优先于机构兜底
func TestParseEducationHighSchool(t *testing.T) {
	text := `Springfield High School, CBSE Board
Class 12 with 85%
2014`

	out := ParseEducation(eduSections(text), nil)

	assert.Equal(t, "Springfield High School", out.HighSchoolName)
	assert.Equal(t, "85", out.HighSchoolGpa)
	assert.Equal(t, "%", out.HighSchoolGpaScale)
	assert.Equal(t, "CBSE Board", out.HighSchoolBoard, "板块信息取命中关键词的分段")
	assert.Equal(t, "2014", out.HighSchoolYear)
	assert.Empty(t, out.UgCollegeName, "高中块不能泄漏到本科层级")
}

// TestParseEducationInstitutionFallback 测试无学位关键词时的机构兜底分配
func TestParseEducationInstitutionFallback(t *testing.T) {
	text := "National Institute of Technology\n2018"
	out := ParseEducation(eduSections(text), nil)
	assert.Equal(t, "National Institute of Technology", out.UgCollegeName, "机构兜底先填本科")
	assert.Equal(t, "2018", out.UgYear)
}

// TestParseEducationMissingSection 测试教育章节缺失时的退回路径
func TestParseEducationMissingSection(t *testing.T) {
	s := types.NewSections()
	s.Append(types.SectionHeader, "Jane Doe\nOxford University, BSc Mathematics, 2017")
	out := ParseEducation(s, nil)
	assert.Equal(t, "Oxford University", out.UgCollegeName, "header中的教育信息应被兜住")
}

// TestParseEducationEmpty 测试空输入返回零值结构
func TestParseEducationEmpty(t *testing.T) {
	out := ParseEducation(types.NewSections(), nil)
	assert.Equal(t, EducationResult{}, out)

	out = ParseEducation(nil, nil)
	assert.Equal(t, EducationResult{}, out)
}

// TestExtractGpaAndScale 测试成绩提取的归一化规则
func TestExtractGpaAndScale(t *testing.T) {
	cases := []struct {
		in           string
		value, scale string
	}{
		{"GPA 3.8/4.0", "3.8", "4.0"},
		{"scored 85%", "85", "%"},
		{"CGPA 8.2", "8.2", "10"},
		{"GPA 3.7", "3.7", "4"},
		{"graduated in 2019", "", ""},
		{"MIT, 2019", "", ""},
		{"no numbers", "", ""},
	}
	for _, c := range cases {
		v, s := ExtractGpaAndScale(c.in)
		assert.Equal(t, c.value, v, "输入 %q 的成绩值", c.in)
		assert.Equal(t, c.scale, s, "输入 %q 的刻度", c.in)
	}
}

// TestInferGpaScale 测试刻度范围推断
func TestInferGpaScale(t *testing.T) {
	assert.Equal(t, "4", inferGpaScale("3.9"))
	assert.Equal(t, "4", inferGpaScale("4.5"))
	assert.Equal(t, "10", inferGpaScale("9.1"))
	assert.Equal(t, "", inferGpaScale("42"))
	assert.Equal(t, "", inferGpaScale("abc"))
}
