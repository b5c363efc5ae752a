package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// TestNormalizeEntityGuard 测试实体字段的PII剥离与长度上限
func TestNormalizeEntityGuard(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.UgCollegeName = "Stanford University stanford@edu.com"
	rec.PgCollegeName = "visit www.college.edu for details"
	rec.HighSchoolName = "Springfield High School 9876543210"
	rec.UgDegree = "this narrative goes on and on and on and on and on and on and on"
	rec.PgDegree = "Master of Science"

	out := Normalize(rec, nil)

	assert.Empty(t, out.UgCollegeName, "含邮箱的实体字段整体清零")
	assert.Empty(t, out.PgCollegeName, "含URL的实体字段整体清零")
	assert.Empty(t, out.HighSchoolName, "含长数字串的实体字段整体清零")
	assert.Empty(t, out.UgDegree, "超过词数上限的实体字段整体清零")
	assert.Equal(t, "Master of Science", out.PgDegree, "正常实体原样保留")
}

// TestNormalizeGpaPairs 测试GPA数值与刻度的成对归一化
func TestNormalizeGpaPairs(t *testing.T) {
	cases := []struct {
		inV, inS   string
		outV, outS string
	}{
		{"85%", "", "85", "%"},
		{"3.7", "", "3.7", "4"},
		{"8.2", "", "8.2", "10"},
		{"3.8", "4.0", "3.8", "4.0"},
		{"2019", "", "", ""},
		{"", "4", "", ""},
	}
	for _, c := range cases {
		v, s := NormalizeGpa(c.inV, c.inS)
		assert.Equal(t, c.outV, v, "输入 (%q,%q) 的值", c.inV, c.inS)
		assert.Equal(t, c.outS, s, "输入 (%q,%q) 的刻度", c.inV, c.inS)
	}
}

// TestNormalizeYearsAndLists 测试年份归一化与列表兜底
func TestNormalizeYearsAndLists(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.UgGraduationYear = "May 2019"
	rec.PgGraduationYear = "garbage"
	rec.Certifications = nil
	rec.Achievements = []string{"  won  hackathon  ", ""}

	out := Normalize(rec, nil)

	assert.Equal(t, "2019", out.UgGraduationYear)
	assert.Empty(t, out.PgGraduationYear)
	require.NotNil(t, out.Certifications, "nil列表必须归一化为空列表")
	assert.Empty(t, out.Certifications)
	assert.Equal(t, []string{"won hackathon"}, out.Achievements, "列表元素折叠空白并剔除空项")
}

// TestNormalizeWorkRetention 测试工作经历的保留条件
func TestNormalizeWorkRetention(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.WorkExperience = []types.WorkExperienceEntry{
		{Organization: "Acme Corp", StartYear: "2019"},
		{Title: "Engineer", EndYear: "present"},
		{Organization: "Globex"},
		{StartYear: "2020"},
	}

	out := Normalize(rec, nil)
	require.Len(t, out.WorkExperience, 2, "组织/职位其一 且 起止年其一 才保留")
	assert.Equal(t, "Acme Corp", out.WorkExperience[0].Organization)
	assert.Equal(t, "Present", out.WorkExperience[1].EndYear, "结束年大小写归一化")
}

// TestNormalizeIdempotent 测试归一化的幂等性
func TestNormalizeIdempotent(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.Name = "  John   Smith "
	rec.UgCollegeName = "Stanford University"
	rec.UgCollegeGpaOrPercentage = "85%"
	rec.UgGraduationYear = "May 2019"
	rec.WorkExperience = []types.WorkExperienceEntry{
		{Organization: "Acme Corp", Title: "Engineer", StartYear: "2019", EndYear: "Present", Details: []string{"built it"}},
	}

	once := Normalize(rec, nil)
	twice := Normalize(once, nil)
	assert.Equal(t, once, twice, "重复归一化必须产出相同结果")
	assert.Equal(t, "John Smith", once.Name)
}

// TestNormalizeNilInput 测试nil输入返回合法空记录
func TestNormalizeNilInput(t *testing.T) {
	out := Normalize(nil, nil)
	require.NotNil(t, out)
	assert.NotNil(t, out.Certifications)
	assert.NotNil(t, out.WorkExperience)
	assert.NotNil(t, out.SkillsByCategory)
}

// TestNormalizeInputUntouched 测试归一化不修改输入记录
func TestNormalizeInputUntouched(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.Name = "  padded  "
	_ = Normalize(rec, nil)
	assert.Equal(t, "  padded  ", rec.Name, "输入记录必须保持原样")
}
