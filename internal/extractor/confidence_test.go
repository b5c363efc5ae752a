package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// TestBuildConfidencePresenceFields 测试存在性字段的满分规则
func TestBuildConfidencePresenceFields(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.Email = "jane@example.com"
	rec.PhoneNumber = "+15551234567"

	c := BuildConfidence(rec, nil)
	require.NotNil(t, c)
	assert.Equal(t, 100.0, c.FieldPercentages["email"])
	assert.Equal(t, 100.0, c.FieldPercentages["phoneNumber"])
	assert.Equal(t, 0.0, c.FieldPercentages["name"], "缺失字段为0")
}

// TestBuildConfidenceScoredName 测试姓名按选优得分折算
func TestBuildConfidenceScoredName(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.Name = "Jane Doe"

	c := BuildConfidence(rec, map[string]float64{"name": 0.44})
	assert.InDelta(t, 44.0, c.FieldPercentages["name"], 0.001)

	c = BuildConfidence(rec, nil)
	assert.Equal(t, 60.0, c.FieldPercentages["name"], "得分缺失时给保底分")
}

// TestBuildConfidenceWorkExperience 测试工作经历的结构完整度打分
func TestBuildConfidenceWorkExperience(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.WorkExperience = []types.WorkExperienceEntry{
		{Organization: "Acme", Title: "Engineer", StartYear: "2019", EndYear: "2021"},
		{Organization: "Globex", StartYear: "2021"},
	}

	c := BuildConfidence(rec, nil)
	assert.InDelta(t, 75.0, c.FieldPercentages["workExperience"], 0.001, "(100+50)/2")
}

// TestBuildConfidenceListFields 测试列表字段按条数计分
func TestBuildConfidenceListFields(t *testing.T) {
	rec := types.NewSchemaRecord()
	rec.Certifications = []string{"one"}
	rec.Achievements = []string{"a", "b", "c", "d"}

	c := BuildConfidence(rec, nil)
	assert.InDelta(t, 100.0/3, c.FieldPercentages["certifications"], 0.001)
	assert.Equal(t, 100.0, c.FieldPercentages["achievements"], "3条及以上满分")
}

// TestBuildConfidenceOverall 测试总体质量得分的加权与边界
func TestBuildConfidenceOverall(t *testing.T) {
	empty := BuildConfidence(types.NewSchemaRecord(), nil)
	assert.Equal(t, 0.0, empty.OverallQualityScore)

	rec := types.NewSchemaRecord()
	rec.Name = "Jane Doe"
	rec.Email = "jane@example.com"
	rec.PhoneNumber = "+15551234567"
	rec.UgCollegeName = "Stanford University"
	rec.WorkExperience = []types.WorkExperienceEntry{
		{Organization: "Acme", Title: "Engineer", StartYear: "2019", EndYear: "2021"},
	}
	full := BuildConfidence(rec, map[string]float64{"name": 0.9})

	assert.Greater(t, full.OverallQualityScore, empty.OverallQualityScore)
	assert.LessOrEqual(t, full.OverallQualityScore, 100.0)
	assert.Greater(t, full.OverallQualityScore, 30.0, "核心字段齐全时总分不应过低")
}

// TestBuildConfidenceNilInput 测试nil输入不崩溃
func TestBuildConfidenceNilInput(t *testing.T) {
	c := BuildConfidence(nil, nil)
	require.NotNil(t, c)
	assert.Equal(t, 0.0, c.OverallQualityScore)
}
