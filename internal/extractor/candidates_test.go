package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// TestCollectEmailAndPhone 测试全局邮箱与电话候选收集
func TestCollectEmailAndPhone(t *testing.T) {
	raw := `Jane Doe
jane.doe@example.com
+1 (555) 123-4567
reach me at 555-99`

	out := CollectCandidates(raw, SegmentSections(raw))

	require.Len(t, out[FieldEmail], 1, "邮箱只取首个匹配")
	assert.Equal(t, "jane.doe@example.com", out[FieldEmail][0].Text)

	require.Len(t, out[FieldPhoneNumber], 1, "电话只保留数字最长的合法匹配")
	assert.Equal(t, "+15551234567", out[FieldPhoneNumber][0].Text)
}

// TestCollectNameCandidates 测试姓名候选只来自顶部章节的前几行
func TestCollectNameCandidates(t *testing.T) {
	raw := `Maria Garcia
maria@example.com
EXPERIENCE
Acme Corp Inc.
Robert Johnson was my manager`

	out := CollectCandidates(raw, SegmentSections(raw))

	require.NotEmpty(t, out[FieldName], "顶部的姓名行应成为候选")
	assert.Equal(t, "Maria Garcia", out[FieldName][0].Text, "月份缩写按整词匹配，Maria不应被误杀")

	for _, c := range out[FieldName] {
		assert.NotEqual(t, "Robert Johnson was my manager", c.Text, "经历章节的句子不应进入姓名候选")
	}
}

// TestNameBlacklist 测试黑名单行被拒绝
func TestNameBlacklist(t *testing.T) {
	assert.False(t, isNameLine("Visa Status: H1B"))
	assert.False(t, isNameLine("Date of Birth 1999"))
	assert.False(t, isNameLine("Jan 2020 Dec 2021"))
	assert.False(t, isNameLine("some lowercase words"))
	assert.False(t, isNameLine("Single"))

	assert.True(t, isNameLine("Maria Garcia"))
	assert.True(t, isNameLine("Janet De La Cruz"))
	assert.True(t, isNameLine("JOHN SMITH"))
}

// TestCollectSkillsOnlyFromSkillsSection 测试技能候选的保守收集
func TestCollectSkillsOnlyFromSkillsSection(t *testing.T) {
	raw := `Jane Doe
SUMMARY
skilled engineer with Go experience
SKILLS
Go, Python, Docker`

	out := CollectCandidates(raw, SegmentSections(raw))

	require.Len(t, out[FieldSkills], 1)
	assert.Equal(t, types.SectionSkills, out[FieldSkills][0].Source, "技能候选只来自技能章节")
	assert.Equal(t, "Go, Python, Docker", out[FieldSkills][0].Text)
}

// TestCollectDegreeLinesGlobally 测试全文学位行扫描
func TestCollectDegreeLinesGlobally(t *testing.T) {
	raw := "Jane Doe\nBachelor of Science in Physics\nrandom text"
	out := CollectCandidates(raw, SegmentSections(raw))

	require.NotEmpty(t, out[FieldDegree])
	assert.Equal(t, "Bachelor of Science in Physics", out[FieldDegree][0].Text)
	assert.Equal(t, types.SectionLabel(sourceGlobal), out[FieldDegree][0].Source)
}

// TestCollectEmptyInput 测试空输入时所有字段候选为空但不报错
func TestCollectEmptyInput(t *testing.T) {
	out := CollectCandidates("", SegmentSections(""))
	assert.Empty(t, out[FieldEmail])
	assert.Empty(t, out[FieldName])
	assert.Empty(t, out[FieldSkills])
}

// TestBestPhone 测试电话归一化与最长匹配选择
func TestBestPhone(t *testing.T) {
	assert.Equal(t, "+919876543210", bestPhone("call +91 98765-43210 or 12345"))
	assert.Equal(t, "", bestPhone("no numbers here"))
	assert.Equal(t, "", bestPhone("pin 12-34"))
}
