package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// 测试用向量后端模拟器：按词表返回固定向量，未知文本报错（模拟后端拒绝）
type mockEmbedder struct {
	vectors map[string][]float64
	Err     error
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return nil, errors.New("未知文本")
}

// TestSegmentCanonicalHeadings 测试规范标题的识别与章节归属
func TestSegmentCanonicalHeadings(t *testing.T) {
	raw := `John Smith
john.smith@example.com

EDUCATION
Massachusetts Institute of Technology

WORK EXPERIENCE
Acme Corp Inc.

SKILLS
Go, Python`

	sections := SegmentSections(raw)
	require.NotNil(t, sections)

	assert.True(t, sections.Has(types.SectionHeader), "文档顶部内容应落入header章节")
	assert.Contains(t, sections.Get(types.SectionHeader), "John Smith", "姓名行不应被当成标题吃掉")
	assert.Contains(t, sections.Get(types.SectionHeader), "john.smith@example.com", "邮箱行应留在正文")

	assert.Equal(t, "Massachusetts Institute of Technology", sections.Get(types.SectionEducation))
	assert.Equal(t, "Acme Corp Inc.", sections.Get(types.SectionExperience))
	assert.Equal(t, "Go, Python", sections.Get(types.SectionSkills))
}

// TestSegmentHeadingSynonyms 测试同义标题映射到同一规范标签
func TestSegmentHeadingSynonyms(t *testing.T) {
	cases := map[string]types.SectionLabel{
		"PROFESSIONAL SUMMARY": types.SectionSummary,
		"Employment History":   types.SectionExperience,
		"Academic Background":  types.SectionEducation,
		"Technical Skills":     types.SectionSkills,
		"Honors":               types.SectionAchievements,
	}
	for heading, want := range cases {
		raw := "Top Line\n" + heading + "\nsome body text here"
		sections := SegmentSections(raw)
		assert.True(t, sections.Has(want), "标题 %q 应映射到 %q", heading, want)
		assert.Equal(t, "some body text here", sections.Get(want))
	}
}

// TestSegmentFuzzyHeading 测试带拼写错误的标题走模糊匹配
func TestSegmentFuzzyHeading(t *testing.T) {
	raw := "Jane Doe\nEDUCATON\nStanford University"
	sections := SegmentSections(raw)
	assert.Equal(t, "Stanford University", sections.Get(types.SectionEducation), "拼写错误的标题应通过模糊匹配归类")
}

// TestSegmentDuplicateHeadings 测试重复标题的内容按出现顺序拼接
func TestSegmentDuplicateHeadings(t *testing.T) {
	raw := `Jane Doe
EXPERIENCE
first stint
EDUCATION
Some College
EXPERIENCE
second stint`

	sections := SegmentSections(raw)
	exp := sections.Get(types.SectionExperience)
	assert.Contains(t, exp, "first stint")
	assert.Contains(t, exp, "second stint")
	assert.Less(t,
		indexOf(exp, "first stint"), indexOf(exp, "second stint"),
		"重复标题的内容必须保持出现顺序")
}

// TestSegmentEmptyInput 测试空输入返回空集合而不报错
func TestSegmentEmptyInput(t *testing.T) {
	sections := SegmentSections("")
	require.NotNil(t, sections)
	assert.Equal(t, 0, sections.Len())

	sections = SegmentSections("   \n\n  ")
	assert.Equal(t, 0, sections.Len())
}

// TestSegmentNoHeadings 测试无任何标题时全文落入header
func TestSegmentNoHeadings(t *testing.T) {
	raw := "just a plain paragraph of text with no structure at all in this resume document"
	sections := SegmentSections(raw)
	assert.Equal(t, 1, sections.Len())
	assert.Equal(t, raw, sections.Get(types.SectionHeader))
}

// TestSegmentAdHocHeading 测试未命中词表的全大写标题成为自定义章节
func TestSegmentAdHocHeading(t *testing.T) {
	raw := "Jane Doe\nVOLUNTEERING\nlocal food bank helper"
	sections := SegmentSections(raw)
	assert.Equal(t, "local food bank helper", sections.Get("volunteering"), "全大写未知标题应以小写文本为键")
}

// TestSegmentDataLinesNotHeadings 测试"键: 值"形式的数据行不被当成标题
func TestSegmentDataLinesNotHeadings(t *testing.T) {
	raw := "Jane Doe\nEDUCATION\nSome University\nGPA: 3.8/4.0"
	sections := SegmentSections(raw)
	assert.Contains(t, sections.Get(types.SectionEducation), "GPA: 3.8/4.0", "GPA数据行必须留在education正文里")
}

// TestSegmentEmbeddingFallback 测试非规范标题通过向量相似度归类
func TestSegmentEmbeddingFallback(t *testing.T) {
	emb := &mockEmbedder{
		vectors: map[string][]float64{
			"tech stack":       {1, 0},
			"technical skills": {0.95, 0.05},
		},
	}
	s := NewSegmenter(emb)

	raw := "Jane Doe\nTech Stack\nGo, Rust"
	sections := s.Segment(context.Background(), raw)
	assert.Equal(t, "Go, Rust", sections.Get(types.SectionSkills), "向量相似的标题应归入对应规范章节")
}

// TestSegmentEmbedderFailureDegrades 测试向量后端失败时静默降级为纯规则
func TestSegmentEmbedderFailureDegrades(t *testing.T) {
	emb := &mockEmbedder{Err: errors.New("后端不可用")}
	s := NewSegmenter(emb)

	raw := "Jane Doe\nEDUCATION\nStanford University"
	sections := s.Segment(context.Background(), raw)
	assert.Equal(t, "Stanford University", sections.Get(types.SectionEducation), "向量后端失败不应影响规则匹配")
}

// TestFuzzyRatio 测试模糊匹配比值的边界行为
func TestFuzzyRatio(t *testing.T) {
	assert.Equal(t, 1.0, fuzzyRatio("education", "education"))
	assert.Greater(t, fuzzyRatio("educaton", "education"), fuzzyHeadingThreshold)
	assert.Less(t, fuzzyRatio("skills", "education"), fuzzyHeadingThreshold)
	assert.Equal(t, 0.0, fuzzyRatio("", "education"))
}

// indexOf 返回子串位置，测试辅助
func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
