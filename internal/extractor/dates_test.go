package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestYearsFromText 测试起止年份提取的各种书写形式
func TestYearsFromText(t *testing.T) {
	cases := []struct {
		in         string
		start, end string
	}{
		{"Jun 2019 - Aug 2021", "2019", "2021"},
		{"2018–2020", "2018", "2020"},
		{"2015 to 2019", "2015", "2019"},
		{"Jan 2022 - Present", "2022", "Present"},
		{"2021 - ongoing", "2021", "Present"},
		{"May 2021", "2021", ""},
		{"2017", "2017", ""},
		{"since 2016, currently employed", "2016", "Present"},
		{"no dates at all", "", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		start, end := yearsFromText(c.in)
		assert.Equal(t, c.start, start, "输入 %q 的起始年", c.in)
		assert.Equal(t, c.end, end, "输入 %q 的结束年", c.in)
	}
}

// TestNormalizeYear 测试年份归一化为YYYY
func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, "2019", NormalizeYear("2019"))
	assert.Equal(t, "2019", NormalizeYear("  graduated 2019  "))
	assert.Equal(t, "2021", NormalizeYear("May 2021"))
	assert.Equal(t, "", NormalizeYear("Present"))
	assert.Equal(t, "", NormalizeYear("no year"))
	assert.Equal(t, "", NormalizeYear(""))
	assert.Equal(t, "", NormalizeYear("1850"), "超出19xx/20xx范围的年份不接受")
}

// TestEnsureYearOrPresent 测试结束年只允许YYYY或开放式标记
func TestEnsureYearOrPresent(t *testing.T) {
	assert.Equal(t, "Present", ensureYearOrPresent("Present"))
	assert.Equal(t, "Present", ensureYearOrPresent("present"))
	assert.Equal(t, "2020", ensureYearOrPresent("2020"))
	assert.Equal(t, "", ensureYearOrPresent("garbage"))
}

// TestIsDateLine 测试日期行判定
func TestIsDateLine(t *testing.T) {
	assert.True(t, isDateLine("Jun 2019 - Present"))
	assert.True(t, isDateLine("2015"))
	assert.True(t, isDateLine("March"))
	assert.False(t, isDateLine("Software Engineer"))
}
