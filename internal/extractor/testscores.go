package extractor

import (
	"regexp"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// scoreKeyRes 六项标准化考试的识别模式。
// 严格模式要求"键名: 数值"的紧邻形式，宽松模式允许键名与数值在同一行相隔较远。
var scoreKeyRes = map[string]*regexp.Regexp{
	"sat":   regexp.MustCompile(`(?i)\bsat\b\s*[:\-]?\s*(\d{2,4}(?:\.\d+)?)`),
	"act":   regexp.MustCompile(`(?i)\bact\b\s*[:\-]?\s*(\d{1,2}(?:\.\d+)?)`),
	"gre":   regexp.MustCompile(`(?i)\bgre\b\s*[:\-]?\s*(\d{2,3}(?:\.\d+)?)`),
	"gmat":  regexp.MustCompile(`(?i)\bgmat\b\s*[:\-]?\s*(\d{2,3}(?:\.\d+)?)`),
	"toefl": regexp.MustCompile(`(?i)\btoefl\b\s*[:\-]?\s*(\d{2,3}(?:\.\d+)?)`),
	"ielts": regexp.MustCompile(`(?i)\bielts\b\s*[:\-]?\s*(\d(?:\.\d+)?)`),
}

// looseScoreRe 宽松兜底：同一行里键名后任意位置出现的数值
var looseScoreRe = regexp.MustCompile(`(\d{1,4}(?:\.\d+)?)`)

// looseKeyRes 宽松兜底的键名定位模式，词边界防止 "satisfied"、"contact" 误命中
var looseKeyRes = map[string]*regexp.Regexp{
	"sat":   regexp.MustCompile(`(?i)\bsat\b`),
	"act":   regexp.MustCompile(`(?i)\bact\b`),
	"gre":   regexp.MustCompile(`(?i)\bgre\b`),
	"gmat":  regexp.MustCompile(`(?i)\bgmat\b`),
	"toefl": regexp.MustCompile(`(?i)\btoefl\b`),
	"ielts": regexp.MustCompile(`(?i)\bielts\b`),
}

// ExtractTestScores 提取六项考试成绩。
// 先在考试成绩章节找，章节缺失时扫描全文；
// 每个键先严格匹配，再按行宽松兜底。六个键始终存在，未找到为空串。
func ExtractTestScores(sections *types.Sections, rawText string) types.TestScores {
	text := ""
	if sections != nil {
		text = sections.Get(types.SectionTestScores)
	}
	if text == "" {
		text = rawText
	}

	var out types.TestScores
	set := func(key, val string) {
		switch key {
		case "sat":
			out.SAT = val
		case "act":
			out.ACT = val
		case "gre":
			out.GRE = val
		case "gmat":
			out.GMAT = val
		case "toefl":
			out.TOEFL = val
		case "ielts":
			out.IELTS = val
		}
	}
	get := func(key string) string {
		switch key {
		case "sat":
			return out.SAT
		case "act":
			return out.ACT
		case "gre":
			return out.GRE
		case "gmat":
			return out.GMAT
		case "toefl":
			return out.TOEFL
		case "ielts":
			return out.IELTS
		}
		return ""
	}

	for key, re := range scoreKeyRes {
		if m := re.FindStringSubmatch(text); m != nil {
			set(key, m[1])
		}
	}

	// 宽松兜底：按行找键名，取该行键名之后的第一个数值。
	// 避免把年份当成绩：四位数只有SAT可接受。
	for _, line := range splitLines(text) {
		for key, keyRe := range looseKeyRes {
			if get(key) != "" {
				continue
			}
			loc := keyRe.FindStringIndex(line)
			if loc == nil {
				continue
			}
			rest := line[loc[1]:]
			if m := looseScoreRe.FindString(rest); m != "" {
				if len(m) == 4 && (key != "sat" || yearRe.MatchString(m)) {
					continue
				}
				set(key, m)
			}
		}
	}
	return out
}
