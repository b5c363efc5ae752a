package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// 学位层级关键词，全部小写匹配。
// 分类优先级：高中 → 研究生 → 本科 → 机构兜底，每个层级首次命中生效。
var (
	hsKeywords = []string{"high school", "secondary school", "senior secondary", "class 12", "grade 12", "higher secondary"}
	pgKeywords = []string{"master", "m.sc", "msc", "mtech", "m.tech", "m.e", "mba", "ms ", "m.s", "m.eng", "mphil", "mres", "phd", "doctorate"}
	ugKeywords = []string{"bachelor", "b.sc", "bsc", "b.tech", "btech", "b.e", "b.eng", "bs in", "ba ", "beng", "b.s", "bba", "bfa", "barch"}

	majorKeywords = []string{
		"computer science", "information technology", "software engineering", "electrical engineering",
		"mechanical engineering", "civil engineering", "data science", "computer engineering",
		"electronics", "mathematics", "physics", "chemistry", "business administration",
		"finance", "economics", "biology", "biotechnology",
	}

	boardKeywords = []string{"board", "cbse", "icse", "state board"}

	// 学位全称片段：从命中关键词起截取到块内分隔符为止
	ugDegreeSpanRe = regexp.MustCompile(`(?i)\b(bachelor[^,;|]*|b\.?\s?sc[^,;|]*|b\.?\s?tech[^,;|]*|bs\b[^,;|]*|ba\b[^,;|]*)`)
	pgDegreeSpanRe = regexp.MustCompile(`(?i)\b(master[^,;|]*|m\.?\s?sc[^,;|]*|m\.?\s?tech[^,;|]*|mba\b[^,;|]*|ms\b[^,;|]*|phd[^,;|]*)`)

	// 块内名称切分符
	eduSplitRe = regexp.MustCompile(`[,–\-—|]`)
)

// educationBlockSize 无年份边界时按固定行数切块
const educationBlockSize = 4

// EducationResult 三个层级的教育信息，最多每层级一条（先到先得）
type EducationResult struct {
	HighSchoolName     string
	HighSchoolGpa      string
	HighSchoolGpaScale string
	HighSchoolBoard    string
	HighSchoolYear     string

	UgCollegeName string
	UgDegree      string
	UgMajor       string
	UgGpa         string
	UgGpaScale    string
	UgYear        string

	PgCollegeName string
	PgDegree      string
	PgMajor       string
	PgGpa         string
	PgGpaScale    string
	PgYear        string
}

// ParseEducation 解析教育章节为三层级结构。
// 行在年份边界或每4行聚成块，每块按关键词优先级分类；
// 教育章节缺失时退回 header+other 的拼接文本。
func ParseEducation(sections *types.Sections, extraDegreeLines []string) EducationResult {
	var out EducationResult
	if sections == nil {
		return out
	}

	eduText := sections.Get(types.SectionEducation)
	if eduText == "" {
		eduText = strings.TrimSpace(sections.Get(types.SectionHeader) + "\n" + sections.Get(types.SectionOther))
	}

	lines := splitLines(eduText)
	lines = append(lines, extraDegreeLines...)
	for _, blk := range groupIntoBlocks(lines) {
		classifyEducationBlock(&out, blk)
	}
	return out
}

// groupIntoBlocks 在年份边界或固定行数处聚块
func groupIntoBlocks(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	for _, ln := range lines {
		cur = append(cur, ln)
		if yearRe.MatchString(ln) || len(cur) >= educationBlockSize {
			blocks = append(blocks, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// classifyEducationBlock 按关键词优先级归类一个块并回填空字段。
// 机构名、学位等实体取块内对应的那一行而非整块文本，保持短实体形态。
func classifyEducationBlock(out *EducationResult, blk []string) {
	joined := strings.Join(blk, " ")
	low := strings.ToLower(joined)
	gpa, scale := ExtractGpaAndScale(joined)
	start, end := yearsFromText(joined)
	year := end
	if year == "" || year == presentMark {
		year = start
	}

	// 高中优先：避免 "higher secondary school" 被机构兜底吃掉
	if containsAny(low, hsKeywords) {
		setIfEmpty(&out.HighSchoolName, keywordLine(blk, hsKeywords))
		setIfEmpty(&out.HighSchoolGpa, gpa)
		setIfEmpty(&out.HighSchoolGpaScale, scale)
		setIfEmpty(&out.HighSchoolYear, year)
		setIfEmpty(&out.HighSchoolBoard, keywordLine(blk, boardKeywords))
		return
	}

	if containsAny(low, pgKeywords) {
		setIfEmpty(&out.PgCollegeName, institutionLine(blk))
		setIfEmpty(&out.PgDegree, degreeSpan(blk, pgDegreeSpanRe))
		setIfEmpty(&out.PgMajor, findMajor(low))
		setIfEmpty(&out.PgGpa, gpa)
		setIfEmpty(&out.PgGpaScale, scale)
		setIfEmpty(&out.PgYear, year)
		return
	}

	if containsAny(low, ugKeywords) {
		setIfEmpty(&out.UgCollegeName, institutionLine(blk))
		setIfEmpty(&out.UgDegree, degreeSpan(blk, ugDegreeSpanRe))
		setIfEmpty(&out.UgMajor, findMajor(low))
		setIfEmpty(&out.UgGpa, gpa)
		setIfEmpty(&out.UgGpaScale, scale)
		setIfEmpty(&out.UgYear, year)
		return
	}

	// 机构兜底：分给还空着的层级
	if univHintRe.MatchString(low) {
		name := institutionLine(blk)
		if out.UgCollegeName == "" {
			out.UgCollegeName = name
			setIfEmpty(&out.UgMajor, findMajor(low))
			setIfEmpty(&out.UgGpa, gpa)
			setIfEmpty(&out.UgGpaScale, scale)
			setIfEmpty(&out.UgYear, year)
		} else if out.PgCollegeName == "" {
			out.PgCollegeName = name
			setIfEmpty(&out.PgGpa, gpa)
			setIfEmpty(&out.PgGpaScale, scale)
			setIfEmpty(&out.PgYear, year)
		}
	}
}

// institutionLine 取块内命中机构关键词的那一行，无命中时退回首行。
// 逗号等分隔符之前的首段才是机构名本体。
func institutionLine(blk []string) string {
	for _, ln := range blk {
		if univHintRe.MatchString(ln) {
			return strings.TrimSpace(eduSplitRe.Split(ln, 2)[0])
		}
	}
	if len(blk) > 0 {
		return strings.TrimSpace(eduSplitRe.Split(blk[0], 2)[0])
	}
	return ""
}

// keywordLine 取块内命中任一关键词的行，按分隔符切段后返回命中的那一段
func keywordLine(blk []string, keywords []string) string {
	for _, ln := range blk {
		if !containsAny(strings.ToLower(ln), keywords) {
			continue
		}
		for _, seg := range eduSplitRe.Split(ln, -1) {
			if containsAny(strings.ToLower(seg), keywords) {
				return strings.TrimSpace(seg)
			}
		}
	}
	return ""
}

// degreeSpan 在块内命中学位关键词的行上截取学位全称片段
func degreeSpan(blk []string, re *regexp.Regexp) string {
	for _, ln := range blk {
		if m := re.FindString(ln); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// findMajor 在小写块中找专业关键词
func findMajor(low string) string {
	for _, mj := range majorKeywords {
		if strings.Contains(low, mj) {
			return mj
		}
	}
	return ""
}

// ExtractGpaAndScale 提取成绩与刻度。
// 先试百分比模式（刻度"%"），再试数值GPA；数值无显式刻度时按范围推断：
// ≤4.5 → "4"，≤10 → "10"，否则无刻度。
func ExtractGpaAndScale(text string) (value, scale string) {
	if m := percentRe.FindStringSubmatch(text); m != nil {
		return m[1], "%"
	}
	m := gpaRe.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	value = m[1]
	scale = m[2]
	if scale == "" {
		// 无显式刻度时拒绝年份和超出常见刻度范围的数值，避免把 "2019" 当成GPA
		if yearRe.MatchString(value) {
			return "", ""
		}
		scale = inferGpaScale(value)
		if scale == "" {
			return "", ""
		}
	}
	return value, scale
}

// inferGpaScale 按数值范围推断GPA刻度
func inferGpaScale(value string) string {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ""
	}
	switch {
	case v <= 4.5:
		return "4"
	case v <= 10:
		return "10"
	default:
		return ""
	}
}

// setIfEmpty 目标为空时写入值（先到先得语义）
func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
