package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// Field 目标模式字段的有限枚举。
// 每个字段携带自己的信号权重与词表配置，避免散落的字符串匹配。
type Field string

const (
	FieldName           Field = "name"
	FieldEmail          Field = "email"
	FieldPhoneNumber    Field = "phoneNumber"
	FieldUgCollegeName  Field = "ugCollegeName"
	FieldPgCollegeName  Field = "pgCollegeName"
	FieldDegree         Field = "degree"
	FieldCertifications Field = "certifications"
	FieldWorkExperience Field = "workExperience"
	FieldSkills         Field = "skills"
	FieldSummary        Field = "summary"
)

// Candidate 某个字段的一个候选值。
// 候选是临时对象：收集、评分、选优后即丢弃，不会单独持久化。
type Candidate struct {
	Text   string             // 原始文本片段
	Source types.SectionLabel // 来源章节标签，全局扫描时为 "global"
	Index  int                // 在来源章节中的行号
	Reason string             // 收集原因（溯源标记）
}

// sourceGlobal 全文扫描候选的来源标记
const sourceGlobal = "global"

// nameBlacklistRe 姓名候选行的黑名单：命中则该行不可能是姓名。
// 月份缩写必须按整词匹配，否则 "Maria"、"Janet" 这类真实姓名会被误杀；
// "202" 不加边界，用于拦截 202x 年份。
var nameBlacklistRe = regexp.MustCompile(`(?i)\b(visa|status|address|dob|date of birth|nationality|marital|certificate|certified|training|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b|202`)

// certProviders 常见证书/课程提供方
var certProviders = []string{"coursera", "udemy", "edx", "nptel", "google", "aws", "microsoft"}

// CollectCandidates 从全文与各章节收集所有目标字段的候选。
// 收集永不失败：任何字段没有信号时，其候选列表为空，由选择器解析为模式默认值。
func CollectCandidates(rawText string, sections *types.Sections) map[Field][]Candidate {
	out := make(map[Field][]Candidate)

	// 全局命中：邮箱取首个匹配；电话取数字最长的合法匹配
	if email := emailRe.FindString(rawText); email != "" {
		out[FieldEmail] = append(out[FieldEmail], Candidate{Text: email, Source: sourceGlobal, Reason: "regex_email"})
	}
	if phone := bestPhone(rawText); phone != "" {
		out[FieldPhoneNumber] = append(out[FieldPhoneNumber], Candidate{Text: phone, Source: sourceGlobal, Reason: "regex_phone_longest"})
	}

	if sections != nil {
		for _, sec := range sections.All() {
			collectFromSection(out, sec)
		}
	}

	// 全文扫描学位行，补充教育候选的召回
	for _, line := range splitLines(rawText) {
		if degreeHintRe.MatchString(line) && len(strings.Fields(line)) < 20 {
			out[FieldDegree] = append(out[FieldDegree], Candidate{Text: line, Source: sourceGlobal, Reason: "degree_hint"})
		}
	}
	return out
}

// collectFromSection 按章节标签应用各字段的收集规则
func collectFromSection(out map[Field][]Candidate, sec types.Section) {
	lines := splitLines(sec.Text)
	for i, line := range lines {
		// 姓名：仅在 contact/summary/header 章节的前4行内找
		if (sec.Label == types.SectionContact || sec.Label == types.SectionSummary || sec.Label == types.SectionHeader) && i < 4 {
			if isNameLine(line) {
				out[FieldName] = append(out[FieldName], Candidate{Text: line, Source: sec.Label, Index: i, Reason: "contact_top_strict"})
			}
		}

		// 教育线索：机构、学位或年份关键词
		if univHintRe.MatchString(line) || degreeHintRe.MatchString(line) || yearRe.MatchString(line) {
			out[FieldUgCollegeName] = append(out[FieldUgCollegeName], Candidate{Text: line, Source: sec.Label, Index: i, Reason: "edu_hint"})
		}

		// 证书
		if certHintRe.MatchString(line) || containsAny(strings.ToLower(line), certProviders) {
			out[FieldCertifications] = append(out[FieldCertifications], Candidate{Text: line, Source: sec.Label, Index: i, Reason: "cert_hint"})
		}

		// 技能：刻意保守，只看技能章节内的行，避免句子渗入
		if sec.Label == types.SectionSkills {
			out[FieldSkills] = append(out[FieldSkills], Candidate{Text: line, Source: sec.Label, Index: i, Reason: "skills_section"})
		}

		// 简介
		if sec.Label == types.SectionSummary || (i == 0 && (sec.Label == types.SectionContact || sec.Label == types.SectionOther)) {
			out[FieldSummary] = append(out[FieldSummary], Candidate{Text: line, Source: sec.Label, Index: i, Reason: "summary_line"})
		}
	}
}

// isNameLine 判断一行是否可能是姓名：
// 2-5个字母词、无黑名单词、至少一个词首字母大写
func isNameLine(line string) bool {
	words := strings.Fields(line)
	alpha := 0
	for _, w := range words {
		if len(w) > 30 {
			return false
		}
		if hasLetter(w) {
			alpha++
		}
	}
	if alpha < 2 || alpha > 5 || len(words) > 5 {
		return false
	}
	if nameBlacklistRe.MatchString(line) {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			return true
		}
	}
	return false
}

// bestPhone 在全文中找电话：全部匹配归一化为纯数字（保留前导+），
// 取有效长度（≥6位数字）中最长的一个
func bestPhone(rawText string) string {
	best := ""
	for _, m := range phoneRe.FindAllString(rawText, -1) {
		cleaned := normalizePhone(m)
		if digitCount(cleaned) >= 6 && len(cleaned) > len(best) {
			best = cleaned
		}
	}
	return best
}

// normalizePhone 去掉数字和前导+以外的字符
func normalizePhone(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// containsAny 判断字符串是否包含词表中的任一子串
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
