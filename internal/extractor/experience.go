package extractor

import (
	"strings"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

const (
	// maxLookbackLines 从日期行向前找组织/职位行的最大行数
	maxLookbackLines = 5
	// maxDetailBullets 单条工作经历保留的细节行上限
	maxDetailBullets = 6
	// orgBackfillLookback 跨章节回填组织时向前扫描的行数
	orgBackfillLookback = 4
)

// ExtractWorkExperience 在经历章节上运行基于行的状态机：
// 以含年份/月份的行为锚点，向前找组织行与职位行，向后收集细节行；
// 细节中无动作动词的条目视为误切分的教育/简介文本，直接丢弃。
// 经历章节缺失时退回全部章节拼接的文本（召回优先，守卫在后）。
func ExtractWorkExperience(sections *types.Sections) []types.WorkExperienceEntry {
	if sections == nil {
		return nil
	}

	expText := sections.Get(types.SectionExperience)
	if expText == "" {
		var parts []string
		for _, sec := range sections.All() {
			if sec.Text != "" {
				parts = append(parts, sec.Text)
			}
		}
		expText = strings.Join(parts, "\n\n")
	}

	lines := splitLines(expText)
	var entries []types.WorkExperienceEntry

	i := 0
	for i < len(lines) {
		line := lines[i]
		if !isDateLine(line) {
			i++
			continue
		}

		startYear, endYear := yearsFromText(line)
		org, title := lookBackward(lines, i)
		if org == "" || title == "" {
			inlineOrg, inlineTitle := claimInlineAnchor(line)
			if org == "" {
				org = inlineOrg
			}
			if title == "" {
				title = inlineTitle
			}
		}
		details, next := collectDetails(lines, i+1)

		// 锚点行自身没有年份时，允许从细节行补齐
		if startYear == "" {
			for _, d := range details {
				if s, e := yearsFromText(d); s != "" {
					startYear = s
					if e != "" {
						endYear = e
					}
					break
				}
			}
		}

		entry := types.WorkExperienceEntry{
			Organization: org,
			Title:        title,
			StartYear:    startYear,
			EndYear:      endYear,
			Details:      details,
		}
		if hasActionableDetail(entry.Details) {
			entries = append(entries, entry)
		}
		i = next
	}

	return MergeWorkEntries(entries)
}

// lookBackward 从锚点行向前扫描最多5行，找组织行与职位行。
// 第一轮按强信号认领：公司后缀模式认组织，角色词表认职位；
// 第二轮用剩下的短 TitleCase 行就近补缺。两轮分开，避免
// "Software Engineer" 这类职位行仅因离锚点更近而被当成组织。
func lookBackward(lines []string, anchor int) (org, title string) {
	var window []string
	for back := 1; back <= maxLookbackLines; back++ {
		idx := anchor - back
		if idx < 0 {
			break
		}
		if cand := lines[idx]; cand != "" && !isDateLine(cand) {
			window = append(window, cand)
		}
	}

	used := make(map[int]bool, len(window))
	for i, cand := range window {
		if org == "" && orgHintRe.MatchString(cand) {
			org = cand
			used[i] = true
			continue
		}
		if title == "" && roleRe.MatchString(cand) {
			title = cand
			used[i] = true
		}
	}
	for i, cand := range window {
		if used[i] {
			continue
		}
		words := len(strings.Fields(cand))
		if title == "" && words <= 8 && isTitleCase(cand) {
			title = cand
			used[i] = true
			continue
		}
		if org == "" && words <= 6 && isTitleCase(cand) {
			org = cand
			used[i] = true
		}
	}
	return org, title
}

// claimInlineAnchor 处理单行条目："Software Engineer, Acme Inc, 2019-2021"
// 这类锚点行日期之外还带文本。按逗号切分后逐段认领：
// 角色词段认职位，公司后缀段认组织，剩余的短 TitleCase 段兜底补组织。
func claimInlineAnchor(line string) (org, title string) {
	segments := strings.Split(line, ",")
	if len(segments) < 2 {
		return "", ""
	}

	var leftovers []string
	for _, seg := range segments {
		seg = cleanLine(seg)
		if seg == "" || isDateLine(seg) {
			continue
		}
		if title == "" && roleRe.MatchString(seg) {
			title = seg
			continue
		}
		if org == "" && orgHintRe.MatchString(seg) {
			org = seg
			continue
		}
		leftovers = append(leftovers, seg)
	}
	for _, seg := range leftovers {
		if org == "" && len(strings.Fields(seg)) <= 6 && isTitleCase(seg) {
			org = seg
		}
	}
	return org, title
}

// collectDetails 从锚点后一行收集细节，直到下一个日期锚点或组织样式的行。
// 短的日期行才算锚点边界，叙述中夹带年份的长行仍是细节。
// 只保留超过2词的行。返回细节与下一个扫描位置。
func collectDetails(lines []string, from int) ([]string, int) {
	var details []string
	j := from
	for j < len(lines) {
		ln := lines[j]
		if isDateLine(ln) && len(strings.Fields(ln)) <= 4 {
			break
		}
		if looksLikeOrganization(ln) && len(strings.Fields(ln)) <= 6 {
			break
		}
		if len(strings.Fields(ln)) > 2 {
			details = append(details, ln)
		}
		j++
	}
	return details, j
}

// looksLikeOrganization 判断一行是否像组织名
func looksLikeOrganization(line string) bool {
	if orgHintRe.MatchString(line) {
		return true
	}
	return len(strings.Fields(line)) <= 6 && isTitleCase(line)
}

// hasActionableDetail 至少一条细节包含动作动词才认为这是真实的工作条目
func hasActionableDetail(details []string) bool {
	for _, d := range details {
		if actionVerbRe.MatchString(d) {
			return true
		}
	}
	return false
}

// MergeWorkEntries 合并 (组织, 起始年, 结束年) 相同的条目：
// 细节列表保序去重后合并，上限6条。
func MergeWorkEntries(entries []types.WorkExperienceEntry) []types.WorkExperienceEntry {
	if len(entries) == 0 {
		return entries
	}

	type key struct{ org, start, end string }
	var out []types.WorkExperienceEntry
	index := make(map[key]int)

	for _, e := range entries {
		k := key{strings.ToLower(cleanLine(e.Organization)), e.StartYear, e.EndYear}
		if i, ok := index[k]; ok {
			out[i].Details = dedupeStrings(append(out[i].Details, e.Details...))
			if out[i].Title == "" {
				out[i].Title = e.Title
			}
		} else {
			e.Details = dedupeStrings(e.Details)
			index[k] = len(out)
			out = append(out, e)
		}
	}

	for i := range out {
		if len(out[i].Details) > maxDetailBullets {
			out[i].Details = out[i].Details[:maxDetailBullets]
		}
	}
	return out
}

// FillMissingOrganizations 为缺组织的条目跨全部章节回填：
// 在包含其起始年份的行附近向前找组织样式的行，跳过本身像日期的候选。
func FillMissingOrganizations(entries []types.WorkExperienceEntry, sections *types.Sections) []types.WorkExperienceEntry {
	if sections == nil {
		return entries
	}

	var allLines []string
	for _, sec := range sections.All() {
		allLines = append(allLines, splitLines(sec.Text)...)
	}

	for idx := range entries {
		if entries[idx].Organization != "" || entries[idx].StartYear == "" {
			continue
		}
		entries[idx].Organization = findNearbyOrganization(allLines, entries[idx].StartYear)
	}
	return entries
}

// findNearbyOrganization 在含指定年份的行前方找组织行
func findNearbyOrganization(lines []string, year string) string {
	for i, ln := range lines {
		if !strings.Contains(ln, year) {
			continue
		}
		for back := 1; back <= orgBackfillLookback; back++ {
			idx := i - back
			if idx < 0 {
				break
			}
			cand := lines[idx]
			if isDateLine(cand) {
				continue
			}
			if looksLikeOrganization(cand) {
				return cand
			}
		}
	}
	return ""
}

// dedupeStrings 保序去重，忽略大小写与首尾空白差异
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		c := cleanLine(s)
		if c == "" {
			continue
		}
		k := strings.ToLower(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}
