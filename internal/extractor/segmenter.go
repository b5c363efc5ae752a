package extractor

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// 标题匹配阈值
const (
	// fuzzyHeadingThreshold 模糊匹配（编辑距离比值）阈值
	fuzzyHeadingThreshold = 0.75
	// embedHeadingThreshold 向量余弦相似度阈值
	embedHeadingThreshold = 0.62
)

// canonicalHeadings 规范标签的同义标题词表
var canonicalHeadings = map[types.SectionLabel][]string{
	types.SectionContact:         {"contact", "contact information", "personal info", "contact details"},
	types.SectionSummary:         {"summary", "professional summary", "profile", "about me", "career summary", "objective"},
	types.SectionEducation:       {"education", "academic background", "educational background", "education & qualifications", "academics"},
	types.SectionExperience:      {"experience", "work experience", "professional experience", "employment history", "work history", "experience & roles"},
	types.SectionSkills:          {"skills", "technical skills", "key skills", "competencies", "technologies"},
	types.SectionProjects:        {"projects", "relevant projects"},
	types.SectionCertifications:  {"certifications", "certificates", "licenses"},
	types.SectionPublications:    {"publications", "research", "papers"},
	types.SectionAchievements:    {"achievements", "honors", "awards"},
	types.SectionExtracurricular: {"extra curricular", "extracurricular activities", "activities"},
	types.SectionTestScores:      {"test scores", "exams", "scores"},
	types.SectionLanguages:       {"languages", "language proficiency"},
	types.SectionInterests:       {"interests", "hobbies"},
}

// headingVariant 展平后的 (同义词, 规范标签) 对
type headingVariant struct {
	variant string
	label   types.SectionLabel
}

// flattenHeadings 展平词表并按同义词排序，保证匹配顺序确定
func flattenHeadings() []headingVariant {
	var out []headingVariant
	for label, variants := range canonicalHeadings {
		for _, v := range variants {
			out = append(out, headingVariant{variant: v, label: label})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].variant < out[j].variant })
	return out
}

// Segmenter 章节切分器：将原始文本切分为带标签的章节。
// embedder 为可选能力，缺失时退化为纯规则匹配，只影响非规范标题的召回。
type Segmenter struct {
	variants []headingVariant
	embedder Embedder

	// 规范标题的向量原型缓存，懒加载；多worker并发调用时需要加锁
	protoMu    sync.Mutex
	protoCache map[string][]float64
}

// NewSegmenter 创建章节切分器，embedder 可以为 nil
func NewSegmenter(embedder Embedder) *Segmenter {
	return &Segmenter{
		variants:   flattenHeadings(),
		embedder:   embedder,
		protoCache: make(map[string][]float64),
	}
}

// SegmentSections 纯规则版章节切分，供编排层在无向量后端时直接调用
func SegmentSections(rawText string) *types.Sections {
	return NewSegmenter(nil).Segment(context.Background(), rawText)
}

// Segment 将原始文本切分为保序的章节集合。
// 切分永不失败：无法识别任何标题时，全文落入默认的 header 章节。
func (s *Segmenter) Segment(ctx context.Context, rawText string) *types.Sections {
	sections := types.NewSections()
	if strings.TrimSpace(rawText) == "" {
		return sections
	}

	current := types.SectionHeader
	order := []types.SectionLabel{current}
	buf := map[types.SectionLabel][]string{current: nil}

	ensure := func(label types.SectionLabel) {
		if _, ok := buf[label]; !ok {
			order = append(order, label)
			buf[label] = nil
		}
	}

	first := true
	for _, raw := range strings.Split(rawText, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		// 首行几乎总是姓名，只允许命中规范词表时当作标题
		allowCustom := !first
		first = false

		if label, ok := s.classifyHeading(ctx, line, allowCustom); ok {
			current = label
			ensure(current)
			continue
		}
		buf[current] = append(buf[current], line)
	}

	for _, label := range order {
		sections.Append(label, strings.Join(buf[label], "\n"))
	}
	return sections
}

// classifyHeading 判断一行是否为章节标题，是则返回其标签。
// 规则：全大写且≤8词 / ≤6词且≤60字符 / 冒号结尾，且不含邮箱、URL、电话
// （联系方式行常被误判为标题）。映射顺序：精确/子串 → 模糊 → 向量 → 自定义标题。
func (s *Segmenter) classifyHeading(ctx context.Context, line string, allowCustom bool) (types.SectionLabel, bool) {
	wordCount := len(strings.Fields(line))
	isCaps := wordCount <= 8 && line == strings.ToUpper(line) && hasLetter(line)
	isShort := wordCount <= 6 && len(line) <= 60
	hasColon := strings.HasSuffix(line, ":") || strings.Contains(firstN(line, 20), ":")

	if !(isShort || isCaps || hasColon) {
		return "", false
	}
	if bulletRe.MatchString(line) {
		return "", false
	}
	if emailRe.MatchString(line) || urlRe.MatchString(line) || looksLikePhone(line) {
		return "", false
	}

	candidate := strings.TrimSpace(strings.TrimSuffix(line, ":"))
	if candidate == "" {
		return "", false
	}

	if label, ok := s.matchCanonical(ctx, candidate); ok {
		return label, true
	}

	// 未命中规范词表：只有全大写或冒号收尾、且不含数字的行才作为自定义章节。
	// 单纯的短行（姓名行）和 "GPA 3.8/4.0" 这类数据行必须留在正文里。
	if allowCustom && digitCount(line) == 0 && (isCaps || strings.HasSuffix(line, ":")) {
		return types.SectionLabel(strings.ToLower(candidate)), true
	}
	return "", false
}

// matchCanonical 将标题候选映射到规范标签
func (s *Segmenter) matchCanonical(ctx context.Context, candidate string) (types.SectionLabel, bool) {
	c := strings.ToLower(candidate)
	cw := len(strings.Fields(c))

	// 精确或子串匹配。候选包含同义词时要求词数相近，
	// 否则 "skilled engineer with go experience" 这类正文短句会被吃成标题
	for _, hv := range s.variants {
		if strings.Contains(c, hv.variant) && cw <= len(strings.Fields(hv.variant))+1 {
			return hv.label, true
		}
		if strings.Contains(hv.variant, c) {
			return hv.label, true
		}
	}

	// 模糊匹配
	bestLabel, bestScore := types.SectionLabel(""), 0.0
	for _, hv := range s.variants {
		if score := fuzzyRatio(c, hv.variant); score > bestScore {
			bestLabel, bestScore = hv.label, score
		}
	}
	if bestScore >= fuzzyHeadingThreshold {
		return bestLabel, true
	}

	// 向量匹配：仅对短标题生效，后端失败时静默降级
	if s.embedder != nil && len(strings.Fields(candidate)) <= 6 {
		if label, ok := s.matchByEmbedding(ctx, c); ok {
			return label, true
		}
	}
	return "", false
}

// matchByEmbedding 与规范标题的向量原型比余弦相似度
func (s *Segmenter) matchByEmbedding(ctx context.Context, candidate string) (types.SectionLabel, bool) {
	candVec, err := s.embedder.Embed(ctx, candidate)
	if err != nil || len(candVec) == 0 {
		return "", false
	}

	bestLabel, bestSim := types.SectionLabel(""), -1.0
	for _, hv := range s.variants {
		proto := s.prototype(ctx, hv.variant)
		if proto == nil {
			continue
		}
		if sim := cosineSimilarity(candVec, proto); sim > bestSim {
			bestLabel, bestSim = hv.label, sim
		}
	}
	if bestSim > embedHeadingThreshold {
		return bestLabel, true
	}
	return "", false
}

// prototype 获取（或懒加载）规范标题同义词的向量
func (s *Segmenter) prototype(ctx context.Context, variant string) []float64 {
	s.protoMu.Lock()
	if vec, ok := s.protoCache[variant]; ok {
		s.protoMu.Unlock()
		return vec
	}
	s.protoMu.Unlock()

	vec, err := s.embedder.Embed(ctx, variant)
	if err != nil {
		return nil
	}
	s.protoMu.Lock()
	s.protoCache[variant] = vec
	s.protoMu.Unlock()
	return vec
}

// cleanLine 压缩连续空白并去掉首尾空白
func cleanLine(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// splitLines 清洗文本并按行拆分，丢弃空行
func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if c := cleanLine(l); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// firstN 返回字符串前n个字节（按rune边界安全截断）
func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}

// hasLetter 判断字符串是否含字母
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// looksLikePhone 判断一行是否含电话号码（至少6位有效数字）
func looksLikePhone(line string) bool {
	for _, m := range phoneRe.FindAllString(line, -1) {
		if digitCount(m) >= 6 {
			return true
		}
	}
	return false
}

// digitCount 统计字符串中的数字个数
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
