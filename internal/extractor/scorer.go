package extractor

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

// idealTokenCount 长度惩罚的理想词数：短小的标题式片段优于叙述句
const idealTokenCount = 6

// conflictPenalty 叙述动词渗入短实体字段候选时的固定负调整
const conflictPenalty = -0.3

// defaultSignalTimeout NER/向量推理调用的默认超时，超时即退化为纯规则评分
const defaultSignalTimeout = 2 * time.Second

// signalWeights 五路信号的线性组合权重，各字段可调。
// 顺序：regex / length / section / ner / embed，总和 ≤1（冲突惩罚另计）。
type signalWeights struct {
	Regex   float64
	Length  float64
	Section float64
	NER     float64
	Embed   float64
}

// fieldWeights 各字段的权重配置。
// 邮箱/电话采用 (1,0,0,0,0)：正则本身精度已足够高，纯存在性评分。
var fieldWeights = map[Field]signalWeights{
	FieldName:           {0.4, 0.2, 0.2, 0.2, 0.0},
	FieldUgCollegeName:  {0.15, 0.25, 0.35, 0.15, 0.10},
	FieldPgCollegeName:  {0.15, 0.25, 0.35, 0.15, 0.10},
	FieldDegree:         {0.1, 0.3, 0.3, 0.15, 0.15},
	FieldCertifications: {0.1, 0.3, 0.2, 0.1, 0.3},
	FieldWorkExperience: {0.1, 0.3, 0.4, 0.15, 0.05},
	FieldSkills:         {0.05, 0.6, 0.1, 0.0, 0.25},
	FieldSummary:        {0.05, 0.4, 0.1, 0.0, 0.45},
	FieldEmail:          {1, 0, 0, 0, 0},
	FieldPhoneNumber:    {1, 0, 0, 0, 0},
}

// defaultFieldWeights 未列出字段的兜底权重
var defaultFieldWeights = signalWeights{0.2, 0.3, 0.2, 0.1, 0.2}

// sectionBoosts 候选来源章节与字段的归属加成
var sectionBoosts = map[types.SectionLabel]map[Field]float64{
	types.SectionEducation:      {FieldUgCollegeName: 0.4, FieldPgCollegeName: 0.4, FieldDegree: 0.3},
	types.SectionExperience:     {FieldWorkExperience: 0.5},
	types.SectionSkills:         {FieldSkills: 0.6},
	types.SectionCertifications: {FieldCertifications: 0.6},
	types.SectionSummary:        {FieldSummary: 0.6},
	types.SectionContact:        {FieldEmail: 0.5, FieldPhoneNumber: 0.5, FieldName: 0.4},
}

// fieldPrototypes 字段的向量原型短语，embed信号与其取最大余弦相似度
var fieldPrototypes = map[Field][]string{
	FieldName:           {"john smith", "jane doe"},
	FieldUgCollegeName:  {"university", "bachelor of science"},
	FieldPgCollegeName:  {"university", "master of science"},
	FieldDegree:         {"bachelor of science", "master of science"},
	FieldCertifications: {"certificate", "certified professional"},
	FieldWorkExperience: {"work experience", "software engineer"},
	FieldSkills:         {"skills", "programming languages"},
	FieldSummary:        {"professional summary", "career profile"},
}

// conflictFields 受叙述渗入惩罚约束的短实体字段
var conflictFields = map[Field]bool{
	FieldUgCollegeName: true,
	FieldPgCollegeName: true,
	FieldDegree:        true,
}

// Scorer 候选评分器：五路信号的加权线性组合，结果钳制在 [0,1]。
// NER与向量后端均为可选只读能力，调用失败或超时只损失对应信号。
type Scorer struct {
	ner           NERProvider
	embedder      Embedder
	signalTimeout time.Duration

	protoMu    sync.Mutex
	protoCache map[Field][][]float64
}

// NewScorer 创建评分器，两个能力句柄都可以为 nil
func NewScorer(ner NERProvider, embedder Embedder) *Scorer {
	return &Scorer{
		ner:           ner,
		embedder:      embedder,
		signalTimeout: defaultSignalTimeout,
		protoCache:    make(map[Field][][]float64),
	}
}

// Score 给一个候选打分，返回 [0,1] 的置信度
func (s *Scorer) Score(ctx context.Context, cand Candidate, field Field) float64 {
	text := cleanLine(cand.Text)
	if text == "" {
		return 0
	}

	w, ok := fieldWeights[field]
	if !ok {
		w = defaultFieldWeights
	}

	score := w.Regex*regexScore(text, field) +
		w.Length*lengthPenalty(text) +
		w.Section*sectionBoost(cand.Source, field)

	if w.NER > 0 && s.ner != nil {
		score += w.NER * s.nerScore(ctx, text, field)
	}
	if w.Embed > 0 && s.embedder != nil {
		score += w.Embed * s.embedScore(ctx, text, field)
	}

	// 冲突惩罚：短实体字段候选中出现叙述动词说明这是散文而非实体名
	if conflictFields[field] && conflictRe.MatchString(text) {
		score += conflictPenalty
	}

	return clamp01(score)
}

// regexScore 字段相关关键词/模式的命中强度
func regexScore(text string, field Field) float64 {
	s := 0.0
	switch field {
	case FieldUgCollegeName, FieldPgCollegeName:
		if univHintRe.MatchString(text) {
			s += 0.6
		}
		if degreeHintRe.MatchString(text) {
			s += 0.15
		}
		if yearRe.MatchString(text) {
			s += 0.05
		}
	case FieldName:
		if len(strings.Fields(text)) <= 4 && isTitleCase(text) {
			s += 0.6
		}
	case FieldCertifications:
		if certHintRe.MatchString(text) {
			s += 0.7
		}
	case FieldEmail:
		if emailRe.MatchString(text) {
			s = 1.0
		}
	case FieldPhoneNumber:
		if digitCount(text) >= 6 {
			s = 1.0
		}
	}
	if s > 1 {
		s = 1
	}
	return s
}

// lengthPenalty 长度惩罚：理想词数内为1.0，随长度增加衰减到0.2
func lengthPenalty(text string) float64 {
	words := len(strings.Fields(text))
	if words <= idealTokenCount {
		return 1.0
	}
	denom := words
	if idealTokenCount > denom {
		denom = idealTokenCount
	}
	pen := 1.0 - float64(words-idealTokenCount)/float64(denom)
	if pen < 0.2 {
		pen = 0.2
	}
	return pen
}

// sectionBoost 来源章节与字段归属匹配时的固定加成
func sectionBoost(source types.SectionLabel, field Field) float64 {
	if source == "" {
		return 0
	}
	if boosts, ok := sectionBoosts[source]; ok {
		return boosts[field]
	}
	return 0
}

// nerScore NER后端确认预期实体类型时的加成，失败时返回0
func (s *Scorer) nerScore(ctx context.Context, text string, field Field) float64 {
	cctx, cancel := context.WithTimeout(ctx, s.signalTimeout)
	defer cancel()

	ents, err := s.ner.Entities(cctx, text)
	if err != nil || len(ents) == 0 {
		return 0
	}
	switch field {
	case FieldName:
		for _, e := range ents {
			if e.Label == "PERSON" {
				return 0.9
			}
		}
	case FieldUgCollegeName, FieldPgCollegeName:
		for _, e := range ents {
			if (e.Label == "ORG" || e.Label == "GPE") && univHintRe.MatchString(strings.ToLower(e.Text)) {
				return 0.9
			}
		}
	case FieldWorkExperience:
		for _, e := range ents {
			if e.Label == "ORG" || e.Label == "PERSON" {
				return 0.6
			}
		}
	}
	return 0
}

// embedScore 与字段原型短语的最大余弦相似度，失败时返回0
func (s *Scorer) embedScore(ctx context.Context, text string, field Field) float64 {
	protos := s.prototypes(ctx, field)
	if len(protos) == 0 {
		return 0
	}

	cctx, cancel := context.WithTimeout(ctx, s.signalTimeout)
	defer cancel()
	vec, err := s.embedder.Embed(cctx, text)
	if err != nil || len(vec) == 0 {
		return 0
	}

	best := 0.0
	for _, p := range protos {
		if sim := cosineSimilarity(vec, p); sim > best {
			best = sim
		}
	}
	return best
}

// prototypes 获取（或懒加载）字段原型短语的向量
func (s *Scorer) prototypes(ctx context.Context, field Field) [][]float64 {
	s.protoMu.Lock()
	if vecs, ok := s.protoCache[field]; ok {
		s.protoMu.Unlock()
		return vecs
	}
	s.protoMu.Unlock()

	phrases := fieldPrototypes[field]
	var vecs [][]float64
	for _, p := range phrases {
		cctx, cancel := context.WithTimeout(ctx, s.signalTimeout)
		vec, err := s.embedder.Embed(cctx, p)
		cancel()
		if err == nil && len(vec) > 0 {
			vecs = append(vecs, vec)
		}
	}

	s.protoMu.Lock()
	s.protoCache[field] = vecs
	s.protoMu.Unlock()
	return vecs
}

// isTitleCase 判断每个词是否都是首字母大写、其余非大写
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) && unicode.IsLetter(r[0]) {
			return false
		}
		for _, c := range r[1:] {
			if unicode.IsUpper(c) {
				return false
			}
		}
	}
	return true
}

// clamp01 将得分钳制到 [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
