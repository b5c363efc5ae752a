package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// skillSplitRe 技能行的切分符：换行、逗号、分号、斜杠、圆点项目符
var skillSplitRe = regexp.MustCompile(`[\n,;/•·]`)

// skillBadWords 命中即拒绝的噪声词：这些词出现说明该片段是叙述或标题残留
var skillBadWords = []string{"experience", "education", "skills", "summary", "project", "university", "college"}

// maxSkillTokens 单个技能短语的词数上限，超过视为句子渗入
const maxSkillTokens = 6

// skillVocab 技术词表：小写匹配键 → 规范显示名。
// 词表按类别维护，分类与展示共用一份数据源。
var skillVocab = map[string]skillEntry{
	"go":         {"Go", "languages"},
	"golang":     {"Go", "languages"},
	"python":     {"Python", "languages"},
	"java":       {"Java", "languages"},
	"javascript": {"JavaScript", "languages"},
	"typescript": {"TypeScript", "languages"},
	"c++":        {"C++", "languages"},
	"c#":         {"C#", "languages"},
	"ruby":       {"Ruby", "languages"},
	"php":        {"PHP", "languages"},
	"swift":      {"Swift", "languages"},
	"kotlin":     {"Kotlin", "languages"},
	"rust":       {"Rust", "languages"},
	"scala":      {"Scala", "languages"},
	"r":          {"R", "languages"},
	"sql":        {"SQL", "languages"},
	"html":       {"HTML", "languages"},
	"css":        {"CSS", "languages"},
	"bash":       {"Bash", "languages"},
	"matlab":     {"MATLAB", "languages"},

	"react":       {"React", "frameworks"},
	"angular":     {"Angular", "frameworks"},
	"vue":         {"Vue", "frameworks"},
	"django":      {"Django", "frameworks"},
	"flask":       {"Flask", "frameworks"},
	"spring":      {"Spring", "frameworks"},
	"spring boot": {"Spring Boot", "frameworks"},
	"express":     {"Express", "frameworks"},
	"node.js":     {"Node.js", "frameworks"},
	"nodejs":      {"Node.js", "frameworks"},
	"node":        {"Node.js", "frameworks"},
	"rails":       {"Rails", "frameworks"},
	"laravel":     {"Laravel", "frameworks"},
	".net":        {".NET", "frameworks"},
	"tensorflow":  {"TensorFlow", "frameworks"},
	"pytorch":     {"PyTorch", "frameworks"},
	"pandas":      {"Pandas", "frameworks"},
	"numpy":       {"NumPy", "frameworks"},

	"mysql":         {"MySQL", "databases"},
	"postgresql":    {"PostgreSQL", "databases"},
	"postgres":      {"PostgreSQL", "databases"},
	"mongodb":       {"MongoDB", "databases"},
	"redis":         {"Redis", "databases"},
	"sqlite":        {"SQLite", "databases"},
	"oracle":        {"Oracle", "databases"},
	"elasticsearch": {"Elasticsearch", "databases"},
	"cassandra":     {"Cassandra", "databases"},
	"dynamodb":      {"DynamoDB", "databases"},

	"aws":        {"AWS", "cloud"},
	"azure":      {"Azure", "cloud"},
	"gcp":        {"GCP", "cloud"},
	"docker":     {"Docker", "cloud"},
	"kubernetes": {"Kubernetes", "cloud"},
	"terraform":  {"Terraform", "cloud"},
	"jenkins":    {"Jenkins", "cloud"},
	"heroku":     {"Heroku", "cloud"},
	"lambda":     {"Lambda", "cloud"},

	"git":       {"Git", "tools"},
	"github":    {"GitHub", "tools"},
	"gitlab":    {"GitLab", "tools"},
	"jira":      {"Jira", "tools"},
	"linux":     {"Linux", "tools"},
	"kafka":     {"Kafka", "tools"},
	"rabbitmq":  {"RabbitMQ", "tools"},
	"graphql":   {"GraphQL", "tools"},
	"rest":      {"REST", "tools"},
	"excel":     {"Excel", "tools"},
	"tableau":   {"Tableau", "tools"},
	"power bi":  {"Power BI", "tools"},
	"photoshop": {"Photoshop", "tools"},

	"selenium": {"Selenium", "testing"},
	"junit":    {"JUnit", "testing"},
	"pytest":   {"pytest", "testing"},
	"jest":     {"Jest", "testing"},
	"cypress":  {"Cypress", "testing"},
	"postman":  {"Postman", "testing"},

	"penetration testing": {"Penetration Testing", "security"},
	"burp suite":          {"Burp Suite", "security"},
	"wireshark":           {"Wireshark", "security"},
	"nmap":                {"Nmap", "security"},
	"metasploit":          {"Metasploit", "security"},
	"owasp":               {"OWASP", "security"},
	"cryptography":        {"Cryptography", "security"},
}

type skillEntry struct {
	Display  string
	Category string
}

// ExtractSkills 从技能章节文本中切分、过滤并识别技能短语。
// 词表命中返回规范显示名；未命中但通过全部过滤的短语原样保留，进入 other 类别。
func ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, tok := range skillSplitRe.Split(text, -1) {
		tok = cleanLine(strings.Trim(tok, "-*●○ \t"))
		if !isSkillToken(tok) {
			continue
		}
		display := tok
		if e, ok := skillVocab[strings.ToLower(tok)]; ok {
			display = e.Display
		}
		k := strings.ToLower(display)
		if !seen[k] {
			seen[k] = true
			out = append(out, display)
		}
	}
	return out
}

// isSkillToken 技能片段过滤：
// 非空、≤6词、不含四位年份、不含@或URL、不含噪声词
func isSkillToken(tok string) bool {
	if tok == "" || !hasLetter(tok) {
		return false
	}
	if len(strings.Fields(tok)) > maxSkillTokens {
		return false
	}
	if yearRe.MatchString(tok) {
		return false
	}
	low := strings.ToLower(tok)
	if strings.Contains(low, "@") || strings.Contains(low, "http") {
		return false
	}
	return !containsAny(low, skillBadWords)
}

// ClassifySkills 将技能列表按类别归组：
// 词表命中归对应类别，未命中进 other；类别内去重并排序，空类别省略。
func ClassifySkills(skills []string) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]bool)

	for _, s := range skills {
		c := cleanLine(s)
		if c == "" {
			continue
		}
		cat := "other"
		display := c
		if e, ok := skillVocab[strings.ToLower(c)]; ok {
			cat = e.Category
			display = e.Display
		}
		k := cat + "\x00" + strings.ToLower(display)
		if seen[k] {
			continue
		}
		seen[k] = true
		out[cat] = append(out[cat], display)
	}

	for cat := range out {
		sort.Strings(out[cat])
	}
	return out
}
