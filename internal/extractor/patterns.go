package extractor

import "regexp"

// 全局正则表：在包加载时编译一次，所有组件共享只读使用
var (
	// yearRe 匹配 1900-2099 的四位年份
	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	// emailRe 匹配电子邮箱
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// phoneRe 匹配电话号码片段（后续按纯数字长度过滤）
	phoneRe = regexp.MustCompile(`\+?\d[\d\-\s().]{5,}\d`)
	// urlRe 匹配URL
	urlRe = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	// longDigitRe 匹配7位以上连续数字（实体字段中的号码泄漏）
	longDigitRe = regexp.MustCompile(`\d{7,}`)

	// univHintRe 高校机构关键词
	univHintRe = regexp.MustCompile(`(?i)\b(university|college|institute|school|faculty|polytechnic)\b`)
	// degreeHintRe 学位关键词
	degreeHintRe = regexp.MustCompile(`(?i)\b(bachelor|bsc|bs|ba|btech|master|msc|ms|mtech|mba|phd|associate|diploma)\b`)
	// certHintRe 证书/培训关键词
	certHintRe = regexp.MustCompile(`(?i)\b(certif\w*|certified|pmp|six sigma|training|badge|award)\b`)
	// orgHintRe 公司后缀关键词
	orgHintRe = regexp.MustCompile(`(?i)\b(inc|ltd|llc|company|corp|corporation|co\.|group|agency|gmbh|university|college|institute|bank)\b`)
	// roleRe 职位角色词表
	roleRe = regexp.MustCompile(`(?i)\b(engineer|developer|manager|analyst|researcher|intern|consultant|officer|professor|lead|associate|architect|scientist|designer|administrator|specialist)\b`)
	// monthRe 英文月份缩写/全称
	monthRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\b`)
	// presentRe 进行中/至今关键词
	presentRe = regexp.MustCompile(`(?i)\b(present|ongoing|to date|current\w*)\b`)
	// dateRangeRe 显式日期区间："Jun 2019 - Aug 2021" 或 "2018–2020"
	dateRangeRe = regexp.MustCompile(`(?i)((?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s*\d{4}|\b\d{4}\b)\s*(?:[-–—]|to)+\s*((?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s*\d{4}|\b\d{4}\b|present|ongoing|current)`)

	// percentRe 百分比成绩："85%"
	percentRe = regexp.MustCompile(`(\d{1,3}(?:\.\d{1,2})?)\s?%`)
	// gpaRe 数值GPA，可带刻度："3.7" 或 "8.2/10"
	gpaRe = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:\s*/\s*(\d+(?:\.\d+)?))?`)

	// conflictRe 叙述性动词：出现在短实体字段候选中时说明该候选是句子而非实体名
	conflictRe = regexp.MustCompile(`(?i)\b(apply|responsible|experience|present|pursuing|seeking)\b`)
	// actionVerbRe 工作经历细节行中的动作动词
	actionVerbRe = regexp.MustCompile(`(?i)\b(developed|designed|managed|led|implemented|created|built|maintained|improved|coordinated|delivered|launched|engineered|automated|optimized|analyzed|deployed|migrated|tested|supported)\b`)

	// bulletRe 列表项前缀，视为正文而非标题
	bulletRe = regexp.MustCompile(`^[-•*]\s+`)
	// wsRe 连续空白
	wsRe = regexp.MustCompile(`\s+`)
)
