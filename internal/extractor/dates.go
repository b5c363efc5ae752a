package extractor

import (
	"strings"
	"time"
)

// presentMark 开放式结束年份的规范表示
const presentMark = "Present"

// yearsFromText 从一段文本中提取最可能的起止年份。
// 优先显式区间（"Jun 2019 - Aug 2021"、"2018–2020"），
// 其次取找到的第一、二个四位年份，最后识别 present/ongoing 类开放结束。
// 找不到时返回空串，从不报错。
func yearsFromText(text string) (start, end string) {
	if text == "" {
		return "", ""
	}

	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		start = yearRe.FindString(m[1])
		if y := yearRe.FindString(m[2]); y != "" {
			end = y
		} else if presentRe.MatchString(m[2]) {
			end = presentMark
		}
		if start != "" {
			return start, end
		}
	}

	years := yearRe.FindAllString(text, -1)
	if len(years) > 0 {
		start = years[0]
		if len(years) > 1 {
			end = years[1]
		} else if presentRe.MatchString(text) {
			end = presentMark
		}
		return start, end
	}

	// 月份+年份："May 2021"
	if monthRe.MatchString(text) {
		if y := yearRe.FindString(text); y != "" {
			return y, ""
		}
	}
	return "", ""
}

// isDateLine 判断一行是否以日期为主（年份或英文月份）
func isDateLine(line string) bool {
	return yearRe.MatchString(line) || monthRe.MatchString(line)
}

// yearLayouts 宽松日期短语解析尝试的布局
var yearLayouts = []string{
	"January 2006",
	"Jan 2006",
	"2006-01",
	"01/2006",
	"2006",
}

// NormalizeYear 将任意年份表述归一化为 YYYY。
// 先做四位年份的模式匹配，再尝试宽松日期短语解析，都失败返回空串。
func NormalizeYear(s string) string {
	s = cleanLine(s)
	if s == "" {
		return ""
	}
	if y := yearRe.FindString(s); y != "" {
		return y
	}
	for _, layout := range yearLayouts {
		if t, err := time.Parse(layout, s); err == nil && t.Year() >= 1900 && t.Year() <= 2099 {
			return t.Format("2006")
		}
	}
	return ""
}

// ensureYearOrPresent 只允许 YYYY 或开放式结束标记通过
func ensureYearOrPresent(s string) string {
	if strings.EqualFold(s, presentMark) {
		return presentMark
	}
	return NormalizeYear(s)
}
