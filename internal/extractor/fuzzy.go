package extractor

import "strings"

// fuzzyRatio 计算两个字符串的归一化相似度 (0..1)。
// 基于最长公共子序列：ratio = 2*LCS / (len(a)+len(b))，
// 与 difflib.SequenceMatcher 的比值口径一致，用于标题的模糊匹配。
func fuzzyRatio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	// 滚动数组求LCS长度
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
