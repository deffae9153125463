package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Ratio 计算两个字符串的相似度，范围 [0,1]，1 表示完全相同。
// 比较忽略大小写，按字符（rune）而不是字节计算编辑距离。
func Ratio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-distance) / float64(maxLen)
}

// RatioOf 同 Ratio，任一参数缺失时返回 0
func RatioOf(a, b *string) float64 {
	if a == nil || b == nil {
		return 0
	}
	return Ratio(*a, *b)
}
