package lyrics

import (
	"regexp"
	"strings"
)

// FullWidthSpace 全角空格，与中文字符等宽
const FullWidthSpace = "　"

// 时间轴标记，如 [01:23.45] 或 [01:23.456]
var timelineRe = regexp.MustCompile(`\[(\d{2}):(\d{2})\.(\d{2,3})\]`)

// Normalize 去掉每行的时间轴，去除首尾空白，普通空格替换为全角空格，丢弃空行。
// 返回值不会是 nil。
func Normalize(raw string) []string {
	parsed := []string{}
	if raw == "" {
		return parsed
	}

	for _, line := range strings.Split(raw, "\n") {
		text := strings.TrimSpace(stripTimestamp(line))
		text = strings.ReplaceAll(text, " ", FullWidthSpace)
		if text != "" {
			parsed = append(parsed, text)
		}
	}
	return parsed
}

// stripTimestamp 只去掉第一个时间轴标记
func stripTimestamp(line string) string {
	loc := timelineRe.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + line[loc[1]:]
}
