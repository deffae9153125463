package music

import "strings"

// ExcludedRoles 制作人员署名关键字，包含任一关键字的行会被过滤
var ExcludedRoles = []string{
	"编曲",
	"制作人",
	"监制",
	"OP",
	"SP",
	"和音",
	"录音",
	"混音",
	"Mastering",
	"编程",
	"键盘",
	"吉他",
	"电吉他",
	"电结他",
	"贝斯",
	"鼓",
	"弦乐编写",
	"铜管乐编写",
	"和声编写",
	"和声",
	"混音师",
	"录音室",
	"混音室",
	"录音工程师",
	"母带后期处理录音师",
	"母带后期处理录音室",
	"基本轨录音工程",
	"演唱",
	"主唱",
	"作词",
	"作曲",
	"母带",
}

// FilterCredits 去掉空行、<br> 行和署名行，其余行按原顺序保留
func FilterCredits(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isCreditLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isCreditLine(line string) bool {
	if strings.TrimSpace(line) == "" || strings.Contains(line, "<br>") {
		return true
	}
	for _, role := range ExcludedRoles {
		if strings.Contains(line, role) {
			return true
		}
	}
	return false
}
