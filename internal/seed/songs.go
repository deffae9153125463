package seed

import (
	"strconv"

	"lyrics-corpus/internal/pipeline"
)

// DefaultSongs 杨千嬅代表作，配置文件没有 [[songs]] 时使用
func DefaultSongs() []pipeline.SongRequest {
	names := []string{
		"野孩子",
		"勇",
		"少女的祈祷",
		"可惜我是水瓶座",
		"假如让我说下去",
		"花与爱丽丝",
		"小城大事",
		"处处吻",
		"飞女正传",
		"再见二丁目",
		"稀客",
		"烈女",
		"寒舍",
		"还有事情可庆祝",
		"偷生",
		"炼金术",
		"火鸟",
		"single",
		"最好的债",
		"一千零一个",
	}

	songs := make([]pipeline.SongRequest, len(names))
	for i, name := range names {
		songs[i] = pipeline.SongRequest{
			Order:  strconv.Itoa(i + 1),
			Name:   name,
			Artist: "杨千嬅",
		}
	}
	return songs
}
