package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"lyrics-corpus/internal/pipeline"
	"lyrics-corpus/pkg/fileutil"
)

// Save 把整个结果集写成一个带缩进的 JSON 数组，原子替换目标文件
func Save(path string, results []pipeline.SongResult) error {
	if results == nil {
		results = []pipeline.SongResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save corpus: %w", err)
	}
	return nil
}

// Load 读取 Save 写出的文件
func Load(path string) ([]pipeline.SongResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	var results []pipeline.SongResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode corpus %s: %w", path, err)
	}
	return results, nil
}

// Summary 运行结果统计
type Summary struct {
	Songs      int
	WithID     int
	WithLyrics int
}

func Summarize(results []pipeline.SongResult) Summary {
	s := Summary{Songs: len(results)}
	for _, r := range results {
		if r.ID != nil {
			s.WithID++
		}
		if r.HasLyrics() {
			s.WithLyrics++
		}
	}
	return s
}

// CharCount 字符及出现次数
type CharCount struct {
	Char  rune
	Count int
}

// TopCharacters 统计所有歌词中出现最多的 n 个汉字（U+4E00–U+9FA5）
func TopCharacters(results []pipeline.SongResult, n int) []CharCount {
	counts := map[rune]int{}
	for _, r := range results {
		for _, line := range r.ParsedLyrics {
			for _, c := range line {
				if c >= 0x4e00 && c <= 0x9fa5 {
					counts[c]++
				}
			}
		}
	}

	top := make([]CharCount, 0, len(counts))
	for c, count := range counts {
		top = append(top, CharCount{Char: c, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Char < top[j].Char
	})

	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}
