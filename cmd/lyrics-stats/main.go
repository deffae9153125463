package main

import (
	"fmt"

	"lyrics-corpus/internal/app"
	"lyrics-corpus/internal/config"
	"lyrics-corpus/internal/corpus"

	"github.com/rs/zerolog/log"
)

const topN = 20

func main() {
	cfg := config.Load()
	app.SetupLogger(cfg.App.LogLevel)

	results, err := corpus.Load(cfg.App.OutputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load corpus")
	}

	summary := corpus.Summarize(results)
	fmt.Printf("共有歌曲 %d 首，其中 %d 首有歌词\n", summary.Songs, summary.WithLyrics)

	top := corpus.TopCharacters(results, topN)
	if len(top) == 0 {
		fmt.Println("歌词中没有汉字")
		return
	}

	fmt.Printf("\n歌词中出现最多的%d个字:\n", len(top))
	for i, c := range top {
		fmt.Printf("%d. 字符: %c, 出现次数: %d\n", i+1, c.Char, c.Count)
	}
	fmt.Printf("出现最多的字是: \"%c\", 出现了 %d 次\n", top[0].Char, top[0].Count)
}
