package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"lyrics-corpus/internal/pipeline"
	"lyrics-corpus/pkg/music"
)

func sampleResults() []pipeline.SongResult {
	id := int64(100)
	noLyricID := int64(7)
	return []pipeline.SongResult{
		{
			Order:        "1",
			Name:         "野孩子",
			Artist:       "杨千嬅",
			ID:           &id,
			Lyrics:       &music.LyricDocument{Lrc: "[00:01.00]我我你\n[00:05.00]你我"},
			ParsedLyrics: []string{"我我你", "你我"},
		},
		{Order: "2", Name: "勇", Artist: "杨千嬅", ID: &noLyricID, ParsedLyrics: []string{}},
		{Order: "3", Name: "single", Artist: "杨千嬅", ParsedLyrics: []string{}},
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "songs.json")
	results := sampleResults()

	if err := Save(path, results); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	text := string(raw)
	for _, want := range []string{`"id": null`, `"lyrics": null`, `"parsedLyrics": []`, `"lrc": "[00:01.00]我我你\n[00:05.00]你我"`, `"order": "1"`} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if strings.Contains(text, "NeteaseID") || strings.Contains(text, "netease_id") {
		t.Error("pinned id must not be written")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(loaded, results) {
		t.Errorf("loaded corpus differs:\n got %+v\nwant %+v", loaded, results)
	}
}

func TestSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "[]" {
		t.Errorf("expected empty array, got %q", raw)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleResults())
	want := Summary{Songs: 3, WithID: 2, WithLyrics: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestTopCharacters(t *testing.T) {
	results := sampleResults()
	results[2].ParsedLyrics = []string{"ABC　我，他"}

	got := TopCharacters(results, 2)
	want := []CharCount{{Char: '我', Count: 4}, {Char: '你', Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopCharacters() = %+v, want %+v", got, want)
	}

	all := TopCharacters(results, 20)
	if len(all) != 3 {
		t.Errorf("expected 3 distinct ideographs, got %d", len(all))
	}
}
