package lyrics

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "timestamp and space",
			raw:  "[00:12.345]Hello World",
			want: []string{"Hello　World"},
		},
		{
			name: "timestamp only",
			raw:  "[01:00.00]   ",
			want: []string{},
		},
		{
			name: "order preserved",
			raw:  "[00:01.00]第一句\n[00:05.00]第二句",
			want: []string{"第一句", "第二句"},
		},
		{
			name: "blank lines dropped",
			raw:  "\n[00:01.00]a\n\n\r\n[00:02.50] b c \n",
			want: []string{"a", "b　c"},
		},
		{
			name: "line without timestamp kept",
			raw:  "没有时间轴",
			want: []string{"没有时间轴"},
		},
		{
			name: "only first marker removed",
			raw:  "[00:01.00][00:30.00]重复",
			want: []string{"[00:30.00]重复"},
		},
		{
			name: "single digit fraction is not a marker",
			raw:  "[00:01.5]x",
			want: []string{"[00:01.5]x"},
		},
		{
			name: "existing full-width space trimmed",
			raw:  "[00:01.00]　有全角　",
			want: []string{"有全角"},
		},
		{
			name: "empty input",
			raw:  "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got == nil {
				t.Fatal("Normalize returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
