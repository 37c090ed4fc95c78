package weft

import (
	"reflect"
	"testing"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本", 4},
		{"héllo", 5},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.s); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{"fits", "abc", 5, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut", "abcdef", 3, "abc"},
		{"zero", "abc", 0, ""},
		{"wide rune not split", "日本", 3, "日"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateToWidth(tt.s, tt.width); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  []string
	}{
		{"short line untouched", "hello", 10, []string{"hello"}},
		{"wraps at word boundary", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"respects newlines", "one\ntwo", 10, []string{"one", "two"}},
		{"breaks long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"wide runes at narrow width", "日本語", 1, []string{"日", "本", "語"}},
		{"wide runes split at cluster boundary", "日本語", 2, []string{"日", "本", "語"}},
		{"wide word mid sentence", "ab 日本", 2, []string{"ab", "日", "本"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.s, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	w, h := measureText("ab\nabcd\nc")
	if w != 4 || h != 3 {
		t.Errorf("got %dx%d", w, h)
	}
	w, h = measureText("")
	if w != 0 || h != 1 {
		t.Errorf("empty: got %dx%d", w, h)
	}
}
