package weft

import (
	"bytes"
	"strings"
	"testing"
)

func TestScreenFlushDiff(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 10, 3)

	s.Buffer().WriteString(0, 0, "hello", DefaultStyle())
	n := s.Flush()
	if n == 0 {
		t.Fatal("first flush should write something")
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("output missing text: %q", out.String())
	}

	t.Run("idempotent frame writes nothing", func(t *testing.T) {
		s.Clear()
		s.Buffer().WriteString(0, 0, "hello", DefaultStyle())
		if n := s.Flush(); n != 0 {
			t.Errorf("unchanged frame wrote %d bytes", n)
		}
	})

	t.Run("single cell change writes one move", func(t *testing.T) {
		out.Reset()
		s.Clear()
		s.Buffer().WriteString(0, 0, "hellx", DefaultStyle())
		s.Flush()
		if got := out.String(); got != "\x1b[1;5Hx\x1b[0m" {
			t.Errorf("got %q", got)
		}
	})
}

func TestScreenFlushBorderRuneChange(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 5, 3)
	s.Buffer().Set(1, 1, NewCell(BoxHorizontal, DefaultStyle()))
	s.Flush()

	// the front grid must mirror the emitted rune verbatim, not the
	// junction the two border runes would merge into
	s.Clear()
	s.Buffer().Set(1, 1, NewCell(BoxVertical, DefaultStyle()))
	s.Flush()
	if got := s.front.Get(1, 1).Rune; got != BoxVertical {
		t.Errorf("front holds %q after rune change", got)
	}

	s.Clear()
	s.Buffer().Set(1, 1, NewCell(BoxVertical, DefaultStyle()))
	if n := s.Flush(); n != 0 {
		t.Errorf("identical frame re-emitted %d bytes", n)
	}

	t.Run("full flush", func(t *testing.T) {
		s.Buffer().Clear()
		s.Buffer().Set(1, 1, NewCell(BoxHorizontal, DefaultStyle()))
		s.FlushFull()
		if got := s.front.Get(1, 1).Rune; got != BoxHorizontal {
			t.Errorf("front holds %q after full flush", got)
		}
	})
}

func TestScreenResize(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 10, 3)
	s.Buffer().WriteString(0, 0, "hello", DefaultStyle())
	s.Flush()

	out.Reset()
	s.resize(10, 3)
	if out.Len() != 0 {
		t.Errorf("same-size resize should be a no-op, wrote %q", out.String())
	}

	s.resize(4, 2)
	if got := s.Size(); got != (ViewportSize{Width: 4, Height: 2}) {
		t.Errorf("size %+v", got)
	}
	if s.Buffer().Width() != 4 || s.Buffer().Height() != 2 {
		t.Errorf("back buffer %dx%d", s.Buffer().Width(), s.Buffer().Height())
	}
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Errorf("resize should wipe the terminal: %q", out.String())
	}

	// both buffers start blank, so the next frame redraws from scratch
	s.Buffer().WriteString(0, 0, "hi", DefaultStyle())
	if n := s.Flush(); n == 0 {
		t.Error("post-resize frame should write")
	}
}

func TestScreenFlushAdjacentRun(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 10, 2)
	s.Buffer().WriteString(2, 0, "abc", DefaultStyle())
	s.Flush()

	// one cursor move for the whole run
	if got := strings.Count(out.String(), "H"); got != 1 {
		t.Errorf("expected 1 cursor move, output %q", out.String())
	}
}

func TestScreenFlushStyleTransitions(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 10, 1)
	bold := DefaultStyle().Bold()
	s.Buffer().WriteString(0, 0, "aa", bold)
	s.Buffer().WriteString(2, 0, "bb", bold)
	s.Flush()

	// same style across the run: one SGR to enter it, one reset at the end
	if got := strings.Count(out.String(), "\x1b[0;1"); got != 1 {
		t.Errorf("expected a single bold transition, output %q", out.String())
	}
}

func TestScreenFlushSkipsWidePlaceholder(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 10, 1)
	s.Buffer().WriteString(0, 0, "日", DefaultStyle())
	s.Flush()
	if !strings.Contains(out.String(), "日") {
		t.Errorf("missing glyph: %q", out.String())
	}
	// nothing emitted for the second column
	if strings.Contains(out.String(), "\x1b[1;2H") {
		t.Errorf("placeholder column was written: %q", out.String())
	}
}

func TestScreenColorSGR(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"basic fg", DefaultStyle().Foreground(Red), "\x1b[0;31;49m"},
		{"bright fg", DefaultStyle().Foreground(BrightRed), "\x1b[0;91;49m"},
		{"basic bg", DefaultStyle().Background(Blue), "\x1b[0;39;44m"},
		{"palette", DefaultStyle().Foreground(PaletteColor(208)), "\x1b[0;38;5;208;49m"},
		{"rgb", DefaultStyle().Foreground(RGB(1, 2, 3)), "\x1b[0;38;2;1;2;3;49m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := newMemoryScreen(&out, 4, 1)
			s.Buffer().Set(0, 0, NewCell('x', tt.style))
			s.Flush()
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q missing %q", out.String(), tt.want)
			}
		})
	}
}

func TestScreenFlushFull(t *testing.T) {
	var out bytes.Buffer
	s := newMemoryScreen(&out, 4, 2)
	s.Buffer().WriteString(0, 0, "ab", DefaultStyle())
	s.FlushFull()
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Errorf("full flush should clear: %q", out.String())
	}
	if !strings.Contains(out.String(), "ab") {
		t.Errorf("full flush missing content: %q", out.String())
	}
}
