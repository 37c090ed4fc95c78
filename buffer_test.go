package weft

import (
	"strings"
	"testing"
)

func TestBufferSetGet(t *testing.T) {
	b := NewBuffer(4, 2)
	b.Set(1, 1, NewCell('x', DefaultStyle()))
	if got := b.Get(1, 1).Rune; got != 'x' {
		t.Errorf("got %q", got)
	}
	if got := b.Get(0, 0).Rune; got != ' ' {
		t.Errorf("fresh cell should be a space, got %q", got)
	}
}

func TestBufferClipping(t *testing.T) {
	b := NewBuffer(3, 3)
	// all silently dropped
	b.Set(-1, 0, NewCell('x', DefaultStyle()))
	b.Set(0, -1, NewCell('x', DefaultStyle()))
	b.Set(3, 0, NewCell('x', DefaultStyle()))
	b.Set(0, 3, NewCell('x', DefaultStyle()))
	if strings.ContainsRune(b.String(), 'x') {
		t.Errorf("out-of-bounds write landed:\n%s", b.String())
	}
	if got := b.Get(99, 99); got != EmptyCell() {
		t.Errorf("out-of-bounds read: got %+v", got)
	}
}

func TestBufferWriteString(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		b := NewBuffer(10, 1)
		n := b.WriteString(0, 0, "hello", DefaultStyle())
		if n != 5 {
			t.Errorf("advanced %d columns", n)
		}
		if got := b.StringTrimmed(); got != "hello" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("clips at right edge", func(t *testing.T) {
		b := NewBuffer(3, 1)
		b.WriteString(0, 0, "hello", DefaultStyle())
		if got := b.StringTrimmed(); got != "hel" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("wide runes take two columns", func(t *testing.T) {
		b := NewBuffer(10, 1)
		n := b.WriteString(0, 0, "日本", DefaultStyle())
		if n != 4 {
			t.Errorf("advanced %d columns", n)
		}
		if b.Get(1, 0).Rune != 0 {
			t.Error("second column should hold a placeholder")
		}
		if got := b.StringTrimmed(); got != "日本" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("clipped stops before max width", func(t *testing.T) {
		b := NewBuffer(10, 1)
		b.WriteStringClipped(0, 0, "hello", DefaultStyle(), 4)
		if got := b.StringTrimmed(); got != "hell" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("clipped never splits a wide rune", func(t *testing.T) {
		b := NewBuffer(10, 1)
		b.WriteStringClipped(0, 0, "日本", DefaultStyle(), 3)
		if got := b.StringTrimmed(); got != "日" {
			t.Errorf("got %q", got)
		}
	})
}

func TestBufferDirtyRows(t *testing.T) {
	b := NewBuffer(4, 4)
	b.ClearDirty()
	b.Set(2, 1, NewCell('x', DefaultStyle()))
	if !b.RowDirty(1) {
		t.Error("row 1 should be dirty")
	}
	if b.RowDirty(0) || b.RowDirty(2) {
		t.Error("untouched rows should be clean")
	}
	b.ClearDirty()
	if b.RowDirty(1) {
		t.Error("ClearDirty should reset")
	}
}

func TestBufferFillRect(t *testing.T) {
	b := NewBuffer(5, 3)
	b.FillRect(1, 1, 3, 2, NewCell('#', DefaultStyle()))
	want := "\n ###\n ###"
	if got := b.StringTrimmed(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	// rect extending past the edge clips
	b2 := NewBuffer(3, 2)
	b2.FillRect(2, 1, 10, 10, NewCell('#', DefaultStyle()))
	if got := b2.StringTrimmed(); got != "\n  #" {
		t.Errorf("got %q", got)
	}
}

func TestBufferResize(t *testing.T) {
	b := NewBuffer(5, 2)
	b.WriteString(0, 0, "hello", DefaultStyle())
	b.Resize(3, 2)
	if got := b.StringTrimmed(); got != "hel" {
		t.Errorf("after shrink: %q", got)
	}
	b.Resize(6, 3)
	if got := b.StringTrimmed(); got != "hel" {
		t.Errorf("after grow: %q", got)
	}
	if b.Width() != 6 || b.Height() != 3 {
		t.Errorf("dims: %dx%d", b.Width(), b.Height())
	}
}

func TestBufferBorderMerge(t *testing.T) {
	b := NewBuffer(7, 3)
	b.DrawBorder(0, 0, 4, 3, BorderSingle, DefaultStyle())
	b.DrawBorder(3, 0, 4, 3, BorderSingle, DefaultStyle())
	got := b.StringTrimmed()
	want := "┌──┬──┐\n│  │  │\n└──┴──┘"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
