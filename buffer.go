package weft

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Buffer is a 2D grid of cells that controls paint into. Writes outside
// the bounds are dropped silently; a terminal shrinking mid-frame must
// never turn into an error.
type Buffer struct {
	cells    []Cell
	width    int
	height   int
	dirtyRow []bool
}

// NewBuffer creates a buffer with the given dimensions, filled with
// empty cells.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{
		cells:    make([]Cell, width*height),
		width:    width,
		height:   height,
		dirtyRow: make([]bool, height),
	}
	b.Clear()
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// InBounds reports whether the coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at x,y, or an empty cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set writes the cell at x,y. Border runes merge with existing border
// runes so adjacent boxes share junctions.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	idx := b.index(x, y)
	if merged, ok := mergeBorders(b.cells[idx].Rune, c.Rune); ok {
		c.Rune = merged
	}
	b.cells[idx] = c
	b.dirtyRow[y] = true
}

// setRaw writes the cell verbatim, without border-merge semantics. The
// renderer uses it to mirror emitted cells into the front buffer: the
// front grid must record exactly what the terminal shows.
func (b *Buffer) setRaw(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
	b.dirtyRow[y] = true
}

// SetRune writes just the rune at x,y, preserving style.
func (b *Buffer) SetRune(x, y int, r rune) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)].Rune = r
	b.dirtyRow[y] = true
}

// RowDirty reports whether row y has been written since the last
// ClearDirty. Out-of-range rows are never dirty.
func (b *Buffer) RowDirty(y int) bool {
	return y >= 0 && y < len(b.dirtyRow) && b.dirtyRow[y]
}

// MarkAllDirty flags every row, forcing the next diff to scan the full
// buffer. Used after resize.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirtyRow {
		b.dirtyRow[i] = true
	}
}

// ClearDirty resets the per-row dirty flags.
func (b *Buffer) ClearDirty() {
	for i := range b.dirtyRow {
		b.dirtyRow[i] = false
	}
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
	b.MarkAllDirty()
}

// Clear resets the buffer to empty cells.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// FillRect fills a rectangle with the given cell, clipped to bounds.
func (b *Buffer) FillRect(x, y, width, height int, c Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			b.Set(x+dx, y+dy, c)
		}
	}
}

// WriteString writes s starting at x,y. Wide runes occupy two columns;
// the second column holds a zero-rune placeholder the renderer skips.
// Returns the number of columns advanced.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	start := x
	for _, r := range s {
		if x >= b.width {
			break
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(x, y, NewCell(r, style))
		if w == 2 && x+1 < b.width {
			b.Set(x+1, y, Cell{Style: style})
		}
		x += w
	}
	return x - start
}

// WriteStringClipped writes s, stopping after maxWidth columns.
func (b *Buffer) WriteStringClipped(x, y int, s string, style Style, maxWidth int) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x-start+w > maxWidth || x >= b.width {
			break
		}
		b.Set(x, y, NewCell(r, style))
		if w == 2 && x+1 < b.width {
			b.Set(x+1, y, Cell{Style: style})
		}
		x += w
	}
	return x - start
}

// HLine draws a horizontal run of the given rune.
func (b *Buffer) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x+i, y, NewCell(r, style))
	}
}

// VLine draws a vertical run of the given rune.
func (b *Buffer) VLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x, y+i, NewCell(r, style))
	}
}

// Resize grows or shrinks the buffer, preserving content where it fits.
func (b *Buffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	nb := NewBuffer(width, height)
	minW := min(width, b.width)
	minH := min(height, b.height)
	for y := 0; y < minH; y++ {
		copy(nb.cells[y*width:y*width+minW], b.cells[y*b.width:y*b.width+minW])
	}
	b.cells = nb.cells
	b.width = width
	b.height = height
	b.dirtyRow = nb.dirtyRow
	b.MarkAllDirty()
}

// String renders the buffer as plain text, one line per row. For tests.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := b.Get(x, y).Rune
			if r == 0 {
				continue // wide-rune placeholder
			}
			sb.WriteRune(r)
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StringTrimmed is String with trailing spaces and blank lines removed.
func (b *Buffer) StringTrimmed() string {
	lines := strings.Split(b.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
