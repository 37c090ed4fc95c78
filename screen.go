package weft

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
)

// Screen owns the terminal: double-buffered cell grids, raw mode, and the
// diff-based flush that writes only what changed since the previous frame.
//
// All buffer access belongs to one goroutine (the run loop). The resize
// watcher only measures the terminal and reports over ResizeChan; the
// loop applies the new dimensions itself.
type Screen struct {
	front  *Buffer // what the terminal currently shows
	back   *Buffer // what the next frame paints into
	writer io.Writer
	fd     int

	width  int
	height int

	origTermios *unix.Termios
	inRawMode   bool

	resizeChan chan ViewportSize
	sigChan    chan os.Signal

	lastStyle Style        // last SGR state emitted
	buf       bytes.Buffer // reusable output assembly buffer
}

// ViewportSize is the terminal's dimensions in cells.
type ViewportSize struct {
	Width  int
	Height int
}

// NewScreen creates a screen writing to w, or os.Stdout when w is nil.
func NewScreen(w io.Writer) (*Screen, error) {
	if w == nil {
		w = os.Stdout
	}
	fd := int(os.Stdout.Fd())
	width, height, err := terminalSize(fd)
	if err != nil {
		width, height = 80, 24
	}
	return &Screen{
		front:      NewBuffer(width, height),
		back:       NewBuffer(width, height),
		writer:     w,
		fd:         fd,
		width:      width,
		height:     height,
		resizeChan: make(chan ViewportSize, 1),
		sigChan:    make(chan os.Signal, 1),
		lastStyle:  DefaultStyle(),
	}, nil
}

// newMemoryScreen builds a screen detached from any terminal, for tests.
func newMemoryScreen(w io.Writer, width, height int) *Screen {
	return &Screen{
		front:      NewBuffer(width, height),
		back:       NewBuffer(width, height),
		writer:     w,
		width:      width,
		height:     height,
		resizeChan: make(chan ViewportSize, 1),
		sigChan:    make(chan os.Signal, 1),
		lastStyle:  DefaultStyle(),
	}
}

func terminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Size returns the current screen dimensions.
func (s *Screen) Size() ViewportSize {
	return ViewportSize{Width: s.width, Height: s.height}
}

// Buffer returns the back buffer for painting.
func (s *Screen) Buffer() *Buffer {
	return s.back
}

// ResizeChan delivers new dimensions when the terminal is resized.
func (s *Screen) ResizeChan() <-chan ViewportSize {
	return s.resizeChan
}

// EnterRawMode switches the terminal to raw input, enters the alternate
// screen and hides the cursor.
func (s *Screen) EnterRawMode() error {
	if s.inRawMode {
		return nil
	}

	termios, err := unix.IoctlGetTermios(s.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	s.origTermios = termios

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	s.inRawMode = true

	signal.Notify(s.sigChan, syscall.SIGWINCH)
	go s.watchResize()

	s.writeString("\x1b[?1049h") // alternate screen
	s.writeString("\x1b[2J")     // clear, so front buffer matches reality
	s.writeString("\x1b[H")
	s.writeString("\x1b[?25l") // hide cursor
	return nil
}

// ExitRawMode restores the terminal to its original state.
func (s *Screen) ExitRawMode() error {
	if !s.inRawMode {
		return nil
	}
	s.writeString("\x1b[0m")
	s.writeString("\x1b[?25h")
	s.writeString("\x1b[?1049l")

	signal.Stop(s.sigChan)

	if s.origTermios != nil {
		if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, s.origTermios); err != nil {
			return fmt.Errorf("restore termios: %w", err)
		}
	}
	s.inRawMode = false
	return nil
}

// watchResize reacts to SIGWINCH by measuring the terminal and handing
// the new dimensions to the run loop. It never touches screen state
// itself; the loop owns the buffers.
func (s *Screen) watchResize() {
	for range s.sigChan {
		width, height, err := terminalSize(s.fd)
		if err != nil {
			continue
		}
		logger().Debug("terminal resized", "width", width, "height", height)
		select {
		case s.resizeChan <- ViewportSize{Width: width, Height: height}:
		default:
		}
	}
}

// resize applies new dimensions: both buffers are resized and cleared
// and the terminal is wiped, so the next flush starts from a blank
// state. Called from the rendering goroutine only.
func (s *Screen) resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.front.Resize(width, height)
	s.back.Resize(width, height)
	s.front.Clear()
	s.back.Clear()
	s.writeString("\x1b[2J")
}

// Flush diffs the back buffer against the front buffer and emits the
// minimal escape sequences to transform the terminal: a cursor move only
// when the cursor is not already adjacent to the previous write, an SGR
// change only when the style differs from the last one emitted, then the
// glyph. The back buffer becomes the new front. Returns bytes written.
func (s *Screen) Flush() int {
	s.buf.Reset()
	cursorX, cursorY := -1, -1
	changed := false

	for y := 0; y < s.height; y++ {
		if !s.back.RowDirty(y) && !s.front.RowDirty(y) {
			continue
		}
		for x := 0; x < s.width; x++ {
			backCell := s.back.Get(x, y)
			if backCell == s.front.Get(x, y) {
				continue
			}

			// second column of a double-width rune; nothing to emit
			if backCell.Rune == 0 {
				s.front.setRaw(x, y, backCell)
				continue
			}
			changed = true

			if cursorX != x || cursorY != y {
				s.buf.WriteString("\x1b[")
				s.writeInt(y + 1)
				s.buf.WriteByte(';')
				s.writeInt(x + 1)
				s.buf.WriteByte('H')
			}
			s.writeCell(backCell)
			s.front.setRaw(x, y, backCell)

			rw := runewidth.RuneWidth(backCell.Rune)
			if rw == 0 {
				rw = 1
			}
			cursorX = x + rw
			cursorY = y
		}
	}

	if changed {
		s.buf.WriteString("\x1b[0m")
		s.lastStyle = DefaultStyle()
	}
	s.back.ClearDirty()
	s.front.ClearDirty()

	n := s.buf.Len()
	if n > 0 {
		s.writer.Write(s.buf.Bytes())
	}
	return n
}

// FlushFull redraws the whole frame without diffing.
func (s *Screen) FlushFull() {
	s.buf.Reset()
	s.buf.WriteString("\x1b[2J\x1b[H")
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			cell := s.back.Get(x, y)
			if cell.Rune == 0 {
				s.front.setRaw(x, y, cell)
				continue
			}
			s.writeCell(cell)
			s.front.setRaw(x, y, cell)
		}
		if y < s.height-1 {
			s.buf.WriteString("\r\n")
		}
	}
	s.buf.WriteString("\x1b[0m")
	s.lastStyle = DefaultStyle()
	s.back.ClearDirty()
	s.front.ClearDirty()
	s.writer.Write(s.buf.Bytes())
}

// writeCell emits a style transition if needed, then the glyph.
func (s *Screen) writeCell(cell Cell) {
	if !cell.Style.Equal(s.lastStyle) {
		s.writeSGR(cell.Style)
		s.lastStyle = cell.Style
	}
	s.buf.WriteRune(cell.Rune)
}

// writeSGR emits a full SGR sequence for the style. Starting from reset
// keeps the state machine simple: attributes only ever turn on.
func (s *Screen) writeSGR(style Style) {
	s.buf.WriteString("\x1b[0")
	if style.Attr.Has(AttrBold) {
		s.buf.WriteString(";1")
	}
	if style.Attr.Has(AttrDim) {
		s.buf.WriteString(";2")
	}
	if style.Attr.Has(AttrItalic) {
		s.buf.WriteString(";3")
	}
	if style.Attr.Has(AttrUnderline) {
		s.buf.WriteString(";4")
	}
	if style.Attr.Has(AttrBlink) {
		s.buf.WriteString(";5")
	}
	if style.Attr.Has(AttrInverse) {
		s.buf.WriteString(";7")
	}
	if style.Attr.Has(AttrStrikethrough) {
		s.buf.WriteString(";9")
	}
	s.writeSGRColor(style.FG, true)
	s.writeSGRColor(style.BG, false)
	s.buf.WriteByte('m')
}

// writeSGRColor emits the color component of an SGR sequence. Each color
// mode resolves to its own escape family.
func (s *Screen) writeSGRColor(c Color, fg bool) {
	switch c.Mode {
	case ColorDefault:
		if fg {
			s.buf.WriteString(";39")
		} else {
			s.buf.WriteString(";49")
		}
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		s.buf.WriteByte(';')
		s.writeInt(base + idx)
	case Color256:
		if fg {
			s.buf.WriteString(";38;5;")
		} else {
			s.buf.WriteString(";48;5;")
		}
		s.writeInt(int(c.Index))
	case ColorRGB:
		if fg {
			s.buf.WriteString(";38;2;")
		} else {
			s.buf.WriteString(";48;2;")
		}
		s.writeInt(int(c.R))
		s.buf.WriteByte(';')
		s.writeInt(int(c.G))
		s.buf.WriteByte(';')
		s.writeInt(int(c.B))
	}
}

// writeInt writes a decimal integer without allocating.
func (s *Screen) writeInt(n int) {
	if n == 0 {
		s.buf.WriteByte('0')
		return
	}
	if n < 0 {
		s.buf.WriteByte('-')
		n = -n
	}
	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	s.buf.Write(scratch[i:])
}

func (s *Screen) writeString(str string) {
	io.WriteString(s.writer, str)
}

// Clear clears the back buffer ready for the next frame's painting.
func (s *Screen) Clear() {
	s.back.Clear()
}

// ShowCursor makes the terminal cursor visible.
func (s *Screen) ShowCursor() {
	s.writeString("\x1b[?25h")
}

// HideCursor hides the terminal cursor.
func (s *Screen) HideCursor() {
	s.writeString("\x1b[?25l")
}

// MoveCursor positions the terminal cursor (0-indexed).
func (s *Screen) MoveCursor(x, y int) {
	fmt.Fprintf(s.writer, "\x1b[%d;%dH", y+1, x+1)
}
