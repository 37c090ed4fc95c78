package weft

import "github.com/lucasb-eyer/go-colorful"

// Attribute is a bit-set of text styling attributes.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns the set with attr added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns the set with attr removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode selects which escape-sequence family a color resolves to.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default (transparent for backgrounds)
	Color16                      // basic 16-color palette (0-15)
	Color256                     // xterm 256-color palette
	ColorRGB                     // 24-bit true color
)

// Color is a terminal color in one of four modes.
type Color struct {
	Mode    ColorMode
	R, G, B uint8 // RGB mode
	Index   uint8 // 16/256 mode
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// BasicColor returns one of the 16 basic terminal colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// PaletteColor returns one of the 256 xterm palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit true color from a packed hex value, e.g. 0xFF5500.
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8(hex >> 16),
		G:    uint8(hex >> 8),
		B:    uint8(hex),
	}
}

// Standard basic colors.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

// colorful converts an RGB-mode color for blending math.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Blend mixes c toward other by t in [0,1] in Luv space. Both colors must
// be RGB mode; anything else returns c unchanged, since palette entries
// have no portable color values to interpolate.
func (c Color) Blend(other Color, t float64) Color {
	if c.Mode != ColorRGB || other.Mode != ColorRGB {
		return c
	}
	m := c.colorful().BlendLuv(other.colorful(), t).Clamped()
	r, g, b := m.RGB255()
	return RGB(r, g, b)
}

// Style combines foreground, background and attributes for one cell.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns default colors and no attributes.
func DefaultStyle() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// Foreground returns the style with the given foreground color.
func (s Style) Foreground(c Color) Style { s.FG = c; return s }

// Background returns the style with the given background color.
func (s Style) Background(c Color) Style { s.BG = c; return s }

// Bold returns the style with bold enabled.
func (s Style) Bold() Style { s.Attr = s.Attr.With(AttrBold); return s }

// Dim returns the style with dim enabled.
func (s Style) Dim() Style { s.Attr = s.Attr.With(AttrDim); return s }

// Italic returns the style with italic enabled.
func (s Style) Italic() Style { s.Attr = s.Attr.With(AttrItalic); return s }

// Underline returns the style with underline enabled.
func (s Style) Underline() Style { s.Attr = s.Attr.With(AttrUnderline); return s }

// Inverse returns the style with inverse video enabled.
func (s Style) Inverse() Style { s.Attr = s.Attr.With(AttrInverse); return s }

// Strikethrough returns the style with strikethrough enabled.
func (s Style) Strikethrough() Style { s.Attr = s.Attr.With(AttrStrikethrough); return s }

// opacityDimThreshold is where reduced opacity switches to the dim
// attribute. Character cells have no alpha channel, so this is the
// closest a terminal gets.
const opacityDimThreshold = 0.7

// Opacity approximates alpha for a cell style. True-color foregrounds
// blend toward the background (or black when the background is default);
// palette colors fall back to the dim attribute below the threshold.
func (s Style) Opacity(a float64) Style {
	if a >= 1 {
		return s
	}
	if a < 0 {
		a = 0
	}
	if s.FG.Mode == ColorRGB {
		backdrop := s.BG
		if backdrop.Mode != ColorRGB {
			backdrop = RGB(0, 0, 0)
		}
		s.FG = s.FG.Blend(backdrop, 1-a)
		return s
	}
	if a < opacityDimThreshold {
		s.Attr = s.Attr.With(AttrDim)
	}
	return s
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s == other
}

// Cell is a single character position on the terminal: one glyph plus its
// styling. Equality is structural, which is what frame diffing relies on.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a space with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// NewCell creates a cell with the given rune and style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// Equal reports whether two cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c == other
}
