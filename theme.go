package weft

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Theme is a named set of styles an application draws with. Nothing in
// the toolkit consults it implicitly; views take styles, and a theme is
// just a convenient bundle to pass them from.
type Theme struct {
	Base   Style
	Muted  Style
	Accent Style
	Error  Style
	Border Style
}

// ThemeDark is a default theme for dark terminals.
func ThemeDark() Theme {
	return Theme{
		Base:   DefaultStyle(),
		Muted:  DefaultStyle().Foreground(BrightBlack),
		Accent: DefaultStyle().Foreground(Cyan).Bold(),
		Error:  DefaultStyle().Foreground(Red).Bold(),
		Border: DefaultStyle().Foreground(BrightBlack),
	}
}

// ThemeLight is a default theme for light terminals.
func ThemeLight() Theme {
	return Theme{
		Base:   DefaultStyle(),
		Muted:  DefaultStyle().Foreground(White),
		Accent: DefaultStyle().Foreground(Blue).Bold(),
		Error:  DefaultStyle().Foreground(Red).Bold(),
		Border: DefaultStyle().Foreground(White),
	}
}

// ThemeMonochrome uses attributes only, for terminals without color.
func ThemeMonochrome() Theme {
	return Theme{
		Base:   DefaultStyle(),
		Muted:  DefaultStyle().Dim(),
		Accent: DefaultStyle().Bold(),
		Error:  DefaultStyle().Inverse(),
		Border: DefaultStyle(),
	}
}

// themeFile is the on-disk TOML shape:
//
//	[base]
//	fg = "#d0d0d0"
//	[accent]
//	fg = "cyan"
//	bold = true
type themeFile struct {
	Base   styleEntry `toml:"base"`
	Muted  styleEntry `toml:"muted"`
	Accent styleEntry `toml:"accent"`
	Error  styleEntry `toml:"error"`
	Border styleEntry `toml:"border"`
}

type styleEntry struct {
	FG        string `toml:"fg"`
	BG        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Dim       bool   `toml:"dim"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Inverse   bool   `toml:"inverse"`
}

// LoadTheme reads a theme file. Missing entries keep the dark theme's
// styles, so a file can override just one role.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes TOML theme data.
func ParseTheme(data []byte) (Theme, error) {
	var f themeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}

	t := ThemeDark()
	entries := []struct {
		name  string
		entry styleEntry
		dst   *Style
	}{
		{"base", f.Base, &t.Base},
		{"muted", f.Muted, &t.Muted},
		{"accent", f.Accent, &t.Accent},
		{"error", f.Error, &t.Error},
		{"border", f.Border, &t.Border},
	}
	for _, e := range entries {
		st, err := e.entry.style()
		if err != nil {
			return Theme{}, fmt.Errorf("theme entry %q: %w", e.name, err)
		}
		if st != nil {
			*e.dst = *st
		}
	}
	return t, nil
}

// style resolves an entry to a Style, or nil when the entry is empty.
func (e styleEntry) style() (*Style, error) {
	if e == (styleEntry{}) {
		return nil, nil
	}
	s := DefaultStyle()
	fg, err := parseColor(e.FG)
	if err != nil {
		return nil, err
	}
	bg, err := parseColor(e.BG)
	if err != nil {
		return nil, err
	}
	s.FG, s.BG = fg, bg
	if e.Bold {
		s = s.Bold()
	}
	if e.Dim {
		s = s.Dim()
	}
	if e.Italic {
		s = s.Italic()
	}
	if e.Underline {
		s = s.Underline()
	}
	if e.Inverse {
		s = s.Inverse()
	}
	return &s, nil
}

var namedColors = map[string]Color{
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"bright-black":   BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// parseColor accepts "", a named basic color, "123" for a palette
// index, or "#rrggbb".
func parseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return DefaultColor(), nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	}
	if idx, err := strconv.Atoi(s); err == nil && idx >= 0 && idx <= 255 {
		return PaletteColor(uint8(idx)), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}
