package weft

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTheme(t *testing.T) {
	data := []byte(`
[accent]
fg = "#ff0000"
bold = true

[muted]
fg = "bright-black"

[border]
fg = "208"
`)
	th, err := ParseTheme(data)
	if err != nil {
		t.Fatal(err)
	}
	if th.Accent.FG != RGB(255, 0, 0) {
		t.Errorf("accent fg %+v", th.Accent.FG)
	}
	if !th.Accent.Attr.Has(AttrBold) {
		t.Error("accent should be bold")
	}
	if th.Muted.FG != BrightBlack {
		t.Errorf("muted fg %+v", th.Muted.FG)
	}
	if th.Border.FG != PaletteColor(208) {
		t.Errorf("border fg %+v", th.Border.FG)
	}
	// entries absent from the file keep the dark defaults
	if th.Error != ThemeDark().Error {
		t.Errorf("error style %+v", th.Error)
	}
}

func TestParseThemeErrors(t *testing.T) {
	if _, err := ParseTheme([]byte(`[accent`)); err == nil {
		t.Error("bad toml should fail")
	}
	if _, err := ParseTheme([]byte("[accent]\nfg = \"no-such-color\"\n")); err == nil {
		t.Error("unknown color should fail")
	}
	if _, err := ParseTheme([]byte("[accent]\nfg = \"#zzz\"\n")); err == nil {
		t.Error("bad hex should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"", DefaultColor()},
		{"default", DefaultColor()},
		{"red", Red},
		{"RED", Red},
		{" cyan ", Cyan},
		{"bright-white", BrightWhite},
		{"42", PaletteColor(42)},
		{"#0080ff", RGB(0, 128, 255)},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if err != nil {
			t.Errorf("parseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	if _, err := parseColor("300"); err == nil {
		t.Error("out-of-range palette index should fail")
	}
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	if err := os.WriteFile(path, []byte("[base]\nfg = \"white\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.Base.FG != White {
		t.Errorf("base fg %+v", th.Base.FG)
	}

	if _, err := LoadTheme(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}
