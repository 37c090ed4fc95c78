package weft

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal columns s occupies.
// Grapheme clusters (emoji, combining marks) count once.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// truncateToWidth cuts s to at most width columns, never splitting a
// grapheme cluster.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > width {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return sb.String()
}

// hardBreak splits an oversized word into width-sized chunks, leaving
// the final piece as the remainder. Every chunk consumes at least one
// grapheme cluster, so a cluster wider than the wrap width (a CJK rune
// at width 1) still advances instead of stalling.
func hardBreak(out []string, word string, width int) ([]string, string) {
	for DisplayWidth(word) > width {
		chunk := truncateToWidth(word, width)
		if chunk == "" {
			g := uniseg.NewGraphemes(word)
			g.Next()
			chunk = g.Str()
		}
		if chunk == word {
			break
		}
		out = append(out, chunk)
		word = word[len(chunk):]
	}
	return out, word
}

// wrapText breaks s into lines of at most width columns. Existing
// newlines are respected; long words break mid-word rather than overflow.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if DisplayWidth(para) <= width {
			out = append(out, para)
			continue
		}
		line := ""
		lineW := 0
		for _, word := range strings.Fields(para) {
			w := DisplayWidth(word)
			switch {
			case lineW == 0:
				out, word = hardBreak(out, word, width)
				line, lineW = word, DisplayWidth(word)
			case lineW+1+w <= width:
				line += " " + word
				lineW += 1 + w
			default:
				out = append(out, line)
				out, word = hardBreak(out, word, width)
				line, lineW = word, DisplayWidth(word)
			}
		}
		out = append(out, line)
	}
	return out
}

// measureText returns the column width of the widest line and the line
// count of s.
func measureText(s string) (w, h int) {
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		if lw := DisplayWidth(l); lw > w {
			w = lw
		}
	}
	return w, len(lines)
}
