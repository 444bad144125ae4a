package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	DefaultTabWidth = 4
	ellipsis        = "…"
)

// RuneWidth is the number of terminal cells ru occupies. Combining marks
// report 0.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 0 {
		return 0
	}
	return w
}

// DisplayWidth reports the printable width of text, counting grapheme
// clusters such as emoji sequences once.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// ExpandTabs replaces tab characters with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + tabWidth)
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(ru)
		column += max(RuneWidth(ru), 1)
	}
	return b.String()
}

// Truncate shortens text to maxWidth cells, ending with an ellipsis when
// anything was cut.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 1 {
		return ellipsis
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}

// TruncateLeft keeps the end of text, which is the useful part of a path.
func TruncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 1 {
		return ellipsis
	}

	runes := []rune(text)
	available := maxWidth - 1
	width := 0
	start := len(runes)
	for start > 0 {
		w := RuneWidth(runes[start-1])
		if width+w > available {
			break
		}
		width += w
		start--
	}
	return ellipsis + string(runes[start:])
}

// Wrap breaks text into lines no wider than width, preferring spaces.
// Existing newlines are kept.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		paragraph = strings.TrimRight(paragraph, "\r")
		if paragraph == "" {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(paragraph) {
			for DisplayWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					head = string([]rune(word)[:1])
				}
				out = append(out, head)
				word = word[len(head):]
			}
			switch {
			case word == "":
			case line == "":
				line = word
			case DisplayWidth(line)+1+DisplayWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
