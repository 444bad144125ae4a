package textutil

import "strings"

var formattingRuneLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText makes backend-supplied text safe to draw: control
// characters cannot start escape sequences and bidi or zero-width runes are
// shown as labels. Tabs are kept for ExpandTabs; line breaks become spaces.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if _, ok := SanitizeRune(r); !ok {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	for _, r := range text {
		if repl, ok := SanitizeRune(r); !ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeRune reports whether r can be drawn as is. When it cannot, the
// returned string is what to draw instead. Renderers that track per-rune
// offsets use it to keep highlight positions aligned with the source text.
func SanitizeRune(r rune) (string, bool) {
	switch {
	case r == '\t':
		return "", true
	case r == '\n', r == '\r':
		return " ", false
	case r < 0x20, r == 0x7f:
		return "?", false
	}
	if label, ok := formattingRuneLabels[r]; ok {
		return label, false
	}
	return "", true
}
