package render

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

const (
	plainTextLanguage = "Plain Text"
	// Files above this size are shown without colouring.
	maxHighlightBytes = 512 * 1024
)

// LanguageName returns the display name of the language chroma detects for
// path from its file name.
func LanguageName(path string) string {
	if lexer := lexers.Match(path); lexer != nil {
		return lexer.Config().Name
	}
	return plainTextLanguage
}

// syntaxCache holds the token lines of the content currently on screen.
type syntaxCache struct {
	style *chroma.Style
	path  string
	token uint64
	text  string
	lines [][]chroma.Token
}

func newSyntaxCache(styleName string) *syntaxCache {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &syntaxCache{style: style}
}

// tokens returns the chroma token lines for text, tokenising only when the
// content changed.
func (c *syntaxCache) tokens(path string, token uint64, text string) [][]chroma.Token {
	if c.lines != nil && c.path == path && c.token == token && c.text == text {
		return c.lines
	}
	c.path, c.token, c.text = path, token, text
	c.lines = nil
	if len(text) > maxHighlightBytes {
		c.lines = [][]chroma.Token{}
		return c.lines
	}

	lexer := lexers.Match(path)
	if lexer == nil {
		c.lines = [][]chroma.Token{}
		return c.lines
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		c.lines = [][]chroma.Token{}
		return c.lines
	}
	c.lines = chroma.SplitTokensIntoLines(it.Tokens())
	return c.lines
}

// lineStyles returns one style per rune of a source line. Runes beyond the
// tokenised text keep base.
func (c *syntaxCache) lineStyles(line []chroma.Token, runeCount int, base tcell.Style) []tcell.Style {
	out := make([]tcell.Style, runeCount)
	i := 0
	for _, tok := range line {
		style := c.tokenStyle(tok.Type, base)
		for _, ru := range tok.Value {
			if ru == '\n' {
				continue
			}
			if i >= runeCount {
				return out
			}
			out[i] = style
			i++
		}
	}
	for ; i < runeCount; i++ {
		out[i] = base
	}
	return out
}

func (c *syntaxCache) tokenStyle(tt chroma.TokenType, base tcell.Style) tcell.Style {
	entry := c.style.Get(tt)
	style := base
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	return style
}
