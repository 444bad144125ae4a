package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/textutil"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// viewerHeader is the title row of the viewer: name, language, line count
// and size, plus how the file was reached.
func viewerHeader(snap statepkg.Snapshot) string {
	sel := snap.Selection
	parts := []string{sel.Path.Base()}
	content := snap.Content
	if content.Loaded {
		parts = append(parts, LanguageName(string(sel.Path)))
		if !content.Content.Binary {
			parts = append(parts, fmt.Sprintf("%d lines", content.Content.Lines))
		}
		parts = append(parts, textutil.FormatSize(content.Content.Bytes))
	}

	switch sel.HighlightUnit() {
	case statepkg.UnitLine:
		parts = append(parts, fmt.Sprintf("definition at line %d", sel.Highlight.Start))
	case statepkg.UnitCharOffset:
		parts = append(parts, "search match")
	}
	if content.Cached && content.Loading {
		parts = append(parts, "refreshing…")
	}
	return strings.Join(parts, " · ")
}

func (r *Renderer) drawViewer(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	if rect.Empty() {
		return
	}
	r.drawPanelTitle(rect, " "+viewerHeader(snap), m.Focus == view.FocusViewer)

	body := view.Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
	if body.Empty() {
		return
	}
	content := snap.Content
	switch {
	case content.Err != nil:
		r.drawWrapped(body, errorLine(content.Err), r.theme.errorText())
		return
	case !content.Loaded:
		r.drawLine(body.X+1, body.Y, body.W-1, "Loading file content...", r.theme.dim())
		return
	case content.Content.Binary:
		msg := fmt.Sprintf("Binary file (%s) not shown", textutil.FormatSize(content.Content.Bytes))
		if content.Content.MIME != "" {
			msg = fmt.Sprintf("Binary file (%s, %s) not shown", content.Content.MIME, textutil.FormatSize(content.Content.Bytes))
		}
		r.drawLine(body.X+1, body.Y, body.W-1, msg, r.theme.dim())
		return
	}

	text := content.Content.Text
	index := m.LineIndex(snap)
	runes := []rune(text)
	tokens := r.syntax.tokens(string(snap.Selection.Path), content.Token, text)

	gutter := len(strconv.Itoa(index.Lines())) + 1
	markLine, hasMark := -1, false
	if snap.Selection.HighlightUnit() == statepkg.UnitLine {
		markLine, hasMark = m.HighlightLine(snap)
	}
	hl := snap.Selection.Highlight
	charRange := snap.Selection.HighlightUnit() == statepkg.UnitCharOffset && hl.End > hl.Start

	for row := 0; row < body.H; row++ {
		line := m.ViewerOffset + row
		if line >= index.Lines() {
			break
		}
		y := body.Y + row
		start := index.LineStart(line)
		end := index.LineStart(line + 1)
		if line+1 < index.Lines() {
			end-- // drop the newline
		}
		lineRunes := runes[start:end]
		if n := len(lineRunes); n > 0 && lineRunes[n-1] == '\r' {
			lineRunes = lineRunes[:n-1]
		}

		base := r.theme.base()
		if hasMark && line == markLine {
			base = base.Background(r.theme.LineMarkBg)
		}
		num := fmt.Sprintf("%*d ", gutter, line+1)
		x := r.drawText(body.X, y, body.W, num, base.Foreground(r.theme.GutterFg))

		var styles []tcell.Style
		if line < len(tokens) {
			styles = r.syntax.lineStyles(tokens[line], len(lineRunes), base)
		}
		x = r.drawSourceLine(x, y, body.X+body.W, lineRunes, start, styles, base, charRange, hl)
		r.fillRow(x, y, body.X+body.W, base)
	}
}

// drawSourceLine draws one line of file text rune by rune so that
// highlight offsets stay aligned with the source after tab expansion and
// sanitizing. offset is the rune offset of the line in the whole file.
func (r *Renderer) drawSourceLine(x, y, limit int, line []rune, offset int, styles []tcell.Style, base tcell.Style, charRange bool, hl statepkg.Highlight) int {
	startX := x
	for i, ru := range line {
		if x >= limit {
			break
		}
		style := base
		if i < len(styles) {
			style = styles[i]
		}
		if charRange && offset+i >= hl.Start && offset+i < hl.End {
			style = style.Background(r.theme.MatchBg).Foreground(r.theme.MatchFg)
		}

		if ru == '\ufeff' && offset+i == 0 {
			continue
		}
		if ru == '\t' {
			spaces := r.tabWidth - ((x - startX) % r.tabWidth)
			for s := 0; s < spaces && x < limit; s++ {
				r.screen.SetContent(x, y, ' ', nil, style)
				x++
			}
			continue
		}
		if repl, ok := textutil.SanitizeRune(ru); !ok {
			for _, rr := range repl {
				x = r.drawRune(x, y, limit, rr, style)
			}
			continue
		}
		x = r.drawRune(x, y, limit, ru, style)
	}
	return x
}
