package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/codenav/internal/textutil"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// drawText draws sanitized text starting at x, clipped at x+maxWidth, and
// returns the column after the last drawn cell.
func (r *Renderer) drawText(x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	text = textutil.SanitizeTerminalText(text)
	limit := x + maxWidth
	runes := []rune(text)
	i := 0
	for i < len(runes) && x < limit {
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && textutil.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		w := max(textutil.RuneWidth(mainc), 1)
		if x+w > limit {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}

// drawRune draws one rune, padding wide runes, and returns the next column.
func (r *Renderer) drawRune(x, y, limit int, ru rune, style tcell.Style) int {
	w := textutil.RuneWidth(ru)
	if w == 0 || x+w > limit {
		return x
	}
	r.screen.SetContent(x, y, ru, nil, style)
	return x + w
}

func (r *Renderer) fill(rect view.Rect, style tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (r *Renderer) fillRow(x, y, limit int, style tcell.Style) {
	for ; x < limit; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawLine draws text truncated with an ellipsis and pads the rest of the
// row with style.
func (r *Renderer) drawLine(x, y, width int, text string, style tcell.Style) {
	end := r.drawText(x, y, width, textutil.Truncate(textutil.SanitizeTerminalText(text), width), style)
	r.fillRow(end, y, x+width, style)
}
