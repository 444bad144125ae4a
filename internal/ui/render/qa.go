package render

import (
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/textutil"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// qaTitle names the panel and the file the question was asked about.
func qaTitle(qa statepkg.QASession) string {
	title := "Ask"
	if qa.ContextPath != "" {
		title += " · context: " + string(qa.ContextPath)
	}
	return title
}

func (r *Renderer) drawQA(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	if rect.Empty() {
		return
	}
	qa := snap.QA
	r.drawPanelTitle(rect, qaTitle(qa), m.Focus == view.FocusAnswer)

	body := view.Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
	if body.Empty() {
		return
	}
	if qa.Question == "" {
		r.drawWrapped(body, "Press a to ask a question about the selected file.", r.theme.dim())
		return
	}

	r.drawLine(body.X+1, body.Y, body.W-1, "Q: "+qa.Question, r.theme.base().Bold(true))
	answer := view.Rect{X: body.X, Y: body.Y + 1, W: body.W, H: body.H - 1}
	if answer.Empty() {
		return
	}
	switch {
	case qa.Loading:
		r.drawLine(answer.X+1, answer.Y, answer.W-1, "Thinking…", r.theme.dim())
	case qa.Err != nil:
		r.drawWrapped(answer, errorLine(qa.Err), r.theme.errorText())
	default:
		lines := textutil.Wrap(qa.Answer, answer.W-1)
		offset := min(m.AnswerOffset, max(len(lines)-1, 0))
		for i := 0; i < answer.H && offset+i < len(lines); i++ {
			r.drawLine(answer.X+1, answer.Y+i, answer.W-1, lines[offset+i], r.theme.base())
		}
	}
}
