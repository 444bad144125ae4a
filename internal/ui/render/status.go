package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/textutil"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// promptLabel is the text before the prompt input, e.g. "Search [content]: ".
func promptLabel(m *view.Model) string {
	label := m.Prompt.Kind.Label()
	if m.Prompt.Kind == view.PromptSearch {
		label += fmt.Sprintf(" [%s]", m.SearchMode)
	}
	return label + ": "
}

func (r *Renderer) drawStatusLine(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	if rect.Empty() {
		return
	}
	style := r.theme.header()
	r.fill(rect, style)

	if m.Prompt.Active() {
		r.drawPrompt(rect, m)
		return
	}

	limit := rect.X + rect.W
	if m.Status != "" {
		msgStyle := style
		if m.StatusIsError {
			msgStyle = style.Foreground(r.theme.ErrorFg).Bold(true)
		}
		r.drawText(rect.X+1, rect.Y, rect.W-1, textutil.Truncate(m.Status, rect.W-1), msgStyle)
		return
	}

	hints := " " + strings.Join(statusHints(m, snap), "  ")
	r.drawText(rect.X, rect.Y, rect.W, textutil.Truncate(hints, rect.W), style.Foreground(r.theme.DimFg))

	if sel := snap.Selection; sel.Viewing() {
		label := fmt.Sprintf(" %s · %s ", sel.Path, sel.Origin)
		label = textutil.TruncateLeft(label, rect.W/2)
		start := limit - textutil.DisplayWidth(label)
		if start > rect.X {
			r.drawText(start, rect.Y, limit-start, label, style)
		}
	}
}

// drawPrompt draws the active prompt and places the terminal cursor at the
// edit position, scrolling the input left when it does not fit.
func (r *Renderer) drawPrompt(rect view.Rect, m *view.Model) {
	style := r.theme.header()
	limit := rect.X + rect.W
	x := r.drawText(rect.X+1, rect.Y, rect.W-1, promptLabel(m), style.Bold(true))

	input := []rune(m.Prompt.Value())
	cursor := m.Prompt.Cursor()
	available := limit - x - 1
	if available <= 0 {
		return
	}
	start := 0
	for textutil.DisplayWidth(string(input[start:cursor])) >= available && start < cursor {
		start++
	}
	cursorX := x + textutil.DisplayWidth(string(input[start:cursor]))
	r.drawText(x, rect.Y, available, string(input[start:]), style)
	r.screen.ShowCursor(cursorX, rect.Y)
}

func statusHints(m *view.Model, snap statepkg.Snapshot) []string {
	switch m.Focus {
	case view.FocusViewer:
		return []string{"↑↓/Pg: scroll", "Esc: close", "Tab: panel", "a: ask", "?: help"}
	case view.FocusResults:
		return []string{"↵: open", "Esc: close results", "m: mode", "?: help"}
	case view.FocusDefinitions:
		return []string{"↵: open definition", "Tab: panel", "?: help"}
	case view.FocusAnswer:
		return []string{"↑↓: scroll", "A: hide", "Tab: panel", "?: help"}
	}
	hints := []string{"↵: open", "←: up", "/: search", "d: definition", "a: ask"}
	if snap.Search.Exists() && !snap.Search.Visible {
		hints = append(hints, "s: show search")
	}
	return append(hints, "?: help", "q: quit")
}
