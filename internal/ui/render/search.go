package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

func (r *Renderer) drawSearchBar(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	search := snap.Search
	style := r.theme.header()
	r.fill(rect, style)

	mode := fmt.Sprintf(" [%s] ", m.SearchMode)
	x := r.drawText(rect.X, rect.Y, rect.W, mode, style.Foreground(r.theme.BadgeFg))
	limit := rect.X + rect.W

	var text string
	switch {
	case !search.Exists():
		text = "press / to search, m to change mode"
	case search.Loading:
		text = fmt.Sprintf("%q · searching…", search.Query.Text)
	case search.Err != nil:
		text = fmt.Sprintf("%q · failed", search.Query.Text)
	default:
		text = fmt.Sprintf("%q · %d results", search.Query.Text, len(search.Results))
		if search.Query.Exact {
			text += " · exact"
		}
		if !search.Visible {
			text += " · hidden"
		}
	}
	r.drawText(x, rect.Y, limit-x, text, style)
}

func (r *Renderer) drawResults(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	if rect.Empty() {
		return
	}
	search := snap.Search
	title := fmt.Sprintf("Results for %q (%s)", search.Query.Text, search.Query.Mode)
	r.drawPanelTitle(rect, title, m.Focus == view.FocusResults)

	body := view.Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
	if body.Empty() {
		return
	}
	switch {
	case search.Loading:
		r.drawLine(body.X+1, body.Y, body.W-1, "Searching…", r.theme.dim())
		return
	case search.Err != nil:
		r.drawWrapped(body, errorLine(search.Err), r.theme.errorText())
		return
	case len(search.Results) == 0:
		r.drawLine(body.X+1, body.Y, body.W-1, "No results", r.theme.dim())
		return
	}

	visible := max(body.H/view.ResultRowHeight, 1)
	start := view.ListWindow(m.ResultIndex, len(search.Results), visible)
	for i := 0; i < visible && start+i < len(search.Results); i++ {
		idx := start + i
		hit := search.Results[idx]
		y := body.Y + i*view.ResultRowHeight

		pathStyle := r.theme.base().Bold(true)
		snippetStyle := r.theme.dim()
		if idx == m.ResultIndex && m.Focus == view.FocusResults {
			pathStyle = r.theme.selected().Bold(true)
			snippetStyle = r.theme.selected()
		}

		label := " " + hit.Path
		if hit.Relevance > 0 {
			label += fmt.Sprintf("  %.2f", hit.Relevance)
		}
		if hit.ExactMatch {
			label += "  exact"
		}
		r.drawLine(body.X, y, body.W, label, pathStyle)
		if y+1 < body.Y+body.H {
			r.drawLine(body.X, y+1, body.W, "   "+snippetLine(hit.Snippet), snippetStyle)
		}
	}
}

// snippetLine collapses a multi-line snippet to its first non-blank line.
func snippetLine(snippet string) string {
	for _, line := range strings.Split(snippet, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
