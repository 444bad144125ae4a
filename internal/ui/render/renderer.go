package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	errs "github.com/kk-code-lab/codenav/internal/errors"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/textutil"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen   tcell.Screen
	theme    ColorTheme
	syntax   *syntaxCache
	tabWidth int
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	theme := GetColorTheme()
	return &Renderer{
		screen:   screen,
		theme:    theme,
		syntax:   newSyntaxCache(theme.SyntaxStyle),
		tabWidth: textutil.DefaultTabWidth,
	}
}

// SetTabWidth changes how many columns a tab advances in the viewer.
func (r *Renderer) SetTabWidth(width int) {
	if width > 0 {
		r.tabWidth = width
	}
}

// Render draws the entire UI from the view model and a state snapshot
func (r *Renderer) Render(m *view.Model, snap statepkg.Snapshot) {
	r.screen.Clear()
	r.screen.HideCursor()

	if m.HelpVisible {
		r.drawHelpOverlay(m.Width, m.Height)
		r.screen.Show()
		return
	}

	layout := m.Layout(snap)
	r.drawHeader(layout.Header, snap)
	r.drawBrowser(layout.Browser, m, snap)
	if !layout.Definitions.Empty() {
		r.drawDefinitions(layout.Definitions, m, snap)
	}
	r.fill(layout.Separator, r.theme.base())
	if !layout.SearchBar.Empty() {
		r.drawSearchBar(layout.SearchBar, m, snap)
	}
	switch {
	case snap.Selection.Viewing():
		r.drawViewer(layout.Main, m, snap)
	case view.ResultsShown(snap):
		r.drawResults(layout.Main, m, snap)
	default:
		r.drawPlaceholder(layout.Main)
	}
	if !layout.QA.Empty() {
		r.drawQA(layout.QA, m, snap)
	}
	r.drawStatusLine(layout.Status, m, snap)

	r.screen.Show()
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(rect view.Rect, snap statepkg.Snapshot) {
	if rect.Empty() {
		return
	}
	style := r.theme.header()
	r.fill(rect, style)

	x := r.drawText(rect.X, rect.Y, rect.W, "codenav ", style.Bold(true))
	available := rect.X + rect.W - x

	segments := breadcrumbSegments(snap.BrowseCursor)
	last := len(segments) - 1
	prefix := ""
	if last > 0 {
		prefix = strings.Join(segments[:last], " › ") + " › "
	}
	lastWidth := textutil.DisplayWidth(segments[last])
	prefix = textutil.TruncateLeft(prefix, available-lastWidth)
	x = r.drawText(x, rect.Y, available, prefix, style)
	r.drawText(x, rect.Y, rect.X+rect.W-x, textutil.Truncate(segments[last], rect.X+rect.W-x), style.Bold(true))

	if root := snap.RepoRoot; root != "" {
		label := " " + textutil.TruncateLeft(root, rect.W/3) + " "
		start := rect.X + rect.W - textutil.DisplayWidth(label)
		if start > x+2 {
			r.drawText(start, rect.Y, rect.W, label, style.Foreground(r.theme.DimFg))
		}
	}
}

// breadcrumbSegments splits a browse cursor into displayable segments,
// starting with the repository root.
func breadcrumbSegments(cursor statepkg.CanonicalPath) []string {
	segments := []string{"/"}
	for _, part := range strings.Split(string(cursor), "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func (r *Renderer) drawPanelTitle(rect view.Rect, title string, focused bool) {
	r.drawLine(rect.X, rect.Y, rect.W, title, r.theme.title(focused))
}

func (r *Renderer) drawPlaceholder(rect view.Rect) {
	if rect.Empty() {
		return
	}
	r.drawPanelTitle(rect, "Viewer", false)
	if rect.H > 2 {
		r.drawLine(rect.X+1, rect.Y+2, rect.W-1, "Select a file from the file browser to view its contents", r.theme.dim())
	}
}

// errorLine is the one-line panel message for err.
func errorLine(err error) string {
	return errs.UserMessage(err)
}
