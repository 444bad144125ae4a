package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/textutil"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

func (r *Renderer) drawBrowser(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	if rect.Empty() {
		return
	}
	title := "Files"
	if snap.Listing.Loading {
		title += " · loading…"
	}
	r.drawPanelTitle(rect, title, m.Focus == view.FocusBrowser)

	list := view.Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
	if list.Empty() {
		return
	}
	if snap.Listing.Err != nil {
		r.drawWrapped(list, errorLine(snap.Listing.Err), r.theme.errorText())
		return
	}

	rows := view.BrowserRows(snap)
	if len(rows) == 0 && !snap.Listing.Loading {
		r.drawLine(list.X+1, list.Y, list.W-1, "(empty directory)", r.theme.dim())
		return
	}

	start := view.ListWindow(m.BrowserIndex, len(rows), list.H)
	for i := 0; i < list.H && start+i < len(rows); i++ {
		idx := start + i
		row := rows[idx]
		style := r.theme.base().Foreground(r.theme.FileFg)
		name := row.Name
		if row.IsDir {
			style = r.theme.base().Foreground(r.theme.DirectoryFg)
			if !row.Parent {
				name += "/"
			}
		}
		if !row.IsDir && string(snap.Listing.Path.Join(row.Name)) == string(snap.Selection.Path) {
			style = style.Bold(true)
		}
		if idx == m.BrowserIndex && m.Focus == view.FocusBrowser {
			style = r.theme.selected()
		}
		r.drawLine(list.X, list.Y+i, list.W, " "+name, style)
	}
}

func (r *Renderer) drawDefinitions(rect view.Rect, m *view.Model, snap statepkg.Snapshot) {
	defs := snap.Definitions
	title := fmt.Sprintf("Definitions: %s", defs.Symbol)
	switch {
	case defs.Loading:
		title += " · searching…"
	case defs.Err == nil:
		title += fmt.Sprintf(" (%d)", len(defs.Results))
	}
	r.drawPanelTitle(rect, title, m.Focus == view.FocusDefinitions)

	list := view.Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
	if list.Empty() {
		return
	}
	if defs.Err != nil {
		r.drawWrapped(list, errorLine(defs.Err), r.theme.errorText())
		return
	}

	start := view.ListWindow(m.DefinitionIndex, len(defs.Results), list.H)
	for i := 0; i < list.H && start+i < len(defs.Results); i++ {
		idx := start + i
		def := defs.Results[idx]
		text := fmt.Sprintf(" %s:%d", def.Path, def.Line)
		if def.Kind != "" {
			text += "  " + def.Kind
		}
		style := r.theme.base()
		if idx == m.DefinitionIndex && m.Focus == view.FocusDefinitions {
			style = r.theme.selected()
		}
		r.drawLine(list.X, list.Y+i, list.W, text, style)
	}
}

// drawWrapped fills rect with text wrapped to its width.
func (r *Renderer) drawWrapped(rect view.Rect, text string, style tcell.Style) {
	lines := textutil.Wrap(text, rect.W-1)
	for i := 0; i < rect.H && i < len(lines); i++ {
		r.drawLine(rect.X+1, rect.Y+i, rect.W-1, lines[i], style)
	}
}
