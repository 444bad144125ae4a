package render

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/codenav/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpOverlaySections = []helpOverlaySection{
	{
		title: "Navigation",
		entries: []helpOverlayEntry{
			{keys: "↑/↓ j/k", desc: "Move in the focused panel"},
			{keys: "↵ → l", desc: "Open directory or file"},
			{keys: "← h ⌫", desc: "Parent directory"},
			{keys: "~", desc: "Repository root"},
			{keys: "Tab", desc: "Next panel"},
			{keys: "g / G", desc: "Top / bottom"},
		},
	},
	{
		title: "Search & Definitions",
		entries: []helpOverlayEntry{
			{keys: "/", desc: "Search (Tab in prompt cycles mode)"},
			{keys: "m", desc: "Cycle filename / content / semantic"},
			{keys: "s  Ctrl+F", desc: "Show or hide the search bar"},
			{keys: "x", desc: "Close the search session"},
			{keys: "d", desc: "Look up a symbol definition"},
		},
	},
	{
		title: "Questions",
		entries: []helpOverlayEntry{
			{keys: "a", desc: "Ask about the selected file"},
			{keys: "A", desc: "Show or hide the answer panel"},
		},
	},
	{
		title: "General",
		entries: []helpOverlayEntry{
			{keys: "Esc", desc: "Close file, then search results"},
			{keys: "r", desc: "Retry the failed request"},
			{keys: "y", desc: "Copy path:line to the clipboard"},
			{keys: "e", desc: "Open in $EDITOR (local checkout)"},
			{keys: "Ctrl+Z", desc: "Suspend to the shell"},
			{keys: "q  Ctrl+C", desc: "Quit"},
			{keys: "?", desc: "Close this help"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 32)
	for i, section := range helpOverlaySections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	pad := max(14-textutil.DisplayWidth(key), 1)
	return fmt.Sprintf("  %s%s%s", key, strings.Repeat(" ", pad), entry.desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	base := r.theme.base()
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, base)
	}

	header := r.theme.header().Bold(true)
	title := " Help "
	titleStart := 0
	if tw := textutil.DisplayWidth(title); w > tw {
		titleStart = (w - tw) / 2
	}
	r.fillRow(0, 0, w, header)
	r.drawText(titleStart, 0, w-titleStart, title, header)

	row := 2
	for _, line := range buildHelpOverlayLines() {
		if row >= h-1 {
			break
		}
		r.drawLine(2, row, w-4, line, base)
		row++
	}

	if h > 0 {
		r.drawLine(0, h-1, w, "? toggle · Esc/q close", header)
	}
}
