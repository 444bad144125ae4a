// Package view holds UI-only state: focus, the input prompt, list cursors
// and scroll positions. Navigation state lives in the coordinator; Update
// turns user intent into coordinator actions.
package view

import (
	"strings"

	"github.com/kk-code-lab/codenav/internal/backend"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/textutil"
)

// Focus is the panel that receives list keys.
type Focus int

const (
	FocusBrowser Focus = iota
	FocusResults
	FocusDefinitions
	FocusViewer
	FocusAnswer
)

func (f Focus) String() string {
	switch f {
	case FocusResults:
		return "results"
	case FocusDefinitions:
		return "definitions"
	case FocusViewer:
		return "viewer"
	case FocusAnswer:
		return "answer"
	default:
		return "browser"
	}
}

// Model is the view state. It is owned by the application loop.
type Model struct {
	Width  int
	Height int

	Focus       Focus
	Prompt      Prompt
	SearchMode  backend.SearchMode
	HelpVisible bool
	Quit        bool

	BrowserIndex    int
	ResultIndex     int
	DefinitionIndex int
	ViewerOffset    int
	AnswerOffset    int

	Status        string
	StatusIsError bool

	TabWidth int

	index      textutil.LineIndex
	indexToken uint64
	indexText  string
	indexValid bool
}

// NewModel returns a model for a screen of the given size.
func NewModel(width, height int) *Model {
	return &Model{Width: width, Height: height, SearchMode: backend.SearchContent, TabWidth: textutil.DefaultTabWidth}
}

// SetError shows msg on the status line until the next action.
func (m *Model) SetError(msg string) {
	m.Status = msg
	m.StatusIsError = msg != ""
}

// SetStatus shows an informational message.
func (m *Model) SetStatus(msg string) {
	m.Status = msg
	m.StatusIsError = false
}

// BrowserRow is one line of the file browser.
type BrowserRow struct {
	Name   string
	IsDir  bool
	Parent bool
}

// BrowserRows lists the browser lines: a parent entry below the root, then
// the directory entries in listing order.
func BrowserRows(snap statepkg.Snapshot) []BrowserRow {
	rows := make([]BrowserRow, 0, len(snap.Listing.Entries)+1)
	if snap.Listing.Path != "" {
		rows = append(rows, BrowserRow{Name: "..", IsDir: true, Parent: true})
	}
	for _, e := range snap.Listing.Entries {
		rows = append(rows, BrowserRow{Name: e.Name, IsDir: e.IsDir})
	}
	return rows
}

// ResultsShown reports whether the main area lists search results rather
// than a file.
func ResultsShown(snap statepkg.Snapshot) bool {
	return !snap.Selection.Viewing() && snap.Search.Exists() && snap.Search.Visible
}

// Layout returns the layout for the current screen.
func (m *Model) Layout(snap statepkg.Snapshot) Layout {
	return ComputeLayout(m.Width, m.Height, snap)
}

// ViewerHeight is the number of text rows in the viewer.
func (m *Model) ViewerHeight(snap statepkg.Snapshot) int {
	return max(m.Layout(snap).Main.H-1, 0)
}

// LineIndex returns the line index of the displayed content. A cached copy
// and its refresh share a token, so the text is compared as well.
func (m *Model) LineIndex(snap statepkg.Snapshot) textutil.LineIndex {
	text := snap.Content.Content.Text
	if !m.indexValid || m.indexToken != snap.Content.Token || m.indexText != text {
		m.index = textutil.NewLineIndex(text)
		m.indexToken = snap.Content.Token
		m.indexText = text
		m.indexValid = true
	}
	return m.index
}

// HighlightLine returns the 0-based line the selection highlight starts on.
func (m *Model) HighlightLine(snap statepkg.Snapshot) (int, bool) {
	sel := snap.Selection
	switch sel.HighlightUnit() {
	case statepkg.UnitLine:
		if sel.Highlight.Start <= 0 {
			return 0, false
		}
		return sel.Highlight.Start - 1, true
	case statepkg.UnitCharOffset:
		if sel.Highlight.Start == sel.Highlight.End {
			return 0, false
		}
		line, _ := m.LineIndex(snap).Locate(sel.Highlight.Start)
		return line, true
	default:
		return 0, false
	}
}

// Update applies a view action and returns the coordinator actions it
// produces. changed reports whether anything needs redrawing.
func (m *Model) Update(action statepkg.Action, snap statepkg.Snapshot) (out []statepkg.Action, changed bool) {
	if _, ok := action.(ResizeAction); !ok {
		m.Status, m.StatusIsError = "", false
	}

	switch a := action.(type) {
	case QuitAction:
		m.Quit = true
		return nil, false

	case ResizeAction:
		m.Width, m.Height = a.Width, a.Height
		m.clamp(snap)
		return nil, true

	case HelpToggleAction:
		m.HelpVisible = !m.HelpVisible
		return nil, true

	case FocusNextAction:
		m.cycleFocus(snap, a.Reverse)
		return nil, true

	case MoveAction:
		m.move(snap, a.Delta)
		return nil, true

	case PageAction:
		m.move(snap, a.Delta*max(m.pageSize(snap), 1))
		return nil, true

	case JumpAction:
		if a.End {
			m.move(snap, 1<<30)
		} else {
			m.move(snap, -(1 << 30))
		}
		return nil, true

	case ActivateAction:
		return m.activate(snap), true

	case BackAction:
		switch m.Focus {
		case FocusViewer:
			return []statepkg.Action{statepkg.DismissAction{}}, true
		default:
			if snap.BrowseCursor != "" {
				return []statepkg.Action{statepkg.BrowseUpAction{}}, true
			}
		}
		return nil, true

	case EscapeAction:
		switch {
		case m.HelpVisible:
			m.HelpVisible = false
		case snap.Selection.Viewing():
			if snap.Selection.Origin == statepkg.OriginSearch && snap.Search.Exists() {
				m.Focus = FocusResults
			} else if m.Focus == FocusViewer {
				m.Focus = FocusBrowser
			}
			return []statepkg.Action{statepkg.DismissAction{}}, true
		case snap.Search.Exists():
			if m.Focus == FocusResults {
				m.Focus = FocusBrowser
			}
			return []statepkg.Action{statepkg.CloseSearchAction{}}, true
		}
		return nil, true

	case OpenPromptAction:
		initial := ""
		if a.Kind == PromptSearch && snap.Search.Exists() {
			initial = snap.Search.Query.Text
		}
		m.Prompt.Open(a.Kind, initial)
		return nil, true

	case PromptInputAction:
		m.Prompt.Insert(a.Rune)
		return nil, true

	case PromptEditAction:
		m.editPrompt(a.Edit)
		return nil, true

	case PromptCancelAction:
		m.Prompt.Close()
		return nil, true

	case PromptSubmitAction:
		return m.submitPrompt(snap), true

	case CycleSearchModeAction:
		m.SearchMode = (m.SearchMode + 1) % 3
		return nil, true

	case RetryRequestAction:
		if panel, ok := m.retryPanel(snap); ok {
			return []statepkg.Action{statepkg.RetryAction{Panel: panel}}, true
		}
		m.SetStatus("Nothing to retry")
		return nil, true

	case ClickAction:
		return m.click(snap, a.X, a.Y), true

	case WheelAction:
		l := m.Layout(snap)
		switch {
		case l.Main.Contains(a.X, a.Y) && snap.Selection.Viewing():
			m.ViewerOffset = m.clampViewer(snap, m.ViewerOffset+a.Delta)
		case l.QA.Contains(a.X, a.Y):
			m.AnswerOffset = max(m.AnswerOffset+a.Delta, 0)
		default:
			return nil, false
		}
		return nil, true
	}

	return nil, false
}

// Observe adjusts cursors and scroll positions after the coordinator
// published next. prev is the snapshot the model last saw.
func (m *Model) Observe(prev, next statepkg.Snapshot) {
	if next.Listing.Path != prev.Listing.Path {
		m.BrowserIndex = 0
	}
	if next.Search.Query != prev.Search.Query || (prev.Search.Loading && !next.Search.Loading) {
		m.ResultIndex = 0
	}
	if next.Definitions.Symbol != prev.Definitions.Symbol || (prev.Definitions.Loading && !next.Definitions.Loading) {
		m.DefinitionIndex = 0
	}
	if next.QA.Question != prev.QA.Question || next.QA.Answer != prev.QA.Answer {
		m.AnswerOffset = 0
	}

	contentArrived := next.Content.Loaded && (!prev.Content.Loaded || prev.Content.Token != next.Content.Token || prev.Content.Cached != next.Content.Cached)
	if next.Selection != prev.Selection || contentArrived {
		m.ViewerOffset = 0
		if line, ok := m.HighlightLine(next); ok {
			m.ViewerOffset = m.clampViewer(next, line-m.ViewerHeight(next)/3)
		}
	}

	if !next.Selection.Viewing() && m.Focus == FocusViewer {
		m.Focus = FocusBrowser
		if ResultsShown(next) {
			m.Focus = FocusResults
		}
	}
	if m.Focus == FocusDefinitions && next.Definitions.Symbol == "" {
		m.Focus = FocusBrowser
	}
	if m.Focus == FocusResults && !next.Search.Exists() {
		m.Focus = FocusBrowser
	}
	m.clamp(next)
}

func (m *Model) focusable(snap statepkg.Snapshot) []Focus {
	out := []Focus{FocusBrowser}
	if ResultsShown(snap) {
		out = append(out, FocusResults)
	}
	if snap.Definitions.Symbol != "" {
		out = append(out, FocusDefinitions)
	}
	if snap.Selection.Viewing() {
		out = append(out, FocusViewer)
	}
	if snap.Panels.QAPanelOpen && snap.QA.Question != "" {
		out = append(out, FocusAnswer)
	}
	return out
}

func (m *Model) cycleFocus(snap statepkg.Snapshot, reverse bool) {
	order := m.focusable(snap)
	pos := 0
	for i, f := range order {
		if f == m.Focus {
			pos = i
			break
		}
	}
	step := 1
	if reverse {
		step = len(order) - 1
	}
	m.Focus = order[(pos+step)%len(order)]
}

func (m *Model) pageSize(snap statepkg.Snapshot) int {
	l := m.Layout(snap)
	switch m.Focus {
	case FocusDefinitions:
		return l.Definitions.H - 1
	case FocusViewer:
		return l.Main.H - 1
	case FocusResults:
		return l.Main.H - 1
	case FocusAnswer:
		return l.QA.H - 2
	default:
		return l.Browser.H - 1
	}
}

func (m *Model) move(snap statepkg.Snapshot, delta int) {
	switch m.Focus {
	case FocusBrowser:
		m.BrowserIndex = clampIndex(m.BrowserIndex+delta, len(BrowserRows(snap)))
	case FocusResults:
		m.ResultIndex = clampIndex(m.ResultIndex+delta, len(snap.Search.Results))
	case FocusDefinitions:
		m.DefinitionIndex = clampIndex(m.DefinitionIndex+delta, len(snap.Definitions.Results))
	case FocusViewer:
		m.ViewerOffset = m.clampViewer(snap, m.ViewerOffset+delta)
	case FocusAnswer:
		m.AnswerOffset = max(m.AnswerOffset+delta, 0)
	}
}

func (m *Model) activate(snap statepkg.Snapshot) []statepkg.Action {
	switch m.Focus {
	case FocusBrowser:
		rows := BrowserRows(snap)
		if m.BrowserIndex >= len(rows) {
			return nil
		}
		return []statepkg.Action{browserAction(snap, rows[m.BrowserIndex])}
	case FocusResults:
		if m.ResultIndex >= len(snap.Search.Results) {
			return nil
		}
		hit := snap.Search.Results[m.ResultIndex]
		m.Focus = FocusViewer
		return []statepkg.Action{statepkg.SelectFromSearchAction{Path: hit.Path, StartChar: hit.StartChar, EndChar: hit.EndChar}}
	case FocusDefinitions:
		if m.DefinitionIndex >= len(snap.Definitions.Results) {
			return nil
		}
		def := snap.Definitions.Results[m.DefinitionIndex]
		m.Focus = FocusViewer
		return []statepkg.Action{statepkg.SelectFromDefinitionAction{Path: def.Path, Line: def.Line}}
	}
	return nil
}

func browserAction(snap statepkg.Snapshot, row BrowserRow) statepkg.Action {
	switch {
	case row.Parent:
		return statepkg.BrowseUpAction{}
	case row.IsDir:
		return statepkg.BrowseAction{Path: string(snap.Listing.Path.Join(row.Name))}
	default:
		return statepkg.SelectFromBrowserAction{Path: string(snap.Listing.Path.Join(row.Name))}
	}
}

func (m *Model) editPrompt(edit PromptEdit) {
	switch edit {
	case PromptBackspace:
		m.Prompt.Backspace()
	case PromptDelete:
		m.Prompt.Delete()
	case PromptDeleteWord:
		m.Prompt.DeleteWord()
	case PromptLeft:
		m.Prompt.Left()
	case PromptRight:
		m.Prompt.Right()
	case PromptHome:
		m.Prompt.Home()
	case PromptEnd:
		m.Prompt.End()
	}
}

func (m *Model) submitPrompt(snap statepkg.Snapshot) []statepkg.Action {
	kind := m.Prompt.Kind
	text := strings.TrimSpace(m.Prompt.Value())
	m.Prompt.Close()
	if text == "" {
		return nil
	}

	switch kind {
	case PromptSearch:
		m.Focus = FocusResults
		return []statepkg.Action{statepkg.SearchAction{Query: backend.SearchQuery{Text: text, Mode: m.SearchMode}}}
	case PromptSymbol:
		m.Focus = FocusDefinitions
		return []statepkg.Action{statepkg.LookupDefinitionAction{Symbol: text}}
	case PromptQuestion:
		out := []statepkg.Action{statepkg.AskAction{Question: text}}
		if !snap.Panels.QAPanelOpen {
			out = append(out, statepkg.ToggleQAPanelAction{})
		}
		m.Focus = FocusAnswer
		return out
	}
	return nil
}

func (m *Model) retryPanel(snap statepkg.Snapshot) (statepkg.Panel, bool) {
	failed := map[statepkg.Panel]bool{
		statepkg.PanelContent:     snap.Content.Err != nil,
		statepkg.PanelListing:     snap.Listing.Err != nil,
		statepkg.PanelSearch:      snap.Search.Err != nil,
		statepkg.PanelDefinitions: snap.Definitions.Err != nil,
		statepkg.PanelAnswer:      snap.QA.Err != nil,
	}
	focused := map[Focus]statepkg.Panel{
		FocusBrowser:     statepkg.PanelListing,
		FocusResults:     statepkg.PanelSearch,
		FocusDefinitions: statepkg.PanelDefinitions,
		FocusViewer:      statepkg.PanelContent,
		FocusAnswer:      statepkg.PanelAnswer,
	}[m.Focus]
	if failed[focused] {
		return focused, true
	}
	for _, p := range []statepkg.Panel{statepkg.PanelContent, statepkg.PanelListing, statepkg.PanelSearch, statepkg.PanelDefinitions, statepkg.PanelAnswer} {
		if failed[p] {
			return p, true
		}
	}
	return 0, false
}

func (m *Model) click(snap statepkg.Snapshot, x, y int) []statepkg.Action {
	l := m.Layout(snap)
	switch {
	case l.Browser.Contains(x, y):
		rows := BrowserRows(snap)
		listH := l.Browser.H - 1
		row := y - l.Browser.Y - 1
		if row < 0 {
			return nil
		}
		idx := ListWindow(m.BrowserIndex, len(rows), listH) + row
		if idx >= len(rows) {
			return nil
		}
		m.Focus = FocusBrowser
		m.BrowserIndex = idx
		return []statepkg.Action{browserAction(snap, rows[idx])}

	case l.Definitions.Contains(x, y):
		row := y - l.Definitions.Y - 1
		if row < 0 {
			return nil
		}
		idx := ListWindow(m.DefinitionIndex, len(snap.Definitions.Results), l.Definitions.H-1) + row
		if idx >= len(snap.Definitions.Results) {
			return nil
		}
		m.Focus = FocusDefinitions
		m.DefinitionIndex = idx
		return m.activate(snap)

	case l.Main.Contains(x, y) && ResultsShown(snap):
		row := (y - l.Main.Y - 1) / ResultRowHeight
		if y-l.Main.Y-1 < 0 {
			return nil
		}
		visible := max((l.Main.H-1)/ResultRowHeight, 1)
		idx := ListWindow(m.ResultIndex, len(snap.Search.Results), visible) + row
		if idx >= len(snap.Search.Results) {
			return nil
		}
		m.Focus = FocusResults
		m.ResultIndex = idx
		return m.activate(snap)

	case l.Main.Contains(x, y) && snap.Selection.Viewing():
		m.Focus = FocusViewer
	case l.QA.Contains(x, y) && snap.QA.Question != "":
		m.Focus = FocusAnswer
	}
	return nil
}

// ResultRowHeight is the number of rows one search hit occupies.
const ResultRowHeight = 2

func (m *Model) clampViewer(snap statepkg.Snapshot, offset int) int {
	if !snap.Content.Loaded {
		return 0
	}
	lines := m.LineIndex(snap).Lines()
	maxOffset := max(lines-m.ViewerHeight(snap), 0)
	return min(max(offset, 0), maxOffset)
}

func (m *Model) clamp(snap statepkg.Snapshot) {
	m.BrowserIndex = clampIndex(m.BrowserIndex, len(BrowserRows(snap)))
	m.ResultIndex = clampIndex(m.ResultIndex, len(snap.Search.Results))
	m.DefinitionIndex = clampIndex(m.DefinitionIndex, len(snap.Definitions.Results))
	m.ViewerOffset = m.clampViewer(snap, m.ViewerOffset)
}

func clampIndex(idx, total int) int {
	if total <= 0 || idx < 0 {
		return 0
	}
	return min(idx, total-1)
}
