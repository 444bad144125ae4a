package state

// Origin records which producer created a Selection.
type Origin int

const (
	OriginNone Origin = iota
	OriginBrowser
	OriginSearch
	OriginDefinition
)

func (o Origin) String() string {
	switch o {
	case OriginBrowser:
		return "browser"
	case OriginSearch:
		return "search"
	case OriginDefinition:
		return "definition"
	default:
		return "none"
	}
}

// HighlightUnit tells a renderer how to read Highlight. Search results carry
// character offsets, definitions carry a line number in both fields.
type HighlightUnit int

const (
	UnitNone HighlightUnit = iota
	UnitCharOffset
	UnitLine
)

// Highlight is an inclusive-start range whose unit depends on the origin.
type Highlight struct {
	Start int
	End   int
}

// Selection is the file currently displayed.
type Selection struct {
	Path      CanonicalPath
	Highlight Highlight
	Origin    Origin
}

// Viewing reports whether a file is selected.
func (s Selection) Viewing() bool {
	return s.Origin != OriginNone
}

// HighlightUnit returns the unit convention in effect for s.Highlight.
func (s Selection) HighlightUnit() HighlightUnit {
	switch s.Origin {
	case OriginSearch:
		return UnitCharOffset
	case OriginDefinition:
		return UnitLine
	default:
		return UnitNone
	}
}

// SearchSession holds the last search and whether its result list is shown
// in the main area.
type SearchSession struct {
	Query   SearchQuery
	Results []SearchResult
	Visible bool
	Loading bool
	Err     error
}

// Exists reports whether a search has been started in this session.
func (s SearchSession) Exists() bool {
	return s.Query.Text != ""
}

func (s SearchSession) clone() SearchSession {
	out := s
	if len(s.Results) > 0 {
		out.Results = append([]SearchResult(nil), s.Results...)
	}
	return out
}

// SelectionMachine owns the foreground navigation state: the browse cursor,
// the selection and the search session. It never holds fetched content.
type SelectionMachine struct {
	selection Selection
	cursor    CanonicalPath
	search    SearchSession
}

// Selection returns the current selection.
func (m *SelectionMachine) Selection() Selection {
	return m.selection
}

// BrowseCursor returns the listed directory.
func (m *SelectionMachine) BrowseCursor() CanonicalPath {
	return m.cursor
}

// Search returns a copy of the search session.
func (m *SelectionMachine) Search() SearchSession {
	return m.search.clone()
}

// Browse moves the directory cursor. An open file is closed; the search
// session survives.
func (m *SelectionMachine) Browse(dir CanonicalPath) {
	m.cursor = dir
	m.selection = Selection{}
}

// SelectFromBrowser opens path with no highlight.
func (m *SelectionMachine) SelectFromBrowser(path CanonicalPath) Selection {
	m.search = SearchSession{}
	m.selection = Selection{Path: path, Origin: OriginBrowser}
	return m.selection
}

// SelectFromSearch opens path highlighting the character range of a hit.
// The search session stays visible underneath the viewer.
func (m *SelectionMachine) SelectFromSearch(path CanonicalPath, startOffset, endOffset int) Selection {
	startOffset = max(startOffset, 0)
	endOffset = max(endOffset, 0)
	if endOffset < startOffset {
		startOffset, endOffset = endOffset, startOffset
	}
	m.selection = Selection{
		Path:      path,
		Highlight: Highlight{Start: startOffset, End: endOffset},
		Origin:    OriginSearch,
	}
	return m.selection
}

// SelectFromDefinition opens path highlighting a single line.
func (m *SelectionMachine) SelectFromDefinition(path CanonicalPath, line int) Selection {
	line = max(line, 0)
	m.search = SearchSession{}
	m.selection = Selection{
		Path:      path,
		Highlight: Highlight{Start: line, End: line},
		Origin:    OriginDefinition,
	}
	return m.selection
}

// Dismiss closes the open file. Dismissing a search hit returns to the
// result list; any other dismissal drops the search session.
func (m *SelectionMachine) Dismiss() {
	fromSearch := m.selection.Origin == OriginSearch && m.search.Exists()
	m.selection = Selection{}
	if fromSearch {
		m.search.Visible = true
		return
	}
	m.search = SearchSession{}
}

// BeginSearch starts a new search session for query.
func (m *SelectionMachine) BeginSearch(query SearchQuery) {
	m.search = SearchSession{Query: query, Visible: true, Loading: true}
}

// CommitSearch stores the outcome of the outstanding search.
func (m *SelectionMachine) CommitSearch(results []SearchResult, err error) {
	m.search.Loading = false
	m.search.Err = err
	if err != nil {
		m.search.Results = nil
		return
	}
	m.search.Results = results
}

// CloseSearch hides and drops the search session.
func (m *SelectionMachine) CloseSearch() {
	m.search = SearchSession{}
}
