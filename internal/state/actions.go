package state

import (
	"github.com/kk-code-lab/codenav/internal/backend"
	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== BROWSER ACTIONS =====

type BrowseAction struct {
	Path string
}
type BrowseUpAction struct{}
type BrowseRootAction struct{}
type SelectFromBrowserAction struct {
	Path string
}

// ===== SEARCH ACTIONS =====

type SearchAction struct {
	Query SearchQuery
}
type SelectFromSearchAction struct {
	Path      string
	StartChar int
	EndChar   int
}
type CloseSearchAction struct{}

// ===== DEFINITION ACTIONS =====

type LookupDefinitionAction struct {
	Symbol string
}
type SelectFromDefinitionAction struct {
	Path string
	Line int
}

// ===== QUESTION ACTIONS =====

type AskAction struct {
	Question string
}

// ===== VIEW ACTIONS =====

type DismissAction struct{}
type ToggleSearchPanelAction struct{}
type ToggleQAPanelAction struct{}

// Panel names a result area for retries.
type Panel int

const (
	PanelContent Panel = iota
	PanelListing
	PanelSearch
	PanelDefinitions
	PanelAnswer
)

func (p Panel) String() string {
	switch p {
	case PanelContent:
		return "content"
	case PanelListing:
		return "listing"
	case PanelSearch:
		return "search"
	case PanelDefinitions:
		return "definitions"
	case PanelAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// RetryAction re-issues the last request of a panel.
type RetryAction struct {
	Panel Panel
}

// ===== LOAD RESULTS =====

type DirectoryLoadResultAction struct {
	Request FetchRequest[CanonicalPath]
	Entries []fsutil.Entry
	Err     error
}

type ContentLoadResultAction struct {
	Request FetchRequest[CanonicalPath]
	Content fsutil.Content
	Err     error
}

type SearchResultAction struct {
	Request FetchRequest[string]
	Results []SearchResult
	Err     error
}

type DefinitionResultAction struct {
	Request FetchRequest[string]
	Results []Definition
	Err     error
}

type AnswerResultAction struct {
	Request FetchRequest[string]
	Answer  backend.Answer
	Err     error
}
