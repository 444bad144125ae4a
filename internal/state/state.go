package state

import (
	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

// ===== STATE DEFINITIONS =====

// ListingView is the directory shown in the file browser.
type ListingView struct {
	Path    CanonicalPath
	Entries []FileEntry
	Loading bool
	Err     error
}

// ContentView is the fetched text of the selected file. It is keyed by the
// FetchRequest that produced it, never by the selection itself.
type ContentView struct {
	Path    CanonicalPath
	Token   uint64
	Content fsutil.Content
	Loaded  bool
	Cached  bool
	Loading bool
	Err     error
}

// DefinitionLookup is the state of the symbol-definition panel.
type DefinitionLookup struct {
	Symbol  string
	Results []Definition
	Loading bool
	Err     error
}

// QASession is the state of the question panel.
type QASession struct {
	Question    string
	ContextPath CanonicalPath
	Answer      string
	Loading     bool
	Err         error
}

// Snapshot is a read-only copy of everything the views render. Slices are
// copied, so holders may keep it across later mutations.
type Snapshot struct {
	Version      uint64
	RepoRoot     string
	BrowseCursor CanonicalPath
	Listing      ListingView
	Selection    Selection
	Content      ContentView
	Search       SearchSession
	Definitions  DefinitionLookup
	QA           QASession
	Panels       PanelVisibility
}

func (l ListingView) clone() ListingView {
	out := l
	if len(l.Entries) > 0 {
		out.Entries = append([]FileEntry(nil), l.Entries...)
	}
	return out
}

func (d DefinitionLookup) clone() DefinitionLookup {
	out := d
	if len(d.Results) > 0 {
		out.Results = append([]Definition(nil), d.Results...)
	}
	return out
}
