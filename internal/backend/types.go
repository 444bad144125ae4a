// Package backend is the HTTP client for the code navigator service. Paths
// in its results are passed through unmodified; callers normalize them.
package backend

import (
	"strings"

	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

// Config is the server-side configuration reported once at startup.
type Config struct {
	RepoRoot string `json:"repo_path"`
}

// ListingKind discriminates the two shapes served by the browse endpoint.
type ListingKind int

const (
	ListingDirectory ListingKind = iota + 1
	ListingFile
)

// Listing is a browse reply: either directory entries or file content.
type Listing struct {
	Path    string
	Kind    ListingKind
	Entries []fsutil.Entry
	Content string
}

// SearchMode selects the search backend.
type SearchMode int

const (
	SearchFilename SearchMode = iota
	SearchContent
	SearchSemantic
)

func (m SearchMode) String() string {
	switch m {
	case SearchContent:
		return "content"
	case SearchSemantic:
		return "semantic"
	default:
		return "filename"
	}
}

// SearchQuery describes one search request.
type SearchQuery struct {
	Text            string
	Mode            SearchMode
	Exact           bool
	ExtensionFilter string
	DirectoryFilter string
}

// Normalized trims the query and forces exact matching for quoted phrases.
func (q SearchQuery) Normalized() SearchQuery {
	q.Text = strings.TrimSpace(q.Text)
	q.ExtensionFilter = strings.TrimSpace(q.ExtensionFilter)
	q.DirectoryFilter = strings.Trim(strings.TrimSpace(q.DirectoryFilter), "/")
	if isQuoted(q.Text) {
		q.Exact = true
	}
	return q
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}

// SearchResult is one ranked hit. StartChar and EndChar are character
// offsets into the file content.
type SearchResult struct {
	Path       string
	Snippet    string
	StartChar  int
	EndChar    int
	Relevance  float64
	ExactMatch bool
}

// Definition is one symbol definition site. Line is 1-based.
type Definition struct {
	Path      string
	Line      int
	Kind      string
	Signature string
}

// Question asks the answer service about the code, optionally anchored to
// one file.
type Question struct {
	Text            string
	ContextFilePath string
}

// Answer is the generated reply.
type Answer struct {
	Text string
}
