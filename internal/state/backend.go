package state

import (
	"context"

	"github.com/kk-code-lab/codenav/internal/backend"
	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry
type SearchQuery = backend.SearchQuery
type SearchResult = backend.SearchResult
type Definition = backend.Definition
type Listing = backend.Listing

const (
	SearchFilename = backend.SearchFilename
	SearchContent  = backend.SearchContent
	SearchSemantic = backend.SearchSemantic
)

// Backend is the set of remote services the coordinator consumes.
type Backend interface {
	Browse(ctx context.Context, path string) (backend.Listing, error)
	Search(ctx context.Context, q backend.SearchQuery) ([]backend.SearchResult, error)
	Definitions(ctx context.Context, symbol string) ([]backend.Definition, error)
	Ask(ctx context.Context, q backend.Question) (backend.Answer, error)
}
