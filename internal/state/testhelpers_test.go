package state

import (
	"context"
	"fmt"
	"testing"

	"github.com/kk-code-lab/codenav/internal/backend"
	errs "github.com/kk-code-lab/codenav/internal/errors"
	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

// fakeBackend serves canned responses. Jobs run on the test goroutine via
// manualRunner, so no locking is needed.
type fakeBackend struct {
	files       map[string]string
	dirs        map[string][]fsutil.Entry
	failures    map[string]error
	searches    map[string][]SearchResult
	definitions map[string][]Definition
	answers     map[string]string

	browsed []string
	asked   []backend.Question
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		files:       map[string]string{},
		dirs:        map[string][]fsutil.Entry{},
		failures:    map[string]error{},
		searches:    map[string][]SearchResult{},
		definitions: map[string][]Definition{},
		answers:     map[string]string{},
	}
}

func (b *fakeBackend) Browse(_ context.Context, path string) (backend.Listing, error) {
	b.browsed = append(b.browsed, path)
	if err, ok := b.failures[path]; ok {
		return backend.Listing{}, err
	}
	if text, ok := b.files[path]; ok {
		return backend.Listing{Path: path, Kind: backend.ListingFile, Content: text}, nil
	}
	if entries, ok := b.dirs[path]; ok {
		return backend.Listing{Path: path, Kind: backend.ListingDirectory, Entries: entries}, nil
	}
	return backend.Listing{}, errs.NotFound(errs.Op("fake.Browse"), fmt.Sprintf("%s not found", path))
}

func (b *fakeBackend) Search(_ context.Context, q backend.SearchQuery) ([]backend.SearchResult, error) {
	if err, ok := b.failures["search:"+q.Text]; ok {
		return nil, err
	}
	return b.searches[q.Text], nil
}

func (b *fakeBackend) Definitions(_ context.Context, symbol string) ([]backend.Definition, error) {
	defs, ok := b.definitions[symbol]
	if !ok {
		return nil, errs.NotFound(errs.Op("fake.Definitions"), fmt.Sprintf("No definitions found for symbol %q", symbol))
	}
	return defs, nil
}

func (b *fakeBackend) Ask(_ context.Context, q backend.Question) (backend.Answer, error) {
	b.asked = append(b.asked, q)
	if err, ok := b.failures["ask:"+q.Text]; ok {
		return backend.Answer{}, err
	}
	return backend.Answer{Text: b.answers[q.Text]}, nil
}

// manualRunner queues jobs until the test runs them.
type manualRunner struct {
	jobs []func(ctx context.Context)
}

func (r *manualRunner) Go(job func(ctx context.Context)) {
	r.jobs = append(r.jobs, job)
}

type harness struct {
	t       *testing.T
	coord   *Coordinator
	backend *fakeBackend
	runner  *manualRunner
	results []Action
}

func newHarness(t *testing.T, repoRoot string) *harness {
	t.Helper()
	h := &harness{t: t, backend: newFakeBackend(), runner: &manualRunner{}}
	h.coord = NewCoordinator(Options{
		Backend:  h.backend,
		Runner:   h.runner,
		Dispatch: func(a Action) { h.results = append(h.results, a) },
		RepoRoot: repoRoot,
	})
	return h
}

func (h *harness) dispatch(action Action) {
	h.t.Helper()
	if err := h.coord.Dispatch(action); err != nil {
		h.t.Fatalf("Dispatch(%T) failed: %v", action, err)
	}
}

// runJobs executes queued backend calls. Their result actions are collected
// but not yet applied.
func (h *harness) runJobs() {
	jobs := h.runner.jobs
	h.runner.jobs = nil
	for _, job := range jobs {
		job(context.Background())
	}
}

// deliver applies collected results in the given order.
func (h *harness) deliver(order ...int) {
	h.t.Helper()
	pending := h.results
	h.results = nil
	if len(order) != len(pending) {
		h.t.Fatalf("deliver order %v for %d results", order, len(pending))
	}
	for _, idx := range order {
		h.dispatch(pending[idx])
	}
}

// settle runs jobs and applies results until nothing is outstanding.
func (h *harness) settle() {
	h.t.Helper()
	for len(h.runner.jobs) > 0 || len(h.results) > 0 {
		h.runJobs()
		pending := h.results
		h.results = nil
		for _, a := range pending {
			h.dispatch(a)
		}
	}
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, rest := range permutations(n - 1) {
		for pos := 0; pos <= len(rest); pos++ {
			perm := make([]int, 0, n)
			perm = append(perm, rest[:pos]...)
			perm = append(perm, n-1)
			perm = append(perm, rest[pos:]...)
			out = append(out, perm)
		}
	}
	return out
}
