package state

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kk-code-lab/codenav/internal/backend"
	errs "github.com/kk-code-lab/codenav/internal/errors"
	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

const (
	// DefaultContentCacheTTL is how long fetched file text is reused as an
	// instant placeholder while a fresh fetch runs.
	DefaultContentCacheTTL = 5 * time.Minute
	contentCachePurge      = 10 * time.Minute
)

// Options configures a Coordinator.
type Options struct {
	Backend  Backend
	Runner   Runner
	Dispatch func(Action)
	Logger   *zap.Logger
	RepoRoot string
	// InitialListing seeds the browser with an already fetched root listing.
	InitialListing *Listing
	// ContentCacheTTL <= 0 selects DefaultContentCacheTTL; use
	// DisableContentCache to turn caching off.
	ContentCacheTTL     time.Duration
	DisableContentCache bool
}

// Coordinator is the only writer of navigation state. Producers hand it
// actions; it normalizes paths, drives the selection machine, guards every
// asynchronous load with a token and publishes snapshots to subscribers.
// All methods must be called from one goroutine.
type Coordinator struct {
	backend  Backend
	runner   Runner
	dispatch func(Action)
	log      *zap.Logger
	cache    *cache.Cache

	repoRoot    string
	machine     SelectionMachine
	panels      PanelVisibility
	listing     ListingView
	content     ContentView
	definitions DefinitionLookup
	qa          QASession
	version     uint64

	contentGuard    FetchGuard[CanonicalPath]
	listingGuard    FetchGuard[CanonicalPath]
	searchGuard     FetchGuard[string]
	definitionGuard FetchGuard[string]
	answerGuard     FetchGuard[string]

	subscribers  []subscriber
	nextSubToken int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// NewCoordinator builds a coordinator with an empty selection.
func NewCoordinator(opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	runner := opts.Runner
	if runner == nil {
		runner = NewAsyncRunner(context.Background())
	}

	c := &Coordinator{
		backend:  opts.Backend,
		runner:   runner,
		dispatch: opts.Dispatch,
		log:      logger,
		repoRoot: strings.TrimSpace(opts.RepoRoot),
	}
	if !opts.DisableContentCache {
		ttl := opts.ContentCacheTTL
		if ttl <= 0 {
			ttl = DefaultContentCacheTTL
		}
		c.cache = cache.New(ttl, contentCachePurge)
	}
	if opts.InitialListing != nil {
		c.listing = ListingView{
			Path:    NormalizeDirectory(opts.InitialListing.Path, c.repoRoot),
			Entries: append([]FileEntry(nil), opts.InitialListing.Entries...),
		}
	}
	return c
}

// SetDispatch installs the hook loaders use to report results.
func (c *Coordinator) SetDispatch(fn func(Action)) {
	c.dispatch = fn
}

// RepoRoot returns the repository root used for normalization.
func (c *Coordinator) RepoRoot() string {
	return c.repoRoot
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Coordinator) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	c.nextSubToken++
	id := c.nextSubToken
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		Version:      c.version,
		RepoRoot:     c.repoRoot,
		BrowseCursor: c.machine.BrowseCursor(),
		Listing:      c.listing.clone(),
		Selection:    c.machine.Selection(),
		Content:      c.content,
		Search:       c.machine.Search(),
		Definitions:  c.definitions.clone(),
		QA:           c.qa,
		Panels:       c.panels,
	}
}

// Dispatch applies one action. Invalid input is rejected with an error and
// leaves state untouched; stale load results are dropped silently.
func (c *Coordinator) Dispatch(action Action) error {
	changed, err := c.reduce(action)
	if err != nil {
		c.log.Debug("action rejected", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
		return err
	}
	if !changed {
		return nil
	}
	c.version++
	if len(c.subscribers) > 0 {
		snap := c.Snapshot()
		for _, s := range append([]subscriber(nil), c.subscribers...) {
			s.fn(snap)
		}
	}
	return nil
}

func (c *Coordinator) reduce(action Action) (bool, error) {
	switch a := action.(type) {

	// ===== BROWSER =====

	case BrowseAction:
		if strings.TrimSpace(a.Path) == "" {
			return false, errs.InvalidPath(errs.Op("state.Browse"), "empty directory path")
		}
		c.browseTo(NormalizeDirectory(a.Path, c.repoRoot))
		return true, nil

	case BrowseUpAction:
		c.browseTo(c.machine.BrowseCursor().Dir())
		return true, nil

	case BrowseRootAction:
		c.browseTo("")
		return true, nil

	case SelectFromBrowserAction:
		path, err := c.normalizeFile(errs.Op("state.SelectFromBrowser"), a.Path)
		if err != nil {
			return false, err
		}
		c.machine.SelectFromBrowser(path)
		c.loadContent(path)
		return true, nil

	// ===== SEARCH =====

	case SearchAction:
		query := a.Query.Normalized()
		if query.Text == "" {
			return false, errs.InvalidPath(errs.Op("state.Search"), "empty search query")
		}
		c.runSearch(query)
		return true, nil

	case SelectFromSearchAction:
		path, err := c.normalizeFile(errs.Op("state.SelectFromSearch"), a.Path)
		if err != nil {
			return false, err
		}
		c.machine.SelectFromSearch(path, a.StartChar, a.EndChar)
		c.loadContent(path)
		return true, nil

	case CloseSearchAction:
		c.machine.CloseSearch()
		c.searchGuard.Invalidate()
		return true, nil

	// ===== DEFINITIONS =====

	case LookupDefinitionAction:
		symbol := strings.TrimSpace(a.Symbol)
		if symbol == "" {
			return false, errs.InvalidPath(errs.Op("state.LookupDefinition"), "empty symbol")
		}
		c.lookupDefinition(symbol)
		return true, nil

	case SelectFromDefinitionAction:
		path, err := c.normalizeFile(errs.Op("state.SelectFromDefinition"), a.Path)
		if err != nil {
			return false, err
		}
		c.machine.SelectFromDefinition(path, a.Line)
		c.loadContent(path)
		return true, nil

	// ===== QUESTIONS =====

	case AskAction:
		question := strings.TrimSpace(a.Question)
		if question == "" {
			return false, errs.InvalidPath(errs.Op("state.Ask"), "empty question")
		}
		var contextPath CanonicalPath
		if sel := c.machine.Selection(); sel.Viewing() {
			contextPath = sel.Path
		}
		c.ask(question, contextPath)
		return true, nil

	// ===== VIEW =====

	case DismissAction:
		if !c.machine.Selection().Viewing() && !c.machine.Search().Exists() {
			return false, nil
		}
		c.machine.Dismiss()
		c.contentGuard.Invalidate()
		c.content = ContentView{}
		return true, nil

	case ToggleSearchPanelAction:
		c.panels.ToggleSearchPanel()
		return true, nil

	case ToggleQAPanelAction:
		c.panels.ToggleQAPanel()
		return true, nil

	case RetryAction:
		return c.retry(a.Panel), nil

	// ===== LOAD RESULTS =====

	case DirectoryLoadResultAction:
		return c.commitListing(a), nil

	case ContentLoadResultAction:
		return c.commitContent(a), nil

	case SearchResultAction:
		if !c.searchGuard.Accepts(a.Request) {
			c.dropStale("search", a.Request.Token, a.Err)
			return false, nil
		}
		c.machine.CommitSearch(a.Results, a.Err)
		return true, nil

	case DefinitionResultAction:
		if !c.definitionGuard.Accepts(a.Request) {
			c.dropStale("definitions", a.Request.Token, a.Err)
			return false, nil
		}
		c.definitions.Loading = false
		c.definitions.Err = a.Err
		c.definitions.Results = nil
		if a.Err == nil {
			c.definitions.Results = a.Results
		}
		return true, nil

	case AnswerResultAction:
		if !c.answerGuard.Accepts(a.Request) {
			c.dropStale("answer", a.Request.Token, a.Err)
			return false, nil
		}
		c.qa.Loading = false
		c.qa.Err = a.Err
		c.qa.Answer = ""
		if a.Err == nil {
			c.qa.Answer = a.Answer.Text
		}
		return true, nil
	}

	return false, nil
}

func (c *Coordinator) normalizeFile(op errs.Op, raw string) (CanonicalPath, error) {
	path, err := NormalizePath(raw, c.repoRoot)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errs.InvalidPath(op, fmt.Sprintf("%q names the repository root, not a file", strings.TrimSpace(raw)))
	}
	return path, nil
}

func (c *Coordinator) browseTo(dir CanonicalPath) {
	c.machine.Browse(dir)
	c.contentGuard.Invalidate()
	c.content = ContentView{}
	c.loadListing(dir)
}

func (c *Coordinator) loadListing(dir CanonicalPath) {
	req := c.listingGuard.Issue(dir)
	c.listing = ListingView{Path: dir, Loading: true}

	c.start("listing", func(ctx context.Context, be Backend) Action {
		listing, err := be.Browse(ctx, string(req.Identifier))
		result := DirectoryLoadResultAction{Request: req}
		switch {
		case err != nil:
			result.Err = err
		case listing.Kind != backend.ListingDirectory:
			result.Err = errs.Format(errs.Op("state.loadListing"), fmt.Sprintf("%s is not a directory", displayPath(req.Identifier)))
		default:
			result.Entries = listing.Entries
		}
		return result
	})
}

func (c *Coordinator) commitListing(a DirectoryLoadResultAction) bool {
	if !c.listingGuard.Accepts(a.Request) {
		c.dropStale("listing", a.Request.Token, a.Err)
		return false
	}
	c.listing.Loading = false
	c.listing.Err = a.Err
	c.listing.Entries = nil
	if a.Err == nil {
		c.listing.Entries = a.Entries
	}
	return true
}

// loadContent issues a content token for path. A cached copy is shown at
// once and replaced when the fresh fetch commits.
func (c *Coordinator) loadContent(path CanonicalPath) {
	req := c.contentGuard.Issue(path)
	c.content = ContentView{Path: path, Token: req.Token, Loading: true}
	if c.cache != nil {
		if cached, ok := c.cache.Get(string(path)); ok {
			c.content.Content = cached.(fsutil.Content)
			c.content.Loaded = true
			c.content.Cached = true
		}
	}

	c.start("content", func(ctx context.Context, be Backend) Action {
		listing, err := be.Browse(ctx, string(req.Identifier))
		result := ContentLoadResultAction{Request: req}
		switch {
		case err != nil:
			result.Err = err
		case listing.Kind != backend.ListingFile:
			result.Err = errs.Format(errs.Op("state.loadContent"), fmt.Sprintf("%s is a directory", req.Identifier))
		default:
			result.Content = fsutil.PrepareContent(string(req.Identifier), listing.Content)
		}
		return result
	})
}

func (c *Coordinator) commitContent(a ContentLoadResultAction) bool {
	if !c.contentGuard.Accepts(a.Request) {
		c.dropStale("content", a.Request.Token, a.Err)
		return false
	}
	c.content.Loading = false
	c.content.Cached = false
	if a.Err != nil {
		c.content.Err = a.Err
		c.content.Loaded = false
		c.content.Content = fsutil.Content{}
		return true
	}
	c.content.Err = nil
	c.content.Loaded = true
	c.content.Content = a.Content
	if c.cache != nil {
		c.cache.Set(string(a.Request.Identifier), a.Content, cache.DefaultExpiration)
	}
	return true
}

func (c *Coordinator) runSearch(query SearchQuery) {
	c.machine.BeginSearch(query)
	req := c.searchGuard.Issue(searchKey(query))

	c.start("search", func(ctx context.Context, be Backend) Action {
		results, err := be.Search(ctx, query)
		return SearchResultAction{Request: req, Results: results, Err: err}
	})
}

func (c *Coordinator) lookupDefinition(symbol string) {
	c.definitions = DefinitionLookup{Symbol: symbol, Loading: true}
	req := c.definitionGuard.Issue(symbol)

	c.start("definitions", func(ctx context.Context, be Backend) Action {
		defs, err := be.Definitions(ctx, symbol)
		return DefinitionResultAction{Request: req, Results: defs, Err: err}
	})
}

func (c *Coordinator) ask(question string, contextPath CanonicalPath) {
	c.qa = QASession{Question: question, ContextPath: contextPath, Loading: true}
	req := c.answerGuard.Issue(question)

	c.start("answer", func(ctx context.Context, be Backend) Action {
		answer, err := be.Ask(ctx, backend.Question{Text: question, ContextFilePath: string(contextPath)})
		return AnswerResultAction{Request: req, Answer: answer, Err: err}
	})
}

func (c *Coordinator) retry(panel Panel) bool {
	switch panel {
	case PanelContent:
		sel := c.machine.Selection()
		if !sel.Viewing() {
			return false
		}
		c.loadContent(sel.Path)
	case PanelListing:
		c.loadListing(c.machine.BrowseCursor())
	case PanelSearch:
		search := c.machine.Search()
		if !search.Exists() {
			return false
		}
		c.runSearch(search.Query)
	case PanelDefinitions:
		if c.definitions.Symbol == "" {
			return false
		}
		c.lookupDefinition(c.definitions.Symbol)
	case PanelAnswer:
		if c.qa.Question == "" {
			return false
		}
		c.ask(c.qa.Question, c.qa.ContextPath)
	default:
		return false
	}
	return true
}

// start runs job on the runner and dispatches its result action.
func (c *Coordinator) start(kind string, job func(ctx context.Context, be Backend) Action) {
	be, dispatch := c.backend, c.dispatch
	if be == nil || dispatch == nil {
		c.log.Warn("load not started: coordinator has no backend or dispatch", zap.String("kind", kind))
		return
	}
	c.runner.Go(func(ctx context.Context) {
		dispatch(job(ctx, be))
	})
}

func (c *Coordinator) dropStale(kind string, token uint64, err error) {
	fields := []zap.Field{zap.String("kind", kind), zap.Uint64("token", token)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	c.log.Debug("dropping superseded result", fields...)
}

func searchKey(q SearchQuery) string {
	return strings.Join([]string{
		q.Mode.String(),
		strconv.FormatBool(q.Exact),
		q.ExtensionFilter,
		q.DirectoryFilter,
		q.Text,
	}, "\x00")
}

func displayPath(p CanonicalPath) string {
	if p == "" {
		return "/"
	}
	return string(p)
}
