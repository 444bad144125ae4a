package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	errs "github.com/kk-code-lab/codenav/internal/errors"
	fsutil "github.com/kk-code-lab/codenav/internal/fs"
)

const (
	// DefaultTimeout bounds every request. Large files are slow to serve.
	DefaultTimeout = 15 * time.Second

	maxErrorBody = 64 * 1024
	requestIDKey = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the navigator backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	const op = errs.Op("backend.New")

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errs.E(op, errs.KindInvalidPath, fmt.Sprintf("invalid backend url %q", opts.BaseURL))
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:    base,
		http:    httpClient,
		timeout: timeout,
		log:     logger,
	}, nil
}

// Config fetches the repository root.
func (c *Client) Config(ctx context.Context) (Config, error) {
	const op = errs.Op("backend.Config")

	var cfg Config
	if err := c.do(ctx, op, http.MethodGet, "/config", nil, nil, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type browseItem struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}

type browseResponse struct {
	Path    string        `json:"path"`
	Items   *[]browseItem `json:"items"`
	Content *string       `json:"content"`
}

// Browse fetches a directory listing or file content for a canonical path.
// The reply shape decides which one it is.
func (c *Client) Browse(ctx context.Context, path string) (Listing, error) {
	const op = errs.Op("backend.Browse")

	var resp browseResponse
	if err := c.do(ctx, op, http.MethodGet, "/browse/"+escapePath(path), nil, nil, &resp); err != nil {
		return Listing{}, err
	}

	switch {
	case resp.Items != nil:
		entries := make([]fsutil.Entry, 0, len(*resp.Items))
		for _, item := range *resp.Items {
			if item.Name == "" {
				continue
			}
			entries = append(entries, fsutil.NewEntry(item.Name, item.IsDir))
		}
		fsutil.SortEntries(entries)
		return Listing{Path: path, Kind: ListingDirectory, Entries: entries}, nil
	case resp.Content != nil:
		return Listing{Path: path, Kind: ListingFile, Content: *resp.Content}, nil
	default:
		return Listing{}, errs.Format(op, "response has neither items nor content")
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResultJSON struct {
	FilePath       string   `json:"file_path"`
	Path           string   `json:"path"`
	Snippet        string   `json:"snippet"`
	Content        string   `json:"content"`
	StartChar      int      `json:"start_char"`
	EndChar        int      `json:"end_char"`
	Score          *float64 `json:"score"`
	RelevanceScore *float64 `json:"relevance_score"`
	Distance       *float64 `json:"distance"`
	ExactMatch     bool     `json:"exact_match"`
}

// Search runs a filename, content or semantic search. Result order is the
// backend ranking.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	const op = errs.Op("backend.Search")

	q = q.Normalized()
	if q.Text == "" {
		return nil, errs.InvalidPath(op, "empty search query")
	}

	var raw []searchResultJSON
	var err error
	if q.Mode == SearchSemantic {
		err = c.do(ctx, op, http.MethodPost, "/search", nil, searchRequest{Query: q.Text}, &raw)
	} else {
		params := url.Values{}
		params.Set("q", q.Text)
		params.Set("code", strconv.FormatBool(q.Mode == SearchContent))
		params.Set("exact", strconv.FormatBool(q.Exact))
		if q.ExtensionFilter != "" {
			params.Set("ext", q.ExtensionFilter)
		}
		if q.DirectoryFilter != "" {
			params.Set("dir", q.DirectoryFilter)
		}
		err = c.do(ctx, op, http.MethodGet, "/search", params, nil, &raw)
	}
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(raw))
	for i, r := range raw {
		path := r.FilePath
		if path == "" {
			path = r.Path
		}
		if path == "" {
			c.log.Warn("dropping search result without path", zap.Int("index", i))
			continue
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = r.Content
		}
		results = append(results, SearchResult{
			Path:       path,
			Snippet:    snippet,
			StartChar:  r.StartChar,
			EndChar:    r.EndChar,
			Relevance:  relevance(r),
			ExactMatch: r.ExactMatch,
		})
	}
	return results, nil
}

func relevance(r searchResultJSON) float64 {
	switch {
	case r.RelevanceScore != nil:
		return *r.RelevanceScore
	case r.Score != nil:
		return *r.Score
	case r.Distance != nil:
		return 1 - *r.Distance
	default:
		return 0
	}
}

type definitionJSON struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
}

type definitionsResponse struct {
	Definitions *[]definitionJSON `json:"definitions"`
}

// Definitions looks up every definition site of symbol.
func (c *Client) Definitions(ctx context.Context, symbol string) ([]Definition, error) {
	const op = errs.Op("backend.Definitions")

	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, errs.InvalidPath(op, "empty symbol")
	}

	var resp definitionsResponse
	if err := c.do(ctx, op, http.MethodGet, "/index/definition/"+url.PathEscape(symbol), nil, nil, &resp); err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil, errs.NotFound(op, fmt.Sprintf("No definitions found for symbol %q", symbol))
		}
		return nil, err
	}
	if resp.Definitions == nil {
		return nil, errs.Format(op, "response has no definitions field")
	}

	defs := make([]Definition, 0, len(*resp.Definitions))
	for _, d := range *resp.Definitions {
		if d.Path == "" {
			continue
		}
		defs = append(defs, Definition(d))
	}
	return defs, nil
}

type queryRequest struct {
	Question        string  `json:"question"`
	ContextFilePath *string `json:"context_file_path"`
}

type queryResponse struct {
	Answer *string `json:"answer"`
}

// Ask sends a natural-language question.
func (c *Client) Ask(ctx context.Context, q Question) (Answer, error) {
	const op = errs.Op("backend.Ask")

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return Answer{}, errs.InvalidPath(op, "empty question")
	}
	body := queryRequest{Question: text}
	if q.ContextFilePath != "" {
		ctxPath := q.ContextFilePath
		body.ContextFilePath = &ctxPath
	}

	var resp queryResponse
	if err := c.do(ctx, op, http.MethodPost, "/query", nil, body, &resp); err != nil {
		return Answer{}, err
	}
	if resp.Answer == nil {
		return Answer{}, errs.Format(op, "response has no answer field")
	}
	return Answer{Text: *resp.Answer}, nil
}

type errorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op errs.Op, method, path string, params url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.base.String() + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errs.E(op, errs.KindFormat, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errs.Transport(op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDKey, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return errs.Transport(op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.log.Debug("request complete",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.E(op, errs.KindFormat, "invalid response body", err)
	}
	return nil
}

func statusError(op errs.Op, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := ""
	var parsed errorResponse
	if json.Unmarshal(data, &parsed) == nil {
		message = parsed.Detail
		if message == "" {
			message = parsed.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(data))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNotFound {
		return errs.NotFound(op, message)
	}
	return errs.Transport(op, fmt.Errorf("HTTP %d: %s", resp.StatusCode, message))
}

func escapePath(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
