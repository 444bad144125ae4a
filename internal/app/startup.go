package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/codenav/internal/backend"
	errs "github.com/kk-code-lab/codenav/internal/errors"
)

// Startup is what the application learns from the backend before the UI
// comes up.
type Startup struct {
	RepoRoot string
	Listing  *backend.Listing
}

// Bootstrap fetches the repository root and the root listing concurrently.
// A failed /config only costs root stripping and is logged; a failed root
// listing means the backend is unusable and is returned.
func Bootstrap(ctx context.Context, b Backend, timeout time.Duration, log *zap.Logger) (Startup, error) {
	const op = errs.Op("app.Bootstrap")

	if b == nil {
		return Startup{}, errs.E(op, errs.KindTransport, "no backend configured")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		root    string
		listing backend.Listing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := b.Config(gctx)
		if err != nil {
			log.Warn("repository root unavailable, paths keep their prefix", zap.Error(err))
			return nil
		}
		root = cfg.RepoRoot
		return nil
	})
	g.Go(func() error {
		l, err := b.Browse(gctx, "")
		if err != nil {
			return err
		}
		if l.Kind != backend.ListingDirectory {
			return errs.Format(op, "repository root is not a directory")
		}
		listing = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return Startup{}, fmt.Errorf("cannot reach backend: %w", err)
	}

	log.Info("connected",
		zap.String("repo_root", root),
		zap.Int("root_entries", len(listing.Entries)),
	)
	return Startup{RepoRoot: root, Listing: &listing}, nil
}
