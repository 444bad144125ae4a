package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	errs "github.com/kk-code-lab/codenav/internal/errors"
)

func TestBootstrapFetchesRootAndListing(t *testing.T) {
	fb := newFakeBackend()

	startup, err := Bootstrap(context.Background(), fb, time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if startup.RepoRoot != "/repo" {
		t.Fatalf("root = %q", startup.RepoRoot)
	}
	if startup.Listing == nil || len(startup.Listing.Entries) != 2 {
		t.Fatalf("listing = %+v", startup.Listing)
	}
}

func TestBootstrapToleratesMissingConfig(t *testing.T) {
	fb := newFakeBackend()
	fb.configErr = errs.Transport("fake.Config", errors.New("503"))
	core, logs := observer.New(zapcore.WarnLevel)

	startup, err := Bootstrap(context.Background(), fb, time.Second, zap.New(core))
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if startup.RepoRoot != "" {
		t.Fatalf("root = %q, want empty", startup.RepoRoot)
	}
	if logs.FilterMessageSnippet("repository root unavailable").Len() != 1 {
		t.Fatalf("expected a warning, got %v", logs.All())
	}
}

func TestBootstrapFailsWithoutRootListing(t *testing.T) {
	fb := newFakeBackend()
	fb.failures[""] = errs.Transport("fake.Browse", errors.New("connection refused"))

	_, err := Bootstrap(context.Background(), fb, time.Second, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "cannot reach backend") {
		t.Fatalf("err = %v", err)
	}
	if !errs.Is(err, errs.KindTransport) {
		t.Fatalf("kind lost: %v", err)
	}
}

func TestBootstrapRejectsFileAtRoot(t *testing.T) {
	fb := newFakeBackend()
	delete(fb.dirs, "")
	fb.files[""] = "not a directory"

	_, err := Bootstrap(context.Background(), fb, time.Second, zap.NewNop())
	if !errs.Is(err, errs.KindFormat) {
		t.Fatalf("err = %v, want format error", err)
	}
}

func TestBootstrapWithoutBackend(t *testing.T) {
	if _, err := Bootstrap(context.Background(), nil, 0, zap.NewNop()); err == nil {
		t.Fatal("expected an error without a backend")
	}
}
