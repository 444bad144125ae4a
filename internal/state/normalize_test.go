package state

import (
	"testing"

	errs "github.com/kk-code-lab/codenav/internal/errors"
)

func TestNormalizePathProducersAgree(t *testing.T) {
	const root = "/repo"
	inputs := []string{
		"/repo/src/config.js",
		"src/config.js",
		"/src/config.js",
		"  /repo/src/config.js\t",
		"//src/config.js",
	}
	for _, raw := range inputs {
		got, err := NormalizePath(raw, root)
		if err != nil {
			t.Fatalf("NormalizePath(%q) error: %v", raw, err)
		}
		if got != "src/config.js" {
			t.Fatalf("NormalizePath(%q) = %q, want src/config.js", raw, got)
		}
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	const root = "/repo"
	for _, raw := range []string{"/repo/a/b.go", "a/b.go", "/a/./b.go", "/repo/A/../B.go "} {
		once, err := NormalizePath(raw, root)
		if err != nil {
			t.Fatalf("first pass %q: %v", raw, err)
		}
		twice, err := NormalizePath(string(once), root)
		if err != nil {
			t.Fatalf("second pass %q: %v", once, err)
		}
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestNormalizePathKeepsSegmentsUntouched(t *testing.T) {
	got, err := NormalizePath("/repo/Src/./lib/../Main.go/", "/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Src/./lib/../Main.go/" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizePathStripsRootOnce(t *testing.T) {
	got, err := NormalizePath("/repo/repo/x.go", "/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "repo/x.go" {
		t.Fatalf("got %q, want repo/x.go", got)
	}
}

func TestNormalizePathRootMatchesWholeSegment(t *testing.T) {
	got, err := NormalizePath("/repository/x.go", "/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "repository/x.go" {
		t.Fatalf("got %q, want repository/x.go", got)
	}

	got, err = NormalizePath("/srv/repo/x.go", "/srv/repo/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x.go" {
		t.Fatalf("trailing slash root: got %q", got)
	}
}

func TestNormalizePathWithoutRoot(t *testing.T) {
	got, err := NormalizePath("/repo/x.go", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "repo/x.go" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizePathRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := NormalizePath(raw, "/repo")
		if !errs.Is(err, errs.KindInvalidPath) {
			t.Fatalf("NormalizePath(%q) error = %v, want invalid path", raw, err)
		}
	}
}

func TestNormalizeDirectory(t *testing.T) {
	cases := map[string]CanonicalPath{
		"":           "",
		"  ":         "",
		"/repo":      "",
		"/repo/":     "",
		"/repo/src":  "src",
		"src/pkg":    "src/pkg",
		"/other/dir": "other/dir",
	}
	for raw, want := range cases {
		if got := NormalizeDirectory(raw, "/repo"); got != want {
			t.Fatalf("NormalizeDirectory(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCanonicalPathHelpers(t *testing.T) {
	p := CanonicalPath("src/lib/util.go")
	if p.Base() != "util.go" {
		t.Fatalf("Base = %q", p.Base())
	}
	if p.Dir() != "src/lib" {
		t.Fatalf("Dir = %q", p.Dir())
	}
	if CanonicalPath("main.go").Dir() != "" {
		t.Fatalf("top-level Dir should be root")
	}
	if got := CanonicalPath("").Join("src"); got != "src" {
		t.Fatalf("root Join = %q", got)
	}
	if got := CanonicalPath("src/").Join("/a.go"); got != "src/a.go" {
		t.Fatalf("Join = %q", got)
	}
}
