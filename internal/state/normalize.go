package state

import (
	"strings"

	errs "github.com/kk-code-lab/codenav/internal/errors"
)

// CanonicalPath is a repository-relative, slash separated file identifier
// with no leading slash. It is the only key used to address files.
type CanonicalPath string

// String returns the path text.
func (p CanonicalPath) String() string {
	return string(p)
}

// Base returns the last path segment.
func (p CanonicalPath) Base() string {
	s := string(p)
	if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Dir returns the parent directory of p ("" for top-level entries).
func (p CanonicalPath) Dir() CanonicalPath {
	s := strings.TrimRight(string(p), "/")
	if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
		return CanonicalPath(s[:idx])
	}
	return ""
}

// Join appends a child name to a directory path.
func (p CanonicalPath) Join(name string) CanonicalPath {
	name = strings.TrimLeft(name, "/")
	if p == "" {
		return CanonicalPath(name)
	}
	return CanonicalPath(strings.TrimRight(string(p), "/") + "/" + name)
}

// NormalizePath converts any producer path into a CanonicalPath. It trims
// whitespace, strips one repoRoot prefix when present and then every leading
// slash. The root is stripped only when it ends at a segment boundary (see
// hasRootPrefix). Segments are passed through unresolved.
func NormalizePath(raw, repoRoot string) (CanonicalPath, error) {
	const op = errs.Op("state.NormalizePath")

	path := strings.TrimSpace(raw)
	if path == "" {
		return "", errs.InvalidPath(op, "empty path")
	}
	return stripPath(path, repoRoot), nil
}

// NormalizeDirectory is NormalizePath for browse targets: an empty input or
// the repository root itself maps to the root cursor "".
func NormalizeDirectory(raw, repoRoot string) CanonicalPath {
	path := strings.TrimSpace(raw)
	if path == "" {
		return ""
	}
	return stripPath(path, repoRoot)
}

func stripPath(path, repoRoot string) CanonicalPath {
	if hasRootPrefix(path, repoRoot) {
		path = path[len(repoRoot):]
	}
	return CanonicalPath(strings.TrimLeft(path, "/"))
}

// hasRootPrefix reports whether path lies under repoRoot. Unlike a plain
// string prefix test, the root only matches at a segment boundary: under
// root "/repo", "/repo/x" and "/repo" match but "/repository/x" keeps its
// prefix and normalizes to "repository/x".
func hasRootPrefix(path, repoRoot string) bool {
	if repoRoot == "" || !strings.HasPrefix(path, repoRoot) {
		return false
	}
	if len(path) == len(repoRoot) || strings.HasSuffix(repoRoot, "/") {
		return true
	}
	return path[len(repoRoot)] == '/'
}
