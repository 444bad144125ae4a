// Package fs models the repository tree as reported by the backend: listing
// entries and file content classification.
package fs

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory in a backend listing.
type Entry struct {
	Name  string
	IsDir bool
}

// NewEntry builds an entry with an NFC-normalized name so that names typed by
// the user and names reported by the backend compare equal.
func NewEntry(name string, isDir bool) Entry {
	return Entry{Name: norm.NFC.String(name), IsDir: isDir}
}

// SortEntries orders directories first, then names case-insensitively.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
