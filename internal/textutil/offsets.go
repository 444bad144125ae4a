package textutil

import "fmt"

// LineIndex maps rune offsets in a text to lines. Offsets count Unicode
// code points, the unit search backends report match positions in.
type LineIndex struct {
	starts []int
	total  int
}

// NewLineIndex indexes text split on '\n'.
func NewLineIndex(text string) LineIndex {
	idx := LineIndex{starts: []int{0}}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			idx.starts = append(idx.starts, offset)
		}
	}
	idx.total = offset
	return idx
}

// Lines returns the number of lines, counting a trailing empty line.
func (idx LineIndex) Lines() int {
	return len(idx.starts)
}

// LineStart returns the rune offset at which line (0-based) begins.
func (idx LineIndex) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(idx.starts) {
		return idx.total
	}
	return idx.starts[line]
}

// Locate returns the 0-based line and column of offset, clamped to the text.
func (idx LineIndex) Locate(offset int) (line, col int) {
	offset = min(max(offset, 0), idx.total)
	lo, hi := 0, len(idx.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - idx.starts[lo]
}

// FormatSize renders a byte count the way the viewer header shows it.
func FormatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
