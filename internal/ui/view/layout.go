package view

import statepkg "github.com/kk-code-lab/codenav/internal/state"

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout places every panel for one frame. Panels with a title use their
// first row for it.
type Layout struct {
	Header      Rect
	Browser     Rect
	Definitions Rect
	Separator   Rect
	SearchBar   Rect
	Main        Rect
	QA          Rect
	Status      Rect
}

const (
	minSidebarWidth  = 20
	maxSidebarWidth  = 40
	sidebarRatio     = 0.28
	narrowWidth      = 60
	minQAHeight      = 5
	minDefsHeight    = 4
	qaHeightDivisor  = 3
	defsHeightFactor = 0.4
)

// ComputeLayout splits a width x height screen for snap.
func ComputeLayout(width, height int, snap statepkg.Snapshot) Layout {
	var l Layout
	if width <= 0 || height <= 0 {
		return l
	}
	l.Header = Rect{X: 0, Y: 0, W: width, H: 1}
	if height < 2 {
		return l
	}
	l.Status = Rect{X: 0, Y: height - 1, W: width, H: 1}

	bodyY := 1
	bodyH := height - 2
	if bodyH <= 0 {
		return l
	}

	sidebarW := sidebarWidth(width)
	l.Separator = Rect{X: sidebarW, Y: bodyY, W: 1, H: bodyH}
	mainX := sidebarW + 1
	mainW := width - mainX

	defsH := 0
	if snap.Definitions.Symbol != "" {
		defsH = max(int(float64(bodyH)*defsHeightFactor), minDefsHeight)
		defsH = min(defsH, bodyH-1)
	}
	l.Browser = Rect{X: 0, Y: bodyY, W: sidebarW, H: bodyH - defsH}
	if defsH > 0 {
		l.Definitions = Rect{X: 0, Y: bodyY + bodyH - defsH, W: sidebarW, H: defsH}
	}

	mainY := bodyY
	mainH := bodyH
	if snap.Panels.SearchPanelOpen && mainH > 1 {
		l.SearchBar = Rect{X: mainX, Y: mainY, W: mainW, H: 1}
		mainY++
		mainH--
	}
	if snap.Panels.QAPanelOpen && mainH > 2 {
		qaH := min(max(mainH/qaHeightDivisor, minQAHeight), mainH-1)
		l.QA = Rect{X: mainX, Y: mainY + mainH - qaH, W: mainW, H: qaH}
		mainH -= qaH
	}
	l.Main = Rect{X: mainX, Y: mainY, W: mainW, H: mainH}
	return l
}

func sidebarWidth(width int) int {
	if width < narrowWidth {
		return width / 3
	}
	w := int(float64(width) * sidebarRatio)
	return min(max(w, minSidebarWidth), maxSidebarWidth)
}

// ListWindow returns the first visible row of a list of total rows shown in
// height rows so that cursor stays visible.
func ListWindow(cursor, total, height int) int {
	if height <= 0 || total <= height || cursor < height {
		return 0
	}
	start := cursor - height + 1
	return min(start, total-height)
}
