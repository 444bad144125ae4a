package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background   tcell.Color
	Foreground   tcell.Color
	HeaderBg     tcell.Color
	HeaderFg     tcell.Color
	TitleFg      tcell.Color
	FocusTitleFg tcell.Color
	SelectionBg  tcell.Color
	SelectionFg  tcell.Color
	DirectoryFg  tcell.Color
	FileFg       tcell.Color
	DimFg        tcell.Color
	ErrorFg      tcell.Color
	MatchBg      tcell.Color
	MatchFg      tcell.Color
	LineMarkBg   tcell.Color
	GutterFg     tcell.Color
	BadgeFg      tcell.Color
	SyntaxStyle  string
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:   tcell.ColorDefault,
		Foreground:   tcell.ColorDefault,
		HeaderBg:     tcell.Color236,
		HeaderFg:     tcell.Color252,
		TitleFg:      tcell.Color245,
		FocusTitleFg: tcell.Color33,
		SelectionBg:  tcell.Color33,
		SelectionFg:  tcell.ColorWhite,
		DirectoryFg:  tcell.Color33,
		FileFg:       tcell.ColorDefault,
		DimFg:        tcell.Color244,
		ErrorFg:      tcell.Color203,
		MatchBg:      tcell.Color136,
		MatchFg:      tcell.ColorBlack,
		LineMarkBg:   tcell.Color238,
		GutterFg:     tcell.Color240,
		BadgeFg:      tcell.Color114,
		SyntaxStyle:  "monokai",
	}
}

func (t ColorTheme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

func (t ColorTheme) header() tcell.Style {
	return tcell.StyleDefault.Background(t.HeaderBg).Foreground(t.HeaderFg)
}

func (t ColorTheme) dim() tcell.Style {
	return t.base().Foreground(t.DimFg)
}

func (t ColorTheme) errorText() tcell.Style {
	return t.base().Foreground(t.ErrorFg)
}

func (t ColorTheme) selected() tcell.Style {
	return tcell.StyleDefault.Background(t.SelectionBg).Foreground(t.SelectionFg)
}

func (t ColorTheme) title(focused bool) tcell.Style {
	if focused {
		return t.base().Foreground(t.FocusTitleFg).Bold(true)
	}
	return t.base().Foreground(t.TitleFg).Bold(true)
}
