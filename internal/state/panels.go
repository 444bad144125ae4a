package state

// PanelVisibility holds UI toggles that live independently of the
// selection. Only explicit user actions change them.
type PanelVisibility struct {
	SearchPanelOpen bool
	QAPanelOpen     bool
}

// ToggleSearchPanel flips the search panel.
func (p *PanelVisibility) ToggleSearchPanel() {
	p.SearchPanelOpen = !p.SearchPanelOpen
}

// ToggleQAPanel flips the question panel.
func (p *PanelVisibility) ToggleQAPanel() {
	p.QAPanelOpen = !p.QAPanelOpen
}

// SetSearchPanel forces the search panel state.
func (p *PanelVisibility) SetSearchPanel(open bool) {
	p.SearchPanelOpen = open
}

// SetQAPanel forces the question panel state.
func (p *PanelVisibility) SetQAPanel(open bool) {
	p.QAPanelOpen = open
}
