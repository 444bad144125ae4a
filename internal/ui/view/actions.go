package view

// Actions in this file only change the view model. The application loop
// hands everything else to the coordinator.

type QuitAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}

// FocusNextAction cycles focus between the panels that are on screen.
type FocusNextAction struct {
	Reverse bool
}

// MoveAction moves the cursor of the focused list, or scrolls the focused
// text panel, by Delta rows.
type MoveAction struct {
	Delta int
}

// PageAction moves by Delta screens.
type PageAction struct {
	Delta int
}

// JumpAction moves to the first or last row.
type JumpAction struct {
	End bool
}

// ActivateAction opens the row under the cursor.
type ActivateAction struct{}

// BackAction goes to the parent directory from the browser and closes the
// file from the viewer.
type BackAction struct{}

// EscapeAction backs out of the innermost open thing: help, the viewer,
// then the search results.
type EscapeAction struct{}

type OpenPromptAction struct {
	Kind PromptKind
}

type PromptInputAction struct {
	Rune rune
}

// PromptEdit is a cursor or deletion key inside the prompt.
type PromptEdit int

const (
	PromptBackspace PromptEdit = iota
	PromptDelete
	PromptDeleteWord
	PromptLeft
	PromptRight
	PromptHome
	PromptEnd
)

type PromptEditAction struct {
	Edit PromptEdit
}

type PromptSubmitAction struct{}
type PromptCancelAction struct{}

// CycleSearchModeAction switches filename, content and semantic search.
type CycleSearchModeAction struct{}

// RetryRequestAction retries the focused panel, or the first failed one.
type RetryRequestAction struct{}

// ClickAction is a primary mouse click at screen coordinates.
type ClickAction struct {
	X, Y int
}

// WheelAction scrolls the panel under the pointer.
type WheelAction struct {
	X, Y  int
	Delta int
}

// Actions below are carried out by the application loop because they reach
// outside the terminal.

// YankAction copies the selected file location to the system clipboard.
type YankAction struct{}

// OpenEditorAction opens the selected file in $VISUAL or $EDITOR when the
// repository is checked out locally.
type OpenEditorAction struct{}

// SuspendAction stops the process and returns to the shell (Ctrl+Z).
type SuspendAction struct{}

// Handles reports whether action is one the view model consumes in Update.
func Handles(action any) bool {
	switch action.(type) {
	case QuitAction, ResizeAction, HelpToggleAction, FocusNextAction,
		MoveAction, PageAction, JumpAction, ActivateAction, BackAction,
		EscapeAction, OpenPromptAction, PromptInputAction, PromptEditAction,
		PromptSubmitAction, PromptCancelAction, CycleSearchModeAction,
		RetryRequestAction, ClickAction, WheelAction:
		return true
	}
	return false
}
