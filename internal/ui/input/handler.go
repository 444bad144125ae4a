package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	model      *view.Model // consulted for prompt and help modes
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetModel sets the view model used for mode checking
func (ih *InputHandler) SetModel(model *view.Model) {
	ih.model = model
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.emit(view.ResizeAction{Width: w, Height: h})
	case *tcell.EventMouse:
		ih.processMouseEvent(ev)
	}
	return true
}

func (ih *InputHandler) emit(action statepkg.Action) {
	ih.actionChan <- action
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.emit(view.QuitAction{})
		return false
	}
	if ev.Key() == tcell.KeyCtrlZ {
		ih.emit(view.SuspendAction{})
		return true
	}
	if ih.model != nil && ih.model.Prompt.Active() {
		ih.processPromptKey(ev)
		return true
	}
	if ih.model != nil && ih.model.HelpVisible {
		switch {
		case ev.Key() == tcell.KeyEscape:
			ih.emit(view.HelpToggleAction{})
		case ev.Key() == tcell.KeyRune && (ev.Rune() == '?' || ev.Rune() == 'q'):
			ih.emit(view.HelpToggleAction{})
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(view.EscapeAction{})
	case tcell.KeyTab:
		ih.emit(view.FocusNextAction{})
	case tcell.KeyBacktab:
		ih.emit(view.FocusNextAction{Reverse: true})
	case tcell.KeyUp:
		ih.emit(view.MoveAction{Delta: -1})
	case tcell.KeyDown:
		ih.emit(view.MoveAction{Delta: 1})
	case tcell.KeyPgUp:
		ih.emit(view.PageAction{Delta: -1})
	case tcell.KeyPgDn:
		ih.emit(view.PageAction{Delta: 1})
	case tcell.KeyHome:
		ih.emit(view.JumpAction{})
	case tcell.KeyEnd:
		ih.emit(view.JumpAction{End: true})
	case tcell.KeyEnter, tcell.KeyRight:
		ih.emit(view.ActivateAction{})
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(view.BackAction{})
	case tcell.KeyCtrlF:
		ih.emit(statepkg.ToggleSearchPanelAction{})
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q':
		ih.emit(view.QuitAction{})
		return false
	case 'j':
		ih.emit(view.MoveAction{Delta: 1})
	case 'k':
		ih.emit(view.MoveAction{Delta: -1})
	case 'g':
		ih.emit(view.JumpAction{})
	case 'G':
		ih.emit(view.JumpAction{End: true})
	case 'l':
		ih.emit(view.ActivateAction{})
	case 'h':
		ih.emit(view.BackAction{})
	case '/':
		ih.emit(view.OpenPromptAction{Kind: view.PromptSearch})
	case 'd':
		ih.emit(view.OpenPromptAction{Kind: view.PromptSymbol})
	case 'a':
		ih.emit(view.OpenPromptAction{Kind: view.PromptQuestion})
	case 'm':
		ih.emit(view.CycleSearchModeAction{})
	case 's':
		ih.emit(statepkg.ToggleSearchPanelAction{})
	case 'A':
		ih.emit(statepkg.ToggleQAPanelAction{})
	case 'x':
		ih.emit(statepkg.CloseSearchAction{})
	case 'r':
		ih.emit(view.RetryRequestAction{})
	case 'y':
		ih.emit(view.YankAction{})
	case 'e':
		ih.emit(view.OpenEditorAction{})
	case '~':
		ih.emit(statepkg.BrowseRootAction{})
	case '?':
		ih.emit(view.HelpToggleAction{})
	}
	return true
}

func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(view.PromptCancelAction{})
	case tcell.KeyEnter:
		ih.emit(view.PromptSubmitAction{})
	case tcell.KeyTab:
		if ih.model.Prompt.Kind == view.PromptSearch {
			ih.emit(view.CycleSearchModeAction{})
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(view.PromptEditAction{Edit: view.PromptBackspace})
	case tcell.KeyDelete:
		ih.emit(view.PromptEditAction{Edit: view.PromptDelete})
	case tcell.KeyCtrlW:
		ih.emit(view.PromptEditAction{Edit: view.PromptDeleteWord})
	case tcell.KeyLeft:
		ih.emit(view.PromptEditAction{Edit: view.PromptLeft})
	case tcell.KeyRight:
		ih.emit(view.PromptEditAction{Edit: view.PromptRight})
	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.emit(view.PromptEditAction{Edit: view.PromptHome})
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.emit(view.PromptEditAction{Edit: view.PromptEnd})
	case tcell.KeyRune:
		ih.emit(view.PromptInputAction{Rune: ev.Rune()})
	}
}

func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		ih.emit(view.WheelAction{X: x, Y: y, Delta: -3})
	case buttons&tcell.WheelDown != 0:
		ih.emit(view.WheelAction{X: x, Y: y, Delta: 3})
	case buttons&tcell.Button1 != 0:
		ih.emit(view.ClickAction{X: x, Y: y})
	}
}
