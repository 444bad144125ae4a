package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

func newHandler(model *view.Model) (*InputHandler, chan statepkg.Action) {
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetModel(model)
	return handler, actionChan
}

func expectAction[T any](t *testing.T, actionChan chan statepkg.Action) T {
	t.Helper()
	select {
	case action := <-actionChan:
		typed, ok := action.(T)
		if !ok {
			var zero T
			t.Fatalf("Expected %T, got %T", zero, action)
		}
		return typed
	default:
		var zero T
		t.Fatalf("Expected %T to be emitted", zero)
		return zero
	}
}

func TestSlashOpensSearchPrompt(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '/', 0))

	action := expectAction[view.OpenPromptAction](t, actionChan)
	if action.Kind != view.PromptSearch {
		t.Fatalf("prompt kind = %v", action.Kind)
	}
}

func TestRunesGoToPromptWhileEditing(t *testing.T) {
	model := view.NewModel(80, 24)
	model.Prompt.Open(view.PromptSearch, "")
	handler, actionChan := newHandler(model)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))

	action := expectAction[view.PromptInputAction](t, actionChan)
	if action.Rune != 'q' {
		t.Fatalf("rune = %q", action.Rune)
	}
}

func TestPromptEnterSubmitsAndEscapeCancels(t *testing.T) {
	model := view.NewModel(80, 24)
	model.Prompt.Open(view.PromptQuestion, "why")
	handler, actionChan := newHandler(model)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	expectAction[view.PromptSubmitAction](t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	expectAction[view.PromptCancelAction](t, actionChan)
}

func TestTabCyclesSearchModeOnlyInSearchPrompt(t *testing.T) {
	model := view.NewModel(80, 24)
	model.Prompt.Open(view.PromptSymbol, "")
	handler, actionChan := newHandler(model)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyTab, 0, 0))
	if len(actionChan) != 0 {
		t.Fatalf("tab in symbol prompt emitted %T", <-actionChan)
	}

	model.Prompt.Open(view.PromptSearch, "")
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyTab, 0, 0))
	expectAction[view.CycleSearchModeAction](t, actionChan)
}

func TestPanelToggleKeysEmitStateActions(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 's', 0))
	expectAction[statepkg.ToggleSearchPanelAction](t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'A', 0))
	expectAction[statepkg.ToggleQAPanelAction](t, actionChan)
}

func TestQuitKeys(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatal("q should stop the loop")
	}
	expectAction[view.QuitAction](t, actionChan)

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0)) {
		t.Fatal("ctrl+c should stop the loop")
	}
	expectAction[view.QuitAction](t, actionChan)
}

func TestEscapeClosesHelpFirst(t *testing.T) {
	model := view.NewModel(80, 24)
	model.HelpVisible = true
	handler, actionChan := newHandler(model)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	expectAction[view.HelpToggleAction](t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '/', 0))
	if len(actionChan) != 0 {
		t.Fatalf("keys leaked through help overlay: %T", <-actionChan)
	}
}

func TestNavigationKeys(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	if a := expectAction[view.MoveAction](t, actionChan); a.Delta != 1 {
		t.Fatalf("down delta = %d", a.Delta)
	}
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'k', 0))
	if a := expectAction[view.MoveAction](t, actionChan); a.Delta != -1 {
		t.Fatalf("k delta = %d", a.Delta)
	}
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	expectAction[view.ActivateAction](t, actionChan)
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, 0))
	expectAction[view.BackAction](t, actionChan)
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'r', 0))
	expectAction[view.RetryRequestAction](t, actionChan)
}

func TestResizeEvent(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	handler.ProcessEvent(tcell.NewEventResize(120, 40))

	action := expectAction[view.ResizeAction](t, actionChan)
	if action.Width != 120 || action.Height != 40 {
		t.Fatalf("resize = %+v", action)
	}
}

func TestMouseClickAndWheel(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	handler.ProcessEvent(tcell.NewEventMouse(5, 7, tcell.Button1, 0))
	if a := expectAction[view.ClickAction](t, actionChan); a.X != 5 || a.Y != 7 {
		t.Fatalf("click = %+v", a)
	}

	handler.ProcessEvent(tcell.NewEventMouse(30, 10, tcell.WheelDown, 0))
	if a := expectAction[view.WheelAction](t, actionChan); a.Delta != 3 {
		t.Fatalf("wheel = %+v", a)
	}
}

func TestOutsideTerminalKeys(t *testing.T) {
	handler, actionChan := newHandler(view.NewModel(80, 24))

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'y', 0))
	expectAction[view.YankAction](t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'e', 0))
	expectAction[view.OpenEditorAction](t, actionChan)

	if !handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, 0)) {
		t.Fatal("suspend should not quit")
	}
	expectAction[view.SuspendAction](t, actionChan)
}
