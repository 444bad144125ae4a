package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	errs "github.com/kk-code-lab/codenav/internal/errors"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// Run processes terminal events and loader results until the user quits or
// ctx is cancelled.
func (app *Application) Run(ctx context.Context) {
	app.renderer.Render(app.model, app.snap)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-app.done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.model, app.snap)
			renderPending = false
		}

		select {
		case <-ctx.Done():
			app.log.Info("context cancelled, quitting")
			return
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.resultCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		app.input.ProcessEvent(ev)
	case *tcell.EventKey, *tcell.EventMouse:
		app.input.ProcessEvent(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return app.drainInput()
}

// drainInput handles the actions the input handler just emitted.
func (app *Application) drainInput() bool {
	changed := false
	for {
		select {
		case action := <-app.inputCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// processActions handles loader results that queued up meanwhile.
func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.resultCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case view.QuitAction:
		app.shouldQuit = true
		return false
	case view.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case view.YankAction:
		app.handleClipboard()
		return true
	case view.OpenEditorAction:
		app.handleEditorOpen()
		return true
	}

	if view.Handles(action) {
		out, changed := app.model.Update(action, app.snap)
		for _, next := range out {
			app.dispatch(next)
		}
		return changed || len(out) > 0
	}

	before := app.snap.Version
	rejected := !app.dispatch(action)
	return rejected || app.snap.Version != before
}

// dispatch hands action to the coordinator and shows a rejection on the
// status line.
func (app *Application) dispatch(action statepkg.Action) bool {
	if err := app.coordinator.Dispatch(action); err != nil {
		app.model.SetError(errs.UserMessage(err))
		return false
	}
	return true
}
