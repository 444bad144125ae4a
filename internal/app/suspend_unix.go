//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/codenav/internal/ui/view"
)

func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// Stop only this process, not the group, so a wrapping shell keeps job
	// control.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.model.Update(view.ResizeAction{Width: w, Height: h}, app.snap)
	}
	return true
}
