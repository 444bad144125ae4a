//go:build windows

package app

// Windows has no job control, so Ctrl+Z only explains itself.
func (app *Application) suspendToShell() {
	app.model.SetStatus("Suspend is not available on Windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
