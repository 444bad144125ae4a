package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	statepkg "github.com/kk-code-lab/codenav/internal/state"
)

// selectionLocation returns the selected file as "path" or "path:line",
// using the definition line or the line of the search match.
func (app *Application) selectionLocation() (statepkg.CanonicalPath, int, bool) {
	sel := app.snap.Selection
	if !sel.Viewing() {
		return "", 0, false
	}
	line, ok := app.model.HighlightLine(app.snap)
	if !ok {
		return sel.Path, 0, true
	}
	return sel.Path, line + 1, true
}

func (app *Application) handleClipboard() {
	path, line, ok := app.selectionLocation()
	if !ok {
		app.model.SetError("No file selected")
		return
	}
	if len(app.clipboardCmd) == 0 {
		app.model.SetError("No clipboard command found (pbcopy, wl-copy, xclip, xsel)")
		return
	}

	text := string(path)
	if line > 0 {
		text = fmt.Sprintf("%s:%d", path, line)
	}
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.log.Warn("clipboard command failed", zap.Strings("cmd", app.clipboardCmd), zap.Error(err))
		app.model.SetError(fmt.Sprintf("%s failed: %v", filepath.Base(app.clipboardCmd[0]), err))
		return
	}
	app.model.SetStatus("Copied " + text)
}

// localFile maps a canonical path into the repository checkout on this
// machine, if there is one.
func localFile(repoRoot string, path statepkg.CanonicalPath) (string, bool) {
	if repoRoot == "" || path == "" {
		return "", false
	}
	full := filepath.Join(repoRoot, filepath.FromSlash(string(path)))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

func (app *Application) handleEditorOpen() {
	path, line, ok := app.selectionLocation()
	if !ok {
		app.model.SetError("No file selected")
		return
	}
	if len(app.editorCmd) == 0 {
		app.model.SetError("No editor found; set $EDITOR")
		return
	}
	file, ok := localFile(app.snap.RepoRoot, path)
	if !ok {
		app.model.SetError(fmt.Sprintf("%s is not available in a local checkout", path))
		return
	}
	if err := app.openFileInEditor(editorArgs(app.editorCmd, file, line)); err != nil {
		app.log.Warn("editor failed", zap.Strings("cmd", app.editorCmd), zap.Error(err))
		app.model.SetError(err.Error())
	}
}

func (app *Application) openFileInEditor(args []string) error {
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	if useTTY {
		var err error
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(args)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(args[0], args[1:]...)
	if useTTY {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}
	runErr := cmd.Run()
	if runErr != nil {
		runErr = fmt.Errorf("%s: %w", filepath.Base(args[0]), runErr)
	}

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	_ = flushConsoleInput()
	app.screen.Sync()
	return runErr
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	return nil
}
