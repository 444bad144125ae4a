// Package app wires the terminal, the view model and the navigation
// coordinator into one event loop.
package app

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kk-code-lab/codenav/internal/backend"
	statepkg "github.com/kk-code-lab/codenav/internal/state"
	inputui "github.com/kk-code-lab/codenav/internal/ui/input"
	renderui "github.com/kk-code-lab/codenav/internal/ui/render"
	"github.com/kk-code-lab/codenav/internal/ui/view"
)

// Backend is what the application needs from the navigator service.
type Backend interface {
	statepkg.Backend
	Config(ctx context.Context) (backend.Config, error)
}

// Options configures an Application.
type Options struct {
	Backend Backend
	Logger  *zap.Logger
	// Screen defaults to the real terminal.
	Screen tcell.Screen
	// StartupTimeout bounds the initial /config and root listing requests.
	StartupTimeout time.Duration
	// ContentCacheTTL of zero turns off reuse of previously fetched files.
	ContentCacheTTL time.Duration
	TabWidth        int
}

// Application represents the running app.
type Application struct {
	screen      tcell.Screen
	model       *view.Model
	coordinator *statepkg.Coordinator
	runner      *statepkg.AsyncRunner
	renderer    *renderui.Renderer
	input       *inputui.InputHandler
	log         *zap.Logger

	// inputCh carries actions emitted while handling a terminal event and
	// is drained right after it. resultCh carries loader results.
	inputCh  chan statepkg.Action
	resultCh chan statepkg.Action
	done     chan struct{}

	snap        statepkg.Snapshot
	unsubscribe func()
	shouldQuit  bool

	clipboardCmd []string
	editorCmd    []string
}

// NewApplication contacts the backend, then takes over the terminal. It
// fails when the repository root listing cannot be fetched.
func NewApplication(ctx context.Context, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	startup, err := Bootstrap(ctx, opts.Backend, opts.StartupTimeout, logger.Named("startup"))
	if err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	app := newApplication(screen, opts, startup, logger)
	app.clipboardCmd, _ = detectClipboard()
	app.editorCmd, _ = detectEditorCommand()
	return app, nil
}

// newApplication assembles an application around an initialized screen.
func newApplication(screen tcell.Screen, opts Options, startup Startup, logger *zap.Logger) *Application {
	w, h := screen.Size()
	app := &Application{
		screen:   screen,
		model:    view.NewModel(w, h),
		runner:   statepkg.NewAsyncRunner(context.Background()),
		renderer: renderui.NewRenderer(screen),
		log:      logger.Named("app"),
		inputCh:  make(chan statepkg.Action, 16),
		resultCh: make(chan statepkg.Action, 64),
		done:     make(chan struct{}),
	}
	if opts.TabWidth > 0 {
		app.model.TabWidth = opts.TabWidth
		app.renderer.SetTabWidth(opts.TabWidth)
	}

	app.coordinator = statepkg.NewCoordinator(statepkg.Options{
		Backend:             opts.Backend,
		Runner:              app.runner,
		Dispatch:            app.post,
		Logger:              logger.Named("coordinator"),
		RepoRoot:            startup.RepoRoot,
		InitialListing:      startup.Listing,
		ContentCacheTTL:     opts.ContentCacheTTL,
		DisableContentCache: opts.ContentCacheTTL <= 0,
	})
	app.snap = app.coordinator.Snapshot()
	app.unsubscribe = app.coordinator.Subscribe(app.observe)

	app.input = inputui.NewInputHandler(app.inputCh)
	app.input.SetModel(app.model)
	return app
}

// post hands a loader result to the loop. It gives up once the loop is
// closed so loaders never block shutdown.
func (app *Application) post(action statepkg.Action) {
	select {
	case app.resultCh <- action:
	case <-app.done:
	}
}

func (app *Application) observe(next statepkg.Snapshot) {
	app.model.Observe(app.snap, next)
	app.snap = next
}

// Close stops the loaders and restores the terminal.
func (app *Application) Close() error {
	select {
	case <-app.done:
		return nil
	default:
	}
	close(app.done)
	app.unsubscribe()
	app.runner.Close()
	app.screen.Fini()
	return nil
}
