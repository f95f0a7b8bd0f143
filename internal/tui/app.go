// Package tui renders the bookmark deck as a responsive column board.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/bmdeck/internal/launcher"
	"github.com/nikbrunner/bmdeck/internal/layout"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/reorder"
	"github.com/nikbrunner/bmdeck/internal/storage"
	"github.com/nikbrunner/bmdeck/internal/store"
)

// messageTTL is how long the message line stays visible.
const messageTTL = 4 * time.Second

// App is the main bubbletea model for the bookmark deck.
type App struct {
	ctx       context.Context
	store     *store.Store
	kv        storage.KV
	launcher  launcher.Launcher
	favicon   layout.FaviconFunc
	clipboard func(string) error
	logger    *zap.Logger
	now       func() time.Time
	exportDir string
	verbatim  bool

	keys         KeyMap
	theme        store.Theme
	styles       Styles
	layoutConfig layout.LayoutConfig

	// Snapshot of the store, refreshed when its revision changes
	folders  model.Hierarchy
	columns  []layout.Column
	revision uint64

	// Window dimensions; layoutUnits lags width until a resize burst settles
	width       int
	height      int
	layoutUnits int
	sized       bool
	gate        layout.ResizeGate

	cursor      Cursor
	lastKeyWasG bool

	mode   Mode
	form   FormState
	del    DeleteState
	imp    ImportState
	drag   *reorder.Controller
	target int // drop candidate while dragging

	messageText string
	messageType MessageType
	messageID   int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store *store.Store
	// KV persists the theme preference. Optional.
	KV       storage.KV
	Launcher launcher.Launcher
	Favicon  layout.FaviconFunc
	// Clipboard defaults to the system clipboard.
	Clipboard    func(string) error
	Logger       *zap.Logger
	Now          func() time.Time
	ExportDir    string
	Verbatim     bool
	Theme        store.Theme
	Keys         *KeyMap              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters. The store must be
// loaded already.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	theme := params.Theme
	if theme != store.ThemeDark {
		theme = store.ThemeLight
	}

	app := App{
		ctx:          context.Background(),
		store:        params.Store,
		kv:           params.KV,
		launcher:     params.Launcher,
		favicon:      params.Favicon,
		clipboard:    params.Clipboard,
		logger:       params.Logger,
		now:          params.Now,
		exportDir:    params.ExportDir,
		verbatim:     params.Verbatim,
		keys:         keys,
		theme:        theme,
		styles:       NewStyles(theme),
		layoutConfig: layoutCfg,
		width:        80,
		height:       24,
		cursor:       Cursor{Folder: 0, Row: HeaderRow},
		drag:         reorder.New(params.Store),
		target:       reorder.NoCandidate,
		form:         NewFormState(layoutCfg),
		imp:          NewImportState(layoutCfg),
	}
	if app.launcher == nil {
		app.launcher = launcher.NewBrowserLauncher()
	}
	if app.clipboard == nil {
		app.clipboard = clipboard.WriteAll
	}
	if app.logger == nil {
		app.logger = zap.NewNop()
	}
	if app.now == nil {
		app.now = time.Now
	}
	if app.exportDir == "" {
		app.exportDir = "."
	}

	app.layoutUnits = layout.TerminalUnits(app.width, layoutCfg.Columns)
	app.revision = params.Store.Revision()
	app.folders = params.Store.Folders()
	app.relayout()
	return app
}

// WithDimensions returns a copy laid out for a terminal of the given size
// right away, skipping the resize debounce.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.sized = true
	a.layoutUnits = layout.TerminalUnits(width, a.layoutConfig.Columns)
	a.relayout()
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() Cursor { return a.cursor }

// Mode returns the current input mode.
func (a App) Mode() Mode { return a.mode }

// Columns returns the current column distribution.
func (a App) Columns() []layout.Column { return a.columns }

// Theme returns the active theme.
func (a App) Theme() store.Theme { return a.theme }

// Message returns the text on the message line.
func (a App) Message() string { return a.messageText }

// DropTarget returns the drop candidate while dragging.
func (a App) DropTarget() int { return a.target }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// resizeSettledMsg fires ResizeDebounce after a resize observation.
type resizeSettledMsg struct{ seq uint64 }

// clearMessageMsg hides the message line unless a newer message replaced it.
type clearMessageMsg struct{ id int }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a, cmd := a.update(msg)
	a.syncStore()
	return a, cmd
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case resizeSettledMsg:
		if units, ok := a.gate.Settle(msg.seq); ok {
			a.layoutUnits = units
			a.relayout()
		}
		return a, nil

	case clearMessageMsg:
		if msg.id == a.messageID {
			a.messageText = ""
		}
		return a, nil

	case openedMsg:
		if msg.err != nil {
			return a, a.setMessage(MessageError, "Open failed: "+msg.err.Error())
		}
		if msg.count > 1 {
			return a, a.setMessage(MessageSuccess, pluralize(msg.count, "tab", "tabs")+" opened")
		}
		return a, nil

	case exportedMsg:
		if msg.err != nil {
			return a, a.setMessage(MessageError, "Export failed: "+msg.err.Error())
		}
		return a, a.setMessage(MessageSuccess, "Exported to "+msg.dir)

	case importedMsg:
		if msg.err != nil {
			return a, a.setMessage(MessageError, "Import failed: "+msg.err.Error())
		}
		a.cursor = Cursor{Folder: 0, Row: HeaderRow}
		return a, a.setMessage(MessageSuccess, "Imported "+pluralize(msg.folders, "folder", "folders"))

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleResize applies the first size right away and debounces the rest.
func (a App) handleResize(msg tea.WindowSizeMsg) (App, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	units := layout.TerminalUnits(msg.Width, a.layoutConfig.Columns)

	if !a.sized {
		a.sized = true
		a.layoutUnits = units
		a.relayout()
		return a, nil
	}

	seq := a.gate.Observe(units)
	return a, tea.Tick(layout.ResizeDebounce, func(time.Time) tea.Msg {
		return resizeSettledMsg{seq: seq}
	})
}

// syncStore refreshes the snapshot after any store change, whether it came
// from this App or from a command running in the background.
func (a *App) syncStore() {
	rev := a.store.Revision()
	if rev == a.revision {
		return
	}
	a.revision = rev
	a.folders = a.store.Folders()
	a.relayout()
}

func (a *App) relayout() {
	a.columns = layout.Compute(a.folders, a.layoutUnits, a.layoutConfig.Columns, a.favicon)
	a.clampCursor()
}

// setMessage shows text on the message line and schedules its removal.
func (a *App) setMessage(t MessageType, text string) tea.Cmd {
	a.messageID++
	a.messageText = text
	a.messageType = t
	if t == MessageError {
		a.logger.Warn("action failed", zap.String("message", text))
	} else {
		a.logger.Debug("message", zap.String("message", text))
	}
	id := a.messageID
	return tea.Tick(messageTTL, func(time.Time) tea.Msg {
		return clearMessageMsg{id: id}
	})
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
