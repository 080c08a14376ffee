// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fatemehkarimi/theodore/internal/config"
	"github.com/fatemehkarimi/theodore/internal/editor"
	"github.com/fatemehkarimi/theodore/internal/emoji"
	"github.com/fatemehkarimi/theodore/internal/event"
	"github.com/fatemehkarimi/theodore/internal/host"
	"github.com/fatemehkarimi/theodore/internal/input"
	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/plugin"
	"github.com/fatemehkarimi/theodore/internal/statusbar"
	"github.com/fatemehkarimi/theodore/internal/theme"
	"github.com/fatemehkarimi/theodore/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Placeholder is shown while the document is empty.
const Placeholder = "Type a message..."

// Options configures a new App.
type Options struct {
	Config *config.Config
	// Screen defaults to the terminal. Tests pass a simulation screen.
	Screen    tcell.Screen
	Renderer  host.EmojiRenderer
	Clipboard host.Clipboard
	ThemesDir string
	// Source names where Content came from, shown in the status bar.
	Source  string
	Content string
}

// App owns the screen, the widget and the loops that connect them.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	view           *tui.View
	widget         *host.Widget
	renderer       host.EmojiRenderer
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	themeManager   *theme.Manager
	inputProcessor *input.InputProcessor
	editorAPI      plugin.EditorAPI

	// mu serializes the event goroutine and the draw loop, which both
	// reach into the widget.
	mu       sync.Mutex
	commands map[string]plugin.CommandFunc
	cmdMode  bool
	cmdInput []rune
	modified bool

	pasting  bool
	pasteBuf strings.Builder

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// NewApp creates and wires a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	var renderer host.EmojiRenderer = emoji.Native{}
	if opts.Renderer != nil {
		renderer = opts.Renderer
	}

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen)
	} else {
		tuiManager, err = tui.New()
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	themeManager := theme.NewManager(opts.ThemesDir)
	if cfg.Editor.ThemeFile != "" {
		if th, err := themeManager.Add(cfg.Editor.ThemeFile); err != nil {
			logger.Warnf("App: could not load theme file '%s': %v", cfg.Editor.ThemeFile, err)
		} else if err := themeManager.SetTheme(th.Name); err != nil {
			logger.Warnf("App: could not activate theme '%s': %v", th.Name, err)
		}
	}

	eventManager := event.NewManager()
	engine := editor.New(editor.Options{Strict: cfg.Editor.Strict, MaxHistory: cfg.Editor.MaxHistory})
	view := tui.NewView(tuiManager.GetScreen(), renderer, themeManager.Current, Placeholder)

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		view:           view,
		renderer:       renderer,
		statusBar:      statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout}),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(),
		themeManager:   themeManager,
		inputProcessor: input.NewInputProcessor(),
		commands:       make(map[string]plugin.CommandFunc),
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}
	a.widget = host.NewWidget(engine, eventManager, host.Capabilities{
		Cursor:    view,
		Clipboard: opts.Clipboard,
		Mapper:    view,
	})
	a.editorAPI = newEditorAPI(a)
	a.statusBar.SetSource(opts.Source)

	a.subscribeEvents()
	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	if opts.Content != "" {
		if err := a.widget.Reset(opts.Content); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("failed to load initial content: %w", err)
		}
	}
	return a, nil
}

// Widget returns the editing handle.
func (a *App) Widget() *host.Widget {
	return a.widget
}

// Run starts the event loop and draws until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.closeRenderer()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("%s | Ctrl+K Command | Ctrl+Q Quit", config.AppName)
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, nil)
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop feeds terminal events to HandleEvent until the screen closes.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		if a.HandleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// HandleEvent processes one terminal event and reports whether the screen
// needs redrawing.
func (a *App) HandleEvent(ev tcell.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventPaste:
		return a.handlePaste(e)
	case *tcell.EventKey:
		if a.pasting {
			a.bufferPastedKey(e)
			return false
		}
		return a.handleKey(e)
	case *tcell.EventMouse:
		return a.handleMouse(e)
	}
	return false
}

// handlePaste collects the keys of a bracketed paste and inserts them as
// one edit when the paste ends.
func (a *App) handlePaste(e *tcell.EventPaste) bool {
	if e.Start() {
		a.pasting = true
		a.pasteBuf.Reset()
		return false
	}
	a.pasting = false
	text := a.pasteBuf.String()
	a.pasteBuf.Reset()
	if text == "" {
		return false
	}
	a.report(a.widget.PasteText(text))
	return true
}

func (a *App) bufferPastedKey(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		a.pasteBuf.WriteRune(e.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		a.pasteBuf.WriteByte('\n')
	case tcell.KeyTab:
		a.pasteBuf.WriteByte('\t')
	}
}

func (a *App) handleMouse(e *tcell.EventMouse) bool {
	if e.Buttons()&tcell.Button1 == 0 {
		return false
	}
	x, y := e.Position()
	_, height := a.tuiManager.Size()
	if y >= a.textHeight(height) {
		return false
	}
	return a.widget.SelectFromHost(x, y, e.Modifiers()&tcell.ModShift != 0)
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	a.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := a.inputProcessor.ProcessEvent(ev)
	if actionEvent.Action == input.ActionQuit {
		a.signalQuit()
		return false
	}
	if a.cmdMode {
		return a.handleActionCommand(actionEvent)
	}
	return a.handleAction(actionEvent)
}

// handleAction runs an editing action. It reports whether anything was
// handled.
func (a *App) handleAction(ae input.ActionEvent) bool {
	w := a.widget
	var err error
	switch ae.Action {
	case input.ActionMoveLeft:
		w.MoveCaret(editor.Backward, ae.Extend)
	case input.ActionMoveRight:
		w.MoveCaret(editor.Forward, ae.Extend)
	case input.ActionMoveUp:
		w.MoveParagraph(editor.Backward, ae.Extend)
	case input.ActionMoveDown:
		w.MoveParagraph(editor.Forward, ae.Extend)
	case input.ActionMoveHome:
		w.MoveHome(ae.Extend)
	case input.ActionMoveEnd:
		w.MoveEnd(ae.Extend)
	case input.ActionSelectAll:
		w.SelectAll()
	case input.ActionInsertRune:
		err = w.InsertText(string(ae.Rune))
	case input.ActionInsertNewParagraph:
		err = w.InsertNewParagraph()
	case input.ActionDeleteBackward:
		err = w.Delete(editor.Backward)
	case input.ActionDeleteForward:
		err = w.Delete(editor.Forward)
	case input.ActionUndo:
		err = w.Undo()
	case input.ActionRedo:
		err = w.Redo()
	case input.ActionCopy:
		err = w.Copy()
		if err == nil {
			a.statusBar.SetTemporaryMessage("Copied")
		}
	case input.ActionCut:
		err = w.Cut()
	case input.ActionPaste:
		err = w.Paste()
	case input.ActionEnterCommandMode:
		a.cmdMode = true
		a.cmdInput = a.cmdInput[:0]
		logger.DebugTagf("command", "entering command mode")
	case input.ActionCancel:
		a.statusBar.ResetTemporaryMessage()
	default:
		return false
	}
	a.report(err)
	return true
}

// report shows an edit error in the status bar.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	logger.Warnf("App: edit failed: %v", err)
	if errors.Is(err, editor.ErrInvariant) {
		a.statusBar.SetTemporaryMessage("Edit rejected: %v", err)
		return
	}
	a.statusBar.SetTemporaryMessage("Error: %v", err)
}

// signalQuit stops the draw loop. It is safe to call more than once.
func (a *App) signalQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) closeRenderer() {
	if c, ok := a.renderer.(interface{ Close() }); ok {
		c.Close()
	}
}

// GetTheme returns the active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme activates the named theme and requests a redraw.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.themeManager.Current().Name})
	a.requestRedraw()
	return nil
}

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
}
