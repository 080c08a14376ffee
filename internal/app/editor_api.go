package app

import (
	"fmt"

	"github.com/fatemehkarimi/theodore/internal/event"
	"github.com/fatemehkarimi/theodore/internal/plugin"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/theme"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// editorAPI implements plugin.EditorAPI on top of the App.
type editorAPI struct {
	app *App
}

var _ plugin.EditorAPI = (*editorAPI)(nil)

func newEditorAPI(a *App) *editorAPI {
	return &editorAPI{app: a}
}

func (api *editorAPI) Tree() tree.Tree                 { return api.app.widget.Tree() }
func (api *editorAPI) Text() string                    { return api.app.widget.Text() }
func (api *editorAPI) Selection() *selection.Selection { return api.app.widget.Selection() }
func (api *editorAPI) IsEmpty() bool                   { return api.app.widget.IsEmpty() }

func (api *editorAPI) InsertText(text string) error {
	return api.app.widget.InsertText(text)
}

func (api *editorAPI) InsertEmoji(glyph string) error {
	return api.app.widget.InsertEmoji(glyph)
}

func (api *editorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// RegisterCommand adds a command to the command line. Names are unique.
func (api *editorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := api.app.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	api.app.commands[name] = cmdFunc
	return nil
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

func (api *editorAPI) SetTheme(name string) error { return api.app.SetTheme(name) }
func (api *editorAPI) GetTheme() *theme.Theme     { return api.app.GetTheme() }
func (api *editorAPI) ListThemes() []string       { return api.app.themeManager.ListThemes() }
