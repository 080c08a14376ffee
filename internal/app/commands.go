package app

import (
	"fmt"
	"strings"

	"github.com/fatemehkarimi/theodore/internal/input"
	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/segment"
)

// handleActionCommand edits and runs the command line opened by Ctrl+K.
func (a *App) handleActionCommand(ae input.ActionEvent) bool {
	switch ae.Action {
	case input.ActionInsertRune:
		a.cmdInput = append(a.cmdInput, ae.Rune)
	case input.ActionDeleteBackward:
		if len(a.cmdInput) == 0 {
			a.closeCommandLine()
			break
		}
		a.cmdInput = a.cmdInput[:len(a.cmdInput)-1]
	case input.ActionInsertNewParagraph:
		line := string(a.cmdInput)
		a.closeCommandLine()
		a.executeCommand(line)
	case input.ActionCancel:
		a.closeCommandLine()
		logger.DebugTagf("command", "command line canceled")
	default:
		return false
	}
	return true
}

func (a *App) closeCommandLine() {
	a.cmdMode = false
	a.cmdInput = a.cmdInput[:0]
}

// executeCommand parses line and runs the registered command it names.
func (a *App) executeCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		a.statusBar.ResetTemporaryMessage()
		return
	}
	name, args := parts[0], parts[1:]

	cmdFunc, exists := a.commands[name]
	if !exists {
		a.statusBar.SetTemporaryMessage("Unknown command: %s", name)
		return
	}
	logger.DebugTagf("command", "executing ':%s' with args %v", name, args)
	if err := cmdFunc(args); err != nil {
		a.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
	}
}

// registerAppCommands registers the built-in commands.
func registerAppCommands(app *App) {
	api := app.editorAPI

	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", api.GetTheme().Name)
			return nil
		}
		themeName := strings.Join(args, " ")
		if err := api.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(api.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", api.GetTheme().Name)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		return nil
	}

	// emoji accepts a glyph or a unified code such as 1f44d-1f3fd.
	emojiCmdFunc := func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: emoji <glyph|code>")
		}
		glyph := args[0]
		if segment.GraphemeCount(glyph) != 1 || !segment.IsEmoji(glyph) {
			native, err := segment.Native(glyph)
			if err != nil {
				return err
			}
			glyph = native
		}
		return api.InsertEmoji(glyph)
	}

	clearCmdFunc := func(args []string) error {
		return app.widget.SetContent("")
	}

	for name, fn := range map[string]func([]string) error{
		"theme":  themeCmdFunc,
		"themes": themeListCmdFunc,
		"emoji":  emojiCmdFunc,
		"clear":  clearCmdFunc,
	} {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}
