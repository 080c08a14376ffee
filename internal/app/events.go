package app

import (
	"github.com/fatemehkarimi/theodore/internal/event"
	"github.com/fatemehkarimi/theodore/internal/logger"
)

// subscribeEvents wires the app's own reactions to widget events. Handlers
// run on the goroutine that caused the event and must not take a.mu.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeContentChanged, a.handleContentChanged)
	a.eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

// handleContentChanged tracks whether the document differs from what was
// loaded.
func (a *App) handleContentChanged(e event.Event) bool {
	data, ok := e.Data.(event.ContentChangedData)
	if !ok {
		logger.Warnf("App: ContentChanged event with unexpected data type: %T", e.Data)
		return false
	}
	a.modified = data.Op != "reset"
	a.requestRedraw()
	return false
}

func (a *App) handleSelectionChanged(e event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ThemeChangedData); ok {
		logger.Debugf("App: theme changed to '%s'", data.Name)
	}
	return false
}
