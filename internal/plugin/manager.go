package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fatemehkarimi/theodore/internal/logger"
)

// ErrEmptyName is returned when registering a plugin without a name.
var ErrEmptyName = errors.New("plugin name cannot be empty")

// Manager handles registration, initialization and shutdown of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	api     EditorAPI
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin. It must be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: %w", ErrEmptyName)
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = p
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// sorted returns the registered plugins ordered by name.
func (m *Manager) sorted() []Plugin {
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Plugin, 0, len(names))
	for _, name := range names {
		out = append(out, m.plugins[name])
	}
	return out
}

// InitializePlugins calls Initialize on every plugin in name order. A
// failing plugin is logged and skipped; the number of failures is returned.
func (m *Manager) InitializePlugins(api EditorAPI) int {
	m.mu.Lock()
	m.api = api
	toInit := m.sorted()
	m.mu.Unlock()

	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(toInit))
	failed := 0
	for _, p := range toInit {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			failed++
			continue
		}
		logger.Debugf("Plugin Manager: Initialized plugin '%s'", p.Name())
	}
	return failed
}

// ShutdownPlugins calls Shutdown on every plugin.
func (m *Manager) ShutdownPlugins() {
	m.mu.RLock()
	toShutdown := m.sorted()
	m.mu.RUnlock()

	for _, p := range toShutdown {
		if err := p.Shutdown(); err != nil {
			logger.Warnf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
