// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fatemehkarimi/theodore/internal/logger"
)

// Manager holds loaded themes and the active one.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
}

// NewManager loads the built-in themes and every .toml file in themesDir.
// An empty themesDir skips the directory scan. Dusk is active initially.
func NewManager(themesDir string) *Manager {
	m := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	for _, t := range []*Theme{&Dusk, &Paper} {
		m.themes[strings.ToLower(t.Name)] = t
	}
	m.activeTheme = &Dusk

	if themesDir != "" {
		if err := m.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return m
}

// LoadThemesFromDir scans the themes directory and loads its .toml files.
// A missing directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}
	files, err := os.ReadDir(m.themesDir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(m.themesDir, file.Name())
		if _, err := m.Add(path); err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		loaded++
	}
	logger.Infof("Loaded %d custom themes.", loaded)
	return nil
}

// Add loads a theme file and registers it, replacing a theme of the same
// name.
func (m *Manager) Add(path string) (*Theme, error) {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return nil, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", t.Name, path, existing.Name)
	}
	m.themes[key] = t
	return t, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name, ignoring case.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name, ignoring case.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	t, ok := m.themes[strings.ToLower(name)]
	return t, ok
}
