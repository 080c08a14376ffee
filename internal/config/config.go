// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fatemehkarimi/theodore/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	// Strict makes invariant violations fail the edit with an error
	// instead of logging a warning and skipping it.
	Strict          bool   `toml:"strict"`
	MaxHistory      int    `toml:"max_history"`
	SystemClipboard bool   `toml:"system_clipboard"`
	EmojiRenderer   string `toml:"emoji_renderer"` // native, code or lua
	LuaScript       string `toml:"lua_script"`     // required by the lua renderer
	ThemeFile       string `toml:"theme_file"`
	StatusBarHeight int    `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			MaxHistory:      DefaultMaxHistory,
			SystemClipboard: SystemClipboard,
			EmojiRenderer:   EmojiRendererNative,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	_, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// The logger is not up yet; the caller reports this after Init.
		return fmt.Errorf("config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.StatusBarHeight < 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	switch c.Editor.EmojiRenderer {
	case EmojiRendererNative, EmojiRendererCode:
	case EmojiRendererLua:
		if c.Editor.LuaScript == "" {
			c.Editor.EmojiRenderer = defaults.Editor.EmojiRenderer
		}
	default:
		c.Editor.EmojiRenderer = defaults.Editor.EmojiRenderer
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when that directory cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// Load builds a configuration from defaults, the file at path (DefaultPath
// when empty) and flag overrides, in that order. A file error is returned
// alongside a usable configuration.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	var err error
	if path != "" {
		err = loadFromFile(cfg, path)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once; later calls return the first result.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}
