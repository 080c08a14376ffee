// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/fatemehkarimi/theodore/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Only flags the user actually set override the configuration.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	DebugLog        *bool
	Strict          *bool
	MaxHistory      *int
	SystemClipboard *bool
	EmojiRenderer   *string
	LuaScript       *string
	ThemeFile       *string
}

// NewFlags defines the flags on a new flag set named after the program.
func NewFlags(name string) *Flags {
	f := &Flags{set: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.DefineFlags()
	return f
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	if f.set == nil {
		f.set = flag.CommandLine
	}
	fs := f.set
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.Strict = fs.Bool("strict", false, "Fail edits on invariant violations instead of skipping them")
	f.MaxHistory = fs.Int("max-history", 0, "Number of undo transactions to keep - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.EmojiRenderer = fs.String("emoji", "", "Emoji renderer: native, code or lua - Overrides config file")
	f.LuaScript = fs.String("lua-script", "", "Lua script defining render(glyph, code) for the lua renderer")
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file")
}

// ParseFlags parses args into the Flags struct and returns the remaining
// non-flag arguments (the initial text file).
func (f *Flags) ParseFlags(args []string) ([]string, error) {
	if f.set == nil {
		f.DefineFlags()
	}
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f.set.Args(), nil
}

// ApplyOverrides updates cfg with the values of flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil || !f.set.Parsed() {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "strict":
			cfg.Editor.Strict = *f.Strict
		case "max-history":
			if *f.MaxHistory > 0 {
				cfg.Editor.MaxHistory = *f.MaxHistory
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "emoji":
			cfg.Editor.EmojiRenderer = strings.ToLower(*f.EmojiRenderer)
		case "lua-script":
			cfg.Editor.LuaScript = *f.LuaScript
		case "theme":
			cfg.Editor.ThemeFile = *f.ThemeFile
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
