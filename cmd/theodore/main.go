// cmd/theodore/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"path/filepath"

	"github.com/fatemehkarimi/theodore/internal/app"
	"github.com/fatemehkarimi/theodore/internal/clipboard"
	"github.com/fatemehkarimi/theodore/internal/config"
	"github.com/fatemehkarimi/theodore/internal/emoji"
	"github.com/fatemehkarimi/theodore/internal/host"
	"github.com/fatemehkarimi/theodore/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName)
	args, err := flags.ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	logOutput, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
	}
	defer closeLog()
	logger.SetDebugFilter(*flags.DebugLog)
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s...", config.AppName, version)
	if cfgErr != nil {
		logger.Warnf("Config: %v", cfgErr)
	}

	// --- Initial content ---
	var source, content string
	if len(args) > 0 {
		source = args[0]
		data, err := os.ReadFile(source)
		if err != nil {
			logger.Errorf("Error reading '%s': %v", source, err)
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
			os.Exit(1)
		}
		content = string(data)
	}

	renderer, err := emoji.New(cfg.Editor.EmojiRenderer, cfg.Editor.LuaScript)
	if err != nil {
		logger.Warnf("Emoji renderer '%s' unavailable, using native glyphs: %v", cfg.Editor.EmojiRenderer, err)
		renderer = emoji.Native{}
	}

	var cb host.Clipboard = &clipboard.Register{}
	if cfg.Editor.SystemClipboard {
		cb = clipboard.NewSystem()
	}

	themesDir := ""
	if p := config.DefaultPath(); p != "" {
		themesDir = filepath.Join(filepath.Dir(p), config.ThemesDirName)
	}

	// --- Create and Run App ---
	theodore, err := app.NewApp(app.Options{
		Config:    cfg,
		Renderer:  renderer,
		Clipboard: cb,
		ThemesDir: themesDir,
		Source:    source,
		Content:   content,
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := theodore.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLog opens the log target. "-" means stderr; an empty path uses the
// default log file in the working directory.
func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = config.DefaultLogFileName
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
