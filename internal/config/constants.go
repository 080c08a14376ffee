package config

import "time"

// Base application details
const AppName = "theodore"
const ConfigDirName = "theodore"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "theodore.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultMaxHistory = 100
const SystemClipboard = true

// Emoji renderers accepted by editor.emoji_renderer.
const (
	EmojiRendererNative = "native"
	EmojiRendererCode   = "code"
	EmojiRendererLua    = "lua"
)
