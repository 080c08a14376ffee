// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the UI.
const (
	StyleDefault          = "Default"
	StyleSelection        = "Selection"
	StyleEmoji            = "Emoji"
	StylePlaceholder      = "Placeholder"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarCommand = "StatusBarCommand"
	StyleStatusBarRTL     = "StatusBar.rtl"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then the part before its first dot, then
// Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Built-in themes.
var (
	Dusk  Theme
	Paper Theme
)

func init() {
	duskBackground := tcell.NewHexColor(0x2a2f38)
	duskForeground := tcell.NewHexColor(0xc5cdd9)
	duskComment := tcell.NewHexColor(0x5c6370)
	duskYellow := tcell.NewHexColor(0xe5c07b)
	duskGreen := tcell.NewHexColor(0x98c379)
	duskCyan := tcell.NewHexColor(0x56b6c2)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(duskForeground)
	Dusk = Theme{
		Name:   "Dusk",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleSelection:        base.Reverse(true),
			StyleEmoji:            base.Foreground(duskYellow),
			StylePlaceholder:      base.Foreground(duskComment).Italic(true),
			StyleStatusBar:        tcell.StyleDefault.Background(duskBackground).Foreground(duskForeground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(duskBackground).Foreground(duskForeground).Bold(true),
			StyleStatusBarCommand: tcell.StyleDefault.Background(duskBackground).Foreground(duskGreen).Bold(true),
			StyleStatusBarRTL:     tcell.StyleDefault.Background(duskBackground).Foreground(duskCyan),
		},
	}

	paperInk := tcell.NewHexColor(0x383a42)
	paperBar := tcell.NewHexColor(0xe5e5e6)
	paperMuted := tcell.NewHexColor(0xa0a1a7)
	paperOrange := tcell.NewHexColor(0xc18401)
	paperBlue := tcell.NewHexColor(0x4078f2)

	paperBase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(paperInk)
	Paper = Theme{
		Name: "Paper",
		Styles: map[string]tcell.Style{
			StyleDefault:          paperBase,
			StyleSelection:        paperBase.Reverse(true),
			StyleEmoji:            paperBase.Foreground(paperOrange),
			StylePlaceholder:      paperBase.Foreground(paperMuted).Italic(true),
			StyleStatusBar:        tcell.StyleDefault.Background(paperBar).Foreground(paperInk),
			StyleStatusBarMessage: tcell.StyleDefault.Background(paperBar).Foreground(paperInk).Bold(true),
			StyleStatusBarCommand: tcell.StyleDefault.Background(paperBar).Foreground(paperBlue).Bold(true),
		},
	}
}
