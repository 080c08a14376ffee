// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatemehkarimi/theodore/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behaviour of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: 4 * time.Second}
}

// CaretInfo is what the status line reports about the caret.
type CaretInfo struct {
	Paragraph  int // 1-based
	Paragraphs int
	Column     int // 1-based grapheme column
	Selected   int // graphemes in the selection, 0 for a caret
	RTL        bool
	Modified   bool
}

// StatusBar is the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.Mutex
	now    func() time.Time

	source string
	caret  CaretInfo

	commandActive bool
	commandInput  string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetSource names where the initial text came from.
func (sb *StatusBar) SetSource(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.source = name
}

// SetCaretInfo updates the caret position shown.
func (sb *StatusBar) SetCaretInfo(info CaretInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.caret = info
}

// SetCommandInput shows the command line while active is set.
func (sb *StatusBar) SetCommandInput(input string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandInput = input
	sb.commandActive = active
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) defaultText() string {
	source := sb.source
	if source == "" {
		source = "[scratch]"
	}
	modified := ""
	if sb.caret.Modified {
		modified = " [+]"
	}
	dir := ""
	if sb.caret.RTL {
		dir = " RTL"
	}
	sel := ""
	if sb.caret.Selected > 0 {
		sel = fmt.Sprintf(" (%d selected)", sb.caret.Selected)
	}
	return fmt.Sprintf("%s%s -- Para: %d/%d, Col: %d%s%s",
		source, modified, sb.caret.Paragraph, sb.caret.Paragraphs, sb.caret.Column, sel, dir)
}

// Text returns the line Draw would show, and the style name it uses.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.commandActive {
		return ":" + sb.commandInput, theme.StyleStatusBarCommand
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, theme.StyleStatusBarMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if sb.caret.RTL {
		return sb.defaultText(), theme.StyleStatusBarRTL
	}
	return sb.defaultText(), theme.StyleStatusBar
}

// Draw renders the status bar on the last screen row. It returns the cell
// after the text, where the command line cursor goes.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) int {
	if height <= 0 || width <= 0 {
		return 0
	}
	y := height - 1
	text, styleName := sb.Text()
	style := th.GetStyle(styleName)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
