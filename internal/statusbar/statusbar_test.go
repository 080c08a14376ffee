package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/fatemehkarimi/theodore/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultText(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetCaretInfo(CaretInfo{Paragraph: 2, Paragraphs: 3, Column: 5, Selected: 4, Modified: true})
	text, style := sb.Text()
	assert.Equal(t, "[scratch] [+] -- Para: 2/3, Col: 5 (4 selected)", text)
	assert.Equal(t, theme.StyleStatusBar, style)

	sb.SetSource("notes.txt")
	sb.SetCaretInfo(CaretInfo{Paragraph: 1, Paragraphs: 1, Column: 1, RTL: true})
	text, style = sb.Text()
	assert.Equal(t, "notes.txt -- Para: 1/1, Col: 1 RTL", text)
	assert.Equal(t, theme.StyleStatusBarRTL, style)
}

func TestTemporaryMessageExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(Config{MessageTimeout: time.Second})
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("copied %d graphemes", 3)
	text, style := sb.Text()
	assert.Equal(t, "copied 3 graphemes", text)
	assert.Equal(t, theme.StyleStatusBarMessage, style)

	now = now.Add(2 * time.Second)
	text, _ = sb.Text()
	assert.True(t, strings.HasPrefix(text, "[scratch]"))

	sb.SetTemporaryMessage("again")
	sb.ResetTemporaryMessage()
	text, _ = sb.Text()
	assert.NotEqual(t, "again", text)
}

func TestCommandInputWins(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("hello")
	sb.SetCommandInput("emoji 1f600", true)
	text, style := sb.Text()
	assert.Equal(t, ":emoji 1f600", text)
	assert.Equal(t, theme.StyleStatusBarCommand, style)

	sb.SetCommandInput("", false)
	text, _ = sb.Text()
	assert.Equal(t, "hello", text)
}

func TestDrawClipsToWidth(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(6, 2)

	sb := New(DefaultConfig())
	sb.SetCommandInput("wc😀", true)
	end := sb.Draw(s, 6, 2, &theme.Dusk)
	assert.Equal(t, 5, end)

	r, _, style, _ := s.GetContent(3, 1)
	assert.Equal(t, '😀', r)
	assert.Equal(t, theme.Dusk.GetStyle(theme.StyleStatusBarCommand), style)

	sb.SetCommandInput("wc😀😀", true)
	assert.Equal(t, 5, sb.Draw(s, 6, 2, &theme.Dusk), "a wide cluster that does not fit is dropped")
}
