package app

import (
	"strings"
	"testing"

	"github.com/fatemehkarimi/theodore/internal/clipboard"
	"github.com/fatemehkarimi/theodore/internal/config"
	"github.com/fatemehkarimi/theodore/internal/emoji"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, content string) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	cfg := config.NewDefaultConfig()
	cfg.Editor.Strict = true
	a, err := NewApp(Options{
		Config:    cfg,
		Screen:    s,
		Renderer:  emoji.Code{},
		Clipboard: &clipboard.Register{},
		ThemesDir: t.TempDir(),
		Content:   content,
	})
	require.NoError(t, err)
	t.Cleanup(a.tuiManager.Close)
	s.SetSize(40, 6)
	return a, s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, comb, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
		for _, c := range comb {
			b.WriteRune(c)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestTypingDrawsDocumentAndCaret(t *testing.T) {
	a, s := newTestApp(t, "")
	a.drawEditor()
	assert.Equal(t, Placeholder, rowText(s, 0))

	typeText(a, "hi")
	a.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
	typeText(a, "yo")
	a.drawEditor()

	assert.Equal(t, "hi\nyo", a.widget.Text())
	assert.Equal(t, "hi", rowText(s, 0))
	assert.Equal(t, "yo", rowText(s, 1))
	x, y, visible := s.GetCursor()
	assert.Equal(t, []int{2, 1}, []int{x, y})
	assert.True(t, visible)
	assert.Equal(t, "[scratch] [+] -- Para: 2/2, Col: 3", rowText(s, 5))
}

func TestBracketedPasteIsOneEdit(t *testing.T) {
	a, s := newTestApp(t, "")
	a.HandleEvent(tcell.NewEventPaste(true))
	typeText(a, "a😀")
	a.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
	typeText(a, "b")
	assert.True(t, a.widget.IsEmpty(), "nothing is inserted until the paste ends")
	assert.True(t, a.HandleEvent(tcell.NewEventPaste(false)))

	assert.Equal(t, "a😀\nb", a.widget.Text())
	a.drawEditor()
	assert.Equal(t, "a:1f600:", rowText(s, 0))

	a.HandleEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.True(t, a.widget.IsEmpty())
}

func TestTypedEmojiSequenceIsOneNode(t *testing.T) {
	a, s := newTestApp(t, "")
	typeText(a, "👍🏽")
	a.drawEditor()
	typeText(a, "\u2764")
	a.drawEditor()
	typeText(a, "\uFE0F")
	a.drawEditor()

	p := a.widget.Tree()[0]
	require.Len(t, p.Content(), 2)
	assert.Equal(t, "👍🏽\u2764\uFE0F", a.widget.Text())
	assert.Equal(t, ":1f44d-1f3fd::2764-fe0f:", rowText(s, 0))

	a.HandleEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	a.HandleEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	assert.True(t, a.widget.IsEmpty())
}

func TestUndoRedoCopyPasteKeys(t *testing.T) {
	a, _ := newTestApp(t, "")
	typeText(a, "ab")
	a.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	a.HandleEvent(key(tcell.KeyCtrlX, tcell.ModCtrl))
	assert.True(t, a.widget.IsEmpty())

	a.HandleEvent(key(tcell.KeyCtrlV, tcell.ModCtrl))
	a.HandleEvent(key(tcell.KeyCtrlV, tcell.ModCtrl))
	assert.Equal(t, "abab", a.widget.Text())

	a.HandleEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, "ab", a.widget.Text())
	a.HandleEvent(key(tcell.KeyCtrlY, tcell.ModCtrl))
	assert.Equal(t, "abab", a.widget.Text())
}

func TestMouseClickMovesCaret(t *testing.T) {
	a, s := newTestApp(t, "hello")
	a.drawEditor()

	assert.True(t, a.HandleEvent(tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone)))
	typeText(a, "X")
	assert.Equal(t, "heXllo", a.widget.Text())

	assert.False(t, a.HandleEvent(tcell.NewEventMouse(1, 5, tcell.Button1, tcell.ModNone)), "status bar row")
	a.drawEditor()
	x, y, _ := s.GetCursor()
	assert.Equal(t, []int{3, 0}, []int{x, y})
}

func runCommand(a *App, line string) {
	a.HandleEvent(key(tcell.KeyCtrlK, tcell.ModCtrl))
	typeText(a, line)
	a.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
}

func TestCommandLine(t *testing.T) {
	a, s := newTestApp(t, "one two")

	a.HandleEvent(key(tcell.KeyCtrlK, tcell.ModCtrl))
	typeText(a, "wx")
	a.HandleEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	typeText(a, "c")
	a.drawEditor()
	assert.Equal(t, ":wc", rowText(s, 5))
	a.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
	assert.Equal(t, "one two", a.widget.Text(), "command keys never reach the document")
	text, _ := a.statusBar.Text()
	assert.Equal(t, "Paragraphs: 1, Words: 2, Graphemes: 7, Emoji: 0", text)

	runCommand(a, "emoji 1f44d-1f3fd")
	assert.Equal(t, "one two👍🏽", a.widget.Text())
	runCommand(a, "emoji 😀")
	assert.Equal(t, "one two👍🏽😀", a.widget.Text())

	runCommand(a, "theme paper")
	assert.Equal(t, "Paper", a.GetTheme().Name)

	runCommand(a, "nope")
	text, _ = a.statusBar.Text()
	assert.Equal(t, "Unknown command: nope", text)

	runCommand(a, "clear")
	assert.True(t, a.widget.IsEmpty())
	a.HandleEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, "one two👍🏽😀", a.widget.Text())
}

func TestCommandLineCancel(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.HandleEvent(key(tcell.KeyCtrlK, tcell.ModCtrl))
	typeText(a, "clear")
	a.HandleEvent(key(tcell.KeyEscape, tcell.ModNone))
	assert.False(t, a.cmdMode)
	typeText(a, "x")
	assert.Equal(t, "x", a.widget.Text())
}

func TestQuitKey(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.HandleEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	a.HandleEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	select {
	case <-a.quit:
	default:
		t.Fatal("quit was not signalled")
	}
}

func TestInitialContentIsNotModified(t *testing.T) {
	a, _ := newTestApp(t, "שלום")
	info := a.caretInfo()
	assert.False(t, info.Modified)
	assert.True(t, info.RTL)
	assert.Equal(t, 5, info.Column)
	assert.False(t, a.widget.CanUndo())
}
