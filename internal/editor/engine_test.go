package editor

import (
	"testing"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shape renders the content of each paragraph as "T:text" / "E:glyph".
func shape(t tree.Tree) [][]string {
	out := make([][]string, len(t))
	for i, p := range t {
		out[i] = []string{}
		for _, n := range p.Content() {
			switch v := n.(type) {
			case node.Text:
				out[i] = append(out[i], "T:"+v.Content)
			case node.Emoji:
				out[i] = append(out[i], "E:"+v.Glyph)
			}
		}
	}
	return out
}

func newEngine(t *testing.T, text string) *Engine {
	t.Helper()
	e := New(Options{Strict: true})
	require.NoError(t, e.Reset(text))
	require.False(t, e.CanUndo())
	return e
}

func pt(id, off int) selection.Point {
	return selection.Point{NodeIndex: id, Offset: off}
}

func caretAt(id, off int) *selection.Selection {
	return selection.Collapsed(pt(id, off))
}

func TestNewEngine(t *testing.T) {
	e := New(Options{})
	assert.True(t, e.IsEmpty())
	assert.Equal(t, caretAt(tree.RootParagraphIndex, 0), e.Selection())
	assert.Equal(t, 1, e.NodeCount())
}

func TestTypingTwoCharactersThenUndo(t *testing.T) {
	e := New(Options{Strict: true})
	require.NoError(t, e.InsertText("a"))
	require.NoError(t, e.InsertText("b"))

	assert.Equal(t, [][]string{{"T:ab"}}, shape(e.Tree()))
	assert.Equal(t, caretAt(2, 2), e.Selection())

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"T:a"}}, shape(e.Tree()))

	ok, err = e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tree.New(), e.Tree())
	assert.Equal(t, caretAt(1, 0), e.Selection())

	ok, err = e.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertEmojiSplitsText(t *testing.T) {
	e := newEngine(t, "hello")
	require.True(t, e.SetSelection(pt(2, 2)))

	require.NoError(t, e.InsertEmoji("😀"))
	assert.Equal(t, [][]string{{"T:he", "E:😀", "T:llo"}}, shape(e.Tree()))
	sel := e.Selection()
	assert.Equal(t, 1, sel.Start.Offset)
	n, _ := tree.Find(e.Tree(), sel.Start.NodeIndex)
	assert.Equal(t, node.KindEmoji, n.Kind())

	require.True(t, e.SettleCaret())
	n, _ = tree.Find(e.Tree(), e.Selection().Start.NodeIndex)
	assert.Equal(t, node.Text{ID: n.Index(), Content: "llo"}, n)

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "hello"}}}, e.Tree())
	assert.Equal(t, caretAt(2, 2), e.Selection())
}

func TestInsertEmojiAtTextEdges(t *testing.T) {
	e := newEngine(t, "ab")
	require.NoError(t, e.InsertEmoji("👍🏽"))
	e.MoveHome(false)
	require.NoError(t, e.InsertEmoji("😀"))
	assert.Equal(t, [][]string{{"E:😀", "T:ab", "E:👍🏽"}}, shape(e.Tree()))
}

func TestInsertEmojiRejectsSeveralGraphemes(t *testing.T) {
	e := newEngine(t, "ab")
	err := e.InsertEmoji("😀😀")
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Equal(t, "ab", e.Text())

	lenient := New(Options{})
	assert.NoError(t, lenient.InsertEmoji("😀😀"))
	assert.True(t, lenient.IsEmpty())
}

func TestBackspaceMergesParagraphs(t *testing.T) {
	e := newEngine(t, "ab\ncd")
	require.Equal(t, [][]string{{"T:ab"}, {"T:cd"}}, shape(e.Tree()))
	require.True(t, e.SetSelection(pt(4, 0)))

	require.NoError(t, e.Delete(Backward))
	assert.Len(t, e.Tree(), 1)
	assert.Equal(t, "abcd", e.Text())
	assert.Equal(t, caretAt(2, 2), e.Selection())

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"T:ab"}, {"T:cd"}}, shape(e.Tree()))
	assert.Equal(t, caretAt(4, 0), e.Selection())
}

func TestDeleteRangeAcrossParagraphs(t *testing.T) {
	e := newEngine(t, "hello\ncd")
	before := e.Tree()
	require.True(t, e.SetSelection(pt(2, 2), pt(4, 1)))

	require.NoError(t, e.Delete(Backward))
	assert.Equal(t, [][]string{{"T:he", "T:d"}}, shape(e.Tree()))
	assert.Equal(t, caretAt(2, 2), e.Selection())

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Tree())
	assert.Equal(t, &selection.Selection{Start: pt(2, 2), End: pt(4, 1)}, e.Selection())
}

func TestPasteIntoEmptyEditor(t *testing.T) {
	e := New(Options{Strict: true})
	require.NoError(t, e.PasteText("hi 😀\nbye"))
	assert.Equal(t, [][]string{{"T:hi ", "E:😀"}, {"T:bye"}}, shape(e.Tree()))
	assert.Equal(t, "hi 😀\nbye", e.Text())

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, e.IsEmpty())
	assert.False(t, e.CanUndo(), "paste is a single transaction")
}

func TestPasteInsideText(t *testing.T) {
	e := newEngine(t, "abcd")
	before := e.Tree()
	require.True(t, e.SetSelection(pt(2, 2)))

	require.NoError(t, e.PasteText("X\nY"))
	assert.Equal(t, "abX\nYcd", e.Text())
	assert.Equal(t, [][]string{{"T:ab", "T:X"}, {"T:Y", "T:cd"}}, shape(e.Tree()))

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Tree())
}

func TestPasteAtGapMovesFollowingNodes(t *testing.T) {
	e := newEngine(t, "ab😀cd")
	before := e.Tree()

	// Caret after the emoji, before "cd".
	emoji := before[0][2]
	require.True(t, e.SetSelection(pt(emoji.Index(), 1)))
	require.NoError(t, e.PasteText("1\n2\n"))
	assert.Equal(t, "ab😀1\n2\ncd", e.Text())

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Tree())
}

func TestGraphemeClustersStayWhole(t *testing.T) {
	family := "\U0001F468\u200D\U0001F469\u200D\U0001F467"
	e := New(Options{Strict: true})
	require.NoError(t, e.InsertText("a👍🏽b"+family))
	assert.Equal(t, [][]string{{"T:a", "E:👍🏽", "T:b", "E:" + family}}, shape(e.Tree()))

	require.NoError(t, e.Delete(Backward))
	assert.Equal(t, "a👍🏽b", e.Text())
}

func TestCombiningMarkJoinsCluster(t *testing.T) {
	e := New(Options{Strict: true})
	require.NoError(t, e.InsertText("e"))
	require.NoError(t, e.InsertText("\u0301"))
	assert.Equal(t, caretAt(2, 1), e.Selection())

	require.NoError(t, e.Delete(Backward))
	assert.True(t, e.IsEmpty())
}

func TestRuneByRuneTypingJoinsEmojiCluster(t *testing.T) {
	tests := []struct {
		name  string
		glyph string
	}{
		{"skin tone", "👍🏽"},
		{"zwj", "\U0001F468\u200D\U0001F4BB"},
		{"flag", "🇮🇷"},
		{"emoji selector", "\u2764\uFE0F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, "ab")
			require.True(t, e.SetSelection(pt(2, 1)))

			var steps []tree.Tree
			for _, r := range tt.glyph {
				steps = append(steps, e.Tree())
				require.NoError(t, e.InsertText(string(r)))
			}
			assert.Equal(t, [][]string{{"T:a", "E:" + tt.glyph, "T:b"}}, shape(e.Tree()))
			assert.Equal(t, "a"+tt.glyph+"b", e.Text())

			sel := e.Selection()
			pi, ni, ok := tree.Locate(e.Tree(), sel.End.NodeIndex)
			require.True(t, ok)
			assert.Equal(t, node.Emoji{ID: sel.End.NodeIndex, Glyph: tt.glyph}, e.Tree()[pi][ni])
			assert.Equal(t, 1, sel.End.Offset)

			for i := len(steps) - 1; i >= 0; i-- {
				ok, err := e.Undo()
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, steps[i], e.Tree())
			}
		})
	}
}

func TestRuneByRuneTypingAtDocumentEnd(t *testing.T) {
	e := New(Options{Strict: true})
	for _, r := range "hi👍🏽" {
		require.NoError(t, e.InsertText(string(r)))
	}
	assert.Equal(t, [][]string{{"T:hi", "E:👍🏽"}}, shape(e.Tree()))

	require.NoError(t, e.Delete(Backward))
	assert.Equal(t, "hi", e.Text())
}

func TestKeycapTypedRuneByRuneStaysText(t *testing.T) {
	e := New(Options{Strict: true})
	for _, r := range "1\uFE0F\u20E3" {
		require.NoError(t, e.InsertText(string(r)))
	}
	assert.Equal(t, [][]string{{"T:1\uFE0F\u20E3"}}, shape(e.Tree()))
}

func TestInsertNewParagraph(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		caret  selection.Point
		want   [][]string
		caretK node.Kind
	}{
		{"middle of text", "hello", pt(2, 2), [][]string{{"T:he"}, {"T:llo"}}, node.KindText},
		{"end of text", "hello", pt(2, 5), [][]string{{"T:hello"}, {}}, node.KindParagraph},
		{"start of text", "hello", pt(2, 0), [][]string{{}, {"T:hello"}}, node.KindText},
		{"paragraph node", "hello", pt(1, 0), [][]string{{}, {"T:hello"}}, node.KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.text)
			before := e.Tree()
			require.True(t, e.SetSelection(tt.caret))

			require.NoError(t, e.InsertNewParagraph())
			assert.Equal(t, tt.want, shape(e.Tree()))
			sel := e.Selection()
			n, ok := tree.Find(e.Tree(), sel.Start.NodeIndex)
			require.True(t, ok)
			assert.Equal(t, tt.caretK, n.Kind())
			assert.Equal(t, 0, sel.Start.Offset)
			para, _, _ := tree.Locate(e.Tree(), n.Index())
			assert.Equal(t, 1, para, "caret moves into the new paragraph")

			_, err := e.Undo()
			require.NoError(t, err)
			assert.Equal(t, before, e.Tree())
			assert.Equal(t, selection.Collapsed(tt.caret), e.Selection())
		})
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	e := newEngine(t, "hello\nworld")
	before := e.Tree()
	require.True(t, e.SetSelection(pt(2, 0), pt(4, 5)))

	require.NoError(t, e.InsertText("x"))
	assert.Equal(t, "x", e.Text())
	assert.Equal(t, caretAt(2, 1), e.Selection(), "first text node is reused")

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Tree())
}

func TestRedo(t *testing.T) {
	e := New(Options{Strict: true})
	require.NoError(t, e.InsertText("a"))
	after := e.Tree()

	_, err := e.Undo()
	require.NoError(t, err)
	require.True(t, e.CanRedo())

	ok, err := e.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, after, e.Tree())
	assert.Equal(t, caretAt(2, 1), e.Selection())

	_, _ = e.Undo()
	require.NoError(t, e.InsertText("z"))
	ok, _ = e.Redo()
	assert.False(t, ok, "new edit drops redo")
}

func TestCutAndCopy(t *testing.T) {
	e := newEngine(t, "hello\ncd")
	assert.Equal(t, "", e.Copy())

	require.True(t, e.SetSelection(pt(2, 1), pt(4, 1)))
	assert.Equal(t, "ello\nc", e.Copy())

	text, err := e.Cut()
	require.NoError(t, err)
	assert.Equal(t, "ello\nc", text)
	assert.Equal(t, "hd", e.Text())

	text, err = e.Cut()
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestSelectedTextBackwardRange(t *testing.T) {
	e := newEngine(t, "ab😀cd")
	emoji := e.Tree()[0][2]
	require.True(t, e.SetSelection(pt(emoji.Index(), 1), pt(2, 1)))
	assert.Equal(t, "b😀", e.SelectedText())
}

func TestSetContentIsOneTransaction(t *testing.T) {
	e := newEngine(t, "one\ntwo")
	before := e.Tree()
	require.NoError(t, e.SetContent("x😀\n\ny"))
	assert.Equal(t, "x😀\n\ny", e.Text())
	assert.Equal(t, [][]string{{"T:x", "E:😀"}, {}, {"T:y"}}, shape(e.Tree()))

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Tree())
	assert.False(t, e.CanUndo())
}

func TestSetContentEmptyClears(t *testing.T) {
	e := newEngine(t, "a\nb")
	require.NoError(t, e.SetContent(""))
	assert.True(t, e.IsEmpty())
	assert.Equal(t, tree.New(), e.Tree())
}

func TestSetSelectionRejectsUnknownNodes(t *testing.T) {
	e := newEngine(t, "ab")
	assert.False(t, e.SetSelection(pt(99, 0)))
	assert.False(t, e.SetSelection(pt(2, 3)))
	assert.True(t, e.SetSelection(pt(2, 1)))
}

func TestSelectionListenerFiresOncePerEdit(t *testing.T) {
	e := newEngine(t, "ab")
	var calls int
	e.OnSelectionChange(func(*selection.Selection) { calls++ })
	require.NoError(t, e.InsertText("c"))
	assert.Equal(t, 1, calls)
	require.NoError(t, e.InsertNewParagraph())
	assert.Equal(t, 2, calls)
}
