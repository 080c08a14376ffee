package history

import (
	"testing"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caret(id, off int) *selection.Selection {
	return selection.Collapsed(selection.Point{NodeIndex: id, Offset: off})
}

func TestPushStampsTransactionAndSelection(t *testing.T) {
	current := caret(2, 1)
	m := NewManager(Options{}, func() *selection.Selection { return current })

	m.Push(Record{Command: InsertText, NodeIndex: 2, PrevState: "a"})
	m.Push(Record{Command: InsertNode, NodeIndex: 3, Selection: caret(9, 0)})
	require.Equal(t, 2, m.Len())

	top, ok := m.Top()
	require.True(t, ok)
	assert.Equal(t, 0, top.TransactionID)
	assert.Equal(t, 9, top.Selection.Start.NodeIndex)

	m.Commit()
	assert.Equal(t, 1, m.TransactionID())

	m.PushAndCommit(Record{Command: InsertText, NodeIndex: 4})
	top, _ = m.Top()
	assert.Equal(t, 1, top.TransactionID)
	assert.Equal(t, 2, top.Selection.Start.NodeIndex, "provider selection used when none given")

	current.Start.Offset = 7
	assert.Equal(t, 1, top.Selection.Start.Offset, "stamped selection is a copy")
}

func TestEmptyCommitKeepsID(t *testing.T) {
	m := NewManager(Options{}, nil)
	m.Commit()
	m.Commit()
	assert.Equal(t, 0, m.TransactionID())
}

func TestPopIsLIFO(t *testing.T) {
	m := NewManager(Options{}, nil)
	m.Push(Record{NodeIndex: 1}, Record{NodeIndex: 2})
	r, ok := m.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, r.NodeIndex)
	r, _ = m.Pop()
	assert.Equal(t, 1, r.NodeIndex)
	_, ok = m.Pop()
	assert.False(t, ok)
}

// Typing "a" then "b" into an empty paragraph, each in its own transaction.
func TestUndoRestoresTreeAndSelection(t *testing.T) {
	m := NewManager(Options{Strict: true}, nil)
	empty := tree.New()

	m.PushAndCommit(Record{Command: InsertText, NodeIndex: 2, Selection: caret(1, 0)})
	afterA := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "a"}}}

	m.PushAndCommit(Record{Command: InsertText, NodeIndex: 2, PrevState: "a", Selection: caret(2, 1)})
	afterB := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "ab"}}}

	res, err := m.Undo(afterB, caret(2, 2))
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.Equal(t, afterA, res.Tree)
	assert.Equal(t, caret(2, 1), res.Selection)

	res, err = m.Undo(res.Tree, res.Selection)
	require.NoError(t, err)
	assert.Equal(t, empty, res.Tree)
	assert.Equal(t, caret(1, 0), res.Selection)

	res, err = m.Undo(res.Tree, res.Selection)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.False(t, m.CanUndo())
}

func TestUndoRestoresSelectionOfFirstPushedRecord(t *testing.T) {
	m := NewManager(Options{Strict: true}, nil)
	before := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "hello"}}}

	// Emoji inserted mid-text: head trimmed, tail created, emoji created.
	m.PushAndCommit(
		Record{Command: ReplaceText, NodeIndex: 2, PrevState: node.Text{ID: 2, Content: "hello"}, Selection: caret(2, 2)},
		Record{Command: InsertText, NodeIndex: 4, Selection: caret(2, 5)},
		Record{Command: InsertNode, NodeIndex: 3, Selection: caret(4, 0)},
	)
	after := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "he"}, node.Emoji{ID: 3, Glyph: "😀"}, node.Text{ID: 4, Content: "llo"}}}

	res, err := m.Undo(after, caret(3, 1))
	require.NoError(t, err)
	assert.Equal(t, before, res.Tree)
	assert.Equal(t, caret(2, 2), res.Selection)
}

func TestStrictUndoFailureKeepsStack(t *testing.T) {
	m := NewManager(Options{Strict: true}, nil)
	m.PushAndCommit(Record{Command: InsertNode, NodeIndex: 40})
	start := tree.New()

	res, err := m.Undo(start, caret(1, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)
	assert.Equal(t, start, res.Tree)
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.CanRedo())
}

func TestLenientUndoSkipsFailingRecord(t *testing.T) {
	m := NewManager(Options{}, nil)
	withText := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "x"}}}
	m.PushAndCommit(
		Record{Command: InsertText, NodeIndex: 2, Selection: caret(1, 0)},
		Record{Command: InsertNode, NodeIndex: 40},
	)

	res, err := m.Undo(withText, caret(2, 1))
	require.NoError(t, err)
	assert.Equal(t, tree.New(), res.Tree)
	assert.Equal(t, 0, m.Len())
}

func TestRedoRestoresUndoneState(t *testing.T) {
	m := NewManager(Options{Strict: true}, nil)
	withText := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "x"}}}
	m.PushAndCommit(Record{Command: InsertText, NodeIndex: 2, Selection: caret(1, 0)})

	res, err := m.Undo(withText, caret(2, 1))
	require.NoError(t, err)
	require.True(t, m.CanRedo())

	res, ok := m.Redo()
	require.True(t, ok)
	assert.Equal(t, withText, res.Tree)
	assert.Equal(t, caret(2, 1), res.Selection)
	assert.Equal(t, 1, m.Len())

	_, ok = m.Redo()
	assert.False(t, ok)

	// Undo again after redo works on the restored records.
	res, err = m.Undo(res.Tree, res.Selection)
	require.NoError(t, err)
	assert.Equal(t, tree.New(), res.Tree)

	m.PushAndCommit(Record{Command: InsertNode, NodeIndex: 5})
	assert.False(t, m.CanRedo(), "a new edit drops redo state")
}

func TestMaxHistoryEvictsWholeTransactions(t *testing.T) {
	m := NewManager(Options{MaxHistory: 2}, nil)
	m.PushAndCommit(Record{NodeIndex: 1}, Record{NodeIndex: 2})
	m.PushAndCommit(Record{NodeIndex: 3})
	m.PushAndCommit(Record{NodeIndex: 4}, Record{NodeIndex: 5})

	assert.Equal(t, 3, m.Len())
	r, _ := m.Pop()
	assert.Equal(t, 5, r.NodeIndex)
	for m.Len() > 1 {
		m.Pop()
	}
	r, _ = m.Pop()
	assert.Equal(t, 3, r.NodeIndex)
}

func TestClear(t *testing.T) {
	m := NewManager(Options{}, nil)
	m.PushAndCommit(Record{NodeIndex: 1})
	m.Clear()
	assert.False(t, m.CanUndo())
	assert.Equal(t, 1, m.TransactionID())
}

func TestRevertRemoveNodesRestoresParagraphs(t *testing.T) {
	// "he|llo" / "c|d" with the range deleted and the paragraphs merged.
	merged := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "he"}, node.Text{ID: 4, Content: "d"}}}
	r := Record{
		Command: RemoveNodes,
		PrevState: []tree.Fragment{
			{node.Text{ID: 5, Content: "llo"}},
			{node.Paragraph{ID: 3}, node.Text{ID: 6, Content: "c"}},
		},
		PrevNodeIndex: 2,
		NextNodeIndex: 4,
	}
	out, err := r.Revert(merged)
	require.NoError(t, err)
	assert.Equal(t, "hello\ncd", tree.Text(out))
}

func TestRevertRejectsBadState(t *testing.T) {
	_, err := Record{Command: ReplaceParagraph, PrevState: "nope"}.Revert(tree.New())
	assert.ErrorIs(t, err, tree.ErrInvariant)
	assert.Equal(t, "replace-paragraph", ReplaceParagraph.String())
}
