// Package editor implements the edit algorithms of the widget. An Engine
// owns one document tree, its selection and its undo history. Every
// operation computes a new tree and selection from the current ones, records
// how to reverse itself and then swaps both in at once.
package editor

import (
	"errors"
	"fmt"

	"github.com/fatemehkarimi/theodore/internal/history"
	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// ErrInvariant reports an operation that would have broken the document.
var ErrInvariant = errors.New("editor: invariant violation")

// Direction of a delete or caret move.
type Direction = tree.Direction

const (
	Backward = tree.Backward
	Forward  = tree.Forward
)

// Options configures an Engine.
type Options struct {
	// Strict turns invariant violations into returned errors. Otherwise
	// they are logged and the operation is dropped.
	Strict     bool
	MaxHistory int
}

// Engine is the editing state machine. It is not safe for concurrent use;
// the host serialises calls on its event goroutine.
type Engine struct {
	tree        tree.Tree
	selection   *selection.Manager
	history     *history.Manager
	nodeCounter int
	strict      bool
}

// New returns an engine holding an empty paragraph with the caret in it.
func New(opts Options) *Engine {
	e := &Engine{
		tree:        tree.New(),
		selection:   selection.NewManager(),
		nodeCounter: tree.RootParagraphIndex,
		strict:      opts.Strict,
	}
	e.history = history.NewManager(history.Options{
		MaxHistory: opts.MaxHistory,
		Strict:     opts.Strict,
	}, e.selection.Get)
	e.selection.Set(selection.Point{NodeIndex: tree.RootParagraphIndex})
	return e
}

// nextID allocates a node identity. Identities are never reused.
func (e *Engine) nextID() int {
	e.nodeCounter++
	return e.nodeCounter
}

// edit is the working state of one operation.
type edit struct {
	op      string
	t       tree.Tree
	records []history.Record
}

func (e *Engine) begin(op string) *edit {
	return &edit{op: op, t: e.tree}
}

func (x *edit) push(records ...history.Record) {
	x.records = append(x.records, records...)
}

// apply validates the result of x and makes it current as one transaction.
// The selection is set exactly once.
func (e *Engine) apply(x *edit, sel *selection.Selection) error {
	if err := tree.Validate(x.t); err != nil {
		return e.fail(x.op, err)
	}
	if !selection.Valid(x.t, sel) {
		return e.fail(x.op, fmt.Errorf("selection %+v does not resolve", sel))
	}
	e.history.PushAndCommit(x.records...)
	e.tree = x.t
	logger.DebugTagf("editor", "%s: %d records, %d paragraphs", x.op, len(x.records), len(e.tree))
	e.selection.SetSelection(sel)
	return nil
}

// fail applies the error policy. The current state is left untouched either
// way.
func (e *Engine) fail(op string, err error) error {
	if e.strict {
		return fmt.Errorf("%w: %s: %w", ErrInvariant, op, err)
	}
	logger.Warnf("Editor: %s dropped: %v", op, err)
	return nil
}

// caretOrEnd returns the current selection, falling back to a caret at the
// document end when there is none.
func (e *Engine) caretOrEnd() *selection.Selection {
	if s := e.selection.Get(); s != nil && selection.Valid(e.tree, s) {
		return s
	}
	return selection.Collapsed(documentEnd(e.tree))
}

// Tree returns a copy of the document.
func (e *Engine) Tree() tree.Tree {
	return e.tree.Clone()
}

// Selection returns a copy of the current selection.
func (e *Engine) Selection() *selection.Selection {
	return e.selection.Get()
}

// Text returns the document as plain text, one line per paragraph.
func (e *Engine) Text() string {
	return tree.Text(e.tree)
}

// IsEmpty reports whether the document has no content.
func (e *Engine) IsEmpty() bool {
	return tree.IsEmpty(e.tree)
}

// OnSelectionChange registers fn for every selection change.
func (e *Engine) OnSelectionChange(fn func(*selection.Selection)) {
	e.selection.OnChange(fn)
}

// NodeCount returns the identity counter, mostly for diagnostics.
func (e *Engine) NodeCount() int {
	return e.nodeCounter
}

// TransactionID returns the id of the next history transaction.
func (e *Engine) TransactionID() int {
	return e.history.TransactionID()
}

func (e *Engine) CanUndo() bool { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// SetSelection moves the selection. Points that do not resolve in the
// current tree are ignored and false is returned.
func (e *Engine) SetSelection(start selection.Point, end ...selection.Point) bool {
	s := selection.Collapsed(start)
	if len(end) > 0 {
		s.End = end[0]
	}
	if !selection.Valid(e.tree, s) {
		logger.Debugf("Editor: ignoring selection %+v", s)
		return false
	}
	e.selection.SetSelection(s)
	return true
}

// Undo reverts the last transaction.
func (e *Engine) Undo() (bool, error) {
	res, err := e.history.Undo(e.tree, e.selection.Get())
	if err != nil {
		return false, fmt.Errorf("%w: undo: %w", ErrInvariant, err)
	}
	if !res.Applied {
		return false, nil
	}
	e.restore(res)
	return true, nil
}

// Redo reapplies the last undone transaction.
func (e *Engine) Redo() (bool, error) {
	res, ok := e.history.Redo()
	if !ok {
		return false, nil
	}
	e.restore(res)
	return true, nil
}

func (e *Engine) restore(res history.Result) {
	e.tree = res.Tree
	sel := res.Selection
	if !selection.Valid(e.tree, sel) {
		logger.Debugf("Editor: restored selection %+v is stale, moving to end", sel)
		sel = selection.Collapsed(documentEnd(e.tree))
	}
	e.selection.SetSelection(sel)
}

// Reset replaces the document with text and forgets the history.
func (e *Engine) Reset(text string) error {
	e.tree = tree.New()
	e.selection.Set(selection.Point{NodeIndex: tree.RootParagraphIndex})
	if err := e.SetContent(text); err != nil {
		return err
	}
	e.history.Clear()
	return nil
}

// afterPoint is the caret position right after n.
func afterPoint(n node.Node) selection.Point {
	switch n.Kind() {
	case node.KindText:
		return selection.Point{NodeIndex: n.Index(), Offset: n.Len()}
	case node.KindEmoji:
		return selection.Point{NodeIndex: n.Index(), Offset: 1}
	default:
		return selection.Point{NodeIndex: n.Index()}
	}
}

// documentEnd is the caret position after the last node of the tree.
func documentEnd(t tree.Tree) selection.Point {
	return afterPoint(t[len(t)-1].Last())
}
