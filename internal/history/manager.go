package history

import (
	"fmt"
	"sync"

	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// DefaultMaxHistory bounds the number of transactions kept.
const DefaultMaxHistory = 100

// SelectionProvider supplies the selection stamped onto records pushed
// without one.
type SelectionProvider func() *selection.Selection

// Options configures a Manager.
type Options struct {
	MaxHistory int
	// Strict aborts an undo on the first failing reversal instead of
	// skipping the record.
	Strict bool
}

// Result is the state produced by Undo or Redo.
type Result struct {
	Tree      tree.Tree
	Selection *selection.Selection
	Applied   bool
}

// redoEntry is what Undo needs to hand back to Redo.
type redoEntry struct {
	records   []Record // push order
	tree      tree.Tree
	selection *selection.Selection
}

// Manager handles the undo/redo stack.
type Manager struct {
	mutex      sync.Mutex
	records    []Record
	redo       []redoEntry
	txn        int
	maxHistory int
	strict     bool
	selection  SelectionProvider
}

// NewManager creates a history manager.
func NewManager(opts Options, provider SelectionProvider) *Manager {
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	return &Manager{
		records:    make([]Record, 0, opts.MaxHistory),
		maxHistory: opts.MaxHistory,
		strict:     opts.Strict,
		selection:  provider,
	}
}

// Push appends records to the open transaction. Records without a
// selection get the provider's current one. Any redo state is dropped.
func (m *Manager) Push(records ...Record) {
	if len(records) == 0 {
		return
	}
	var current *selection.Selection
	if m.selection != nil {
		current = m.selection()
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, r := range records {
		r.TransactionID = m.txn
		if r.Selection == nil {
			r.Selection = current.Clone()
		} else {
			r.Selection = r.Selection.Clone()
		}
		m.records = append(m.records, r)
		logger.DebugTagf("history", "Pushed %s node=%d txn=%d", r.Command, r.NodeIndex, r.TransactionID)
	}
	m.redo = nil
}

// Commit closes the open transaction.
func (m *Manager) Commit() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if n := len(m.records); n == 0 || m.records[n-1].TransactionID != m.txn {
		// Nothing was pushed; keep the id so empty commits do not leave gaps.
		return
	}
	m.txn++
	m.evict()
}

// PushAndCommit pushes records as a single transaction.
func (m *Manager) PushAndCommit(records ...Record) {
	m.Push(records...)
	m.Commit()
}

// evict drops whole transactions from the bottom until at most maxHistory
// remain.
func (m *Manager) evict() {
	count := 0
	last := -1
	for _, r := range m.records {
		if r.TransactionID != last {
			count++
			last = r.TransactionID
		}
	}
	for count > m.maxHistory && len(m.records) > 0 {
		oldest := m.records[0].TransactionID
		i := 0
		for i < len(m.records) && m.records[i].TransactionID == oldest {
			i++
		}
		m.records = m.records[i:]
		count--
		logger.DebugTagf("history", "Evicted transaction %d", oldest)
	}
}

// Pop removes and returns the top record.
func (m *Manager) Pop() (Record, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.pop()
}

func (m *Manager) pop() (Record, bool) {
	n := len(m.records)
	if n == 0 {
		return Record{}, false
	}
	r := m.records[n-1]
	m.records = m.records[:n-1]
	return r, true
}

// Top returns the top record without removing it.
func (m *Manager) Top() (Record, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.records) == 0 {
		return Record{}, false
	}
	return m.records[len(m.records)-1], true
}

// Len returns the number of records on the stack.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.records)
}

// TransactionID returns the id the next pushed record receives.
func (m *Manager) TransactionID() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.txn
}

// Clear drops all undo and redo state. The transaction id keeps counting.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.records = m.records[:0]
	m.redo = nil
}

func (m *Manager) CanUndo() bool {
	return m.Len() > 0
}

func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo) > 0
}

// Undo reverts the top transaction against t. The records are reverted in
// the order they are popped, and the selection of the last popped record
// (the first one pushed) is restored. current is the selection before the
// undo and is kept for Redo.
func (m *Manager) Undo(t tree.Tree, current *selection.Selection) (Result, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	first, ok := m.pop()
	if !ok {
		logger.Debugf("History: Nothing to undo.")
		return Result{Tree: t, Selection: current}, nil
	}
	popped := []Record{first}
	for {
		n := len(m.records)
		if n == 0 || m.records[n-1].TransactionID != first.TransactionID {
			break
		}
		r, _ := m.pop()
		popped = append(popped, r)
	}

	working := t
	for _, r := range popped {
		next, err := r.Revert(working)
		if err != nil {
			if m.strict {
				m.pushBack(popped)
				logger.Errorf("History: Undo of transaction %d failed at %s: %v", first.TransactionID, r.Command, err)
				return Result{Tree: t, Selection: current}, fmt.Errorf("undo failed: %w", err)
			}
			logger.Warnf("History: Skipping %s on node %d: %v", r.Command, r.NodeIndex, err)
			continue
		}
		working = next
	}
	working = tree.Normalize(working)

	m.redo = append(m.redo, redoEntry{
		records:   reversed(popped),
		tree:      t,
		selection: current.Clone(),
	})
	logger.DebugTagf("history", "Undid transaction %d (%d records)", first.TransactionID, len(popped))

	return Result{
		Tree:      working,
		Selection: popped[len(popped)-1].Selection.Clone(),
		Applied:   true,
	}, nil
}

// Redo restores the state the last Undo started from and puts its records
// back on the stack.
func (m *Manager) Redo() (Result, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	n := len(m.redo)
	if n == 0 {
		logger.Debugf("History: Nothing to redo.")
		return Result{}, false
	}
	entry := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.records = append(m.records, entry.records...)
	logger.DebugTagf("history", "Redid %d records", len(entry.records))

	return Result{
		Tree:      entry.tree,
		Selection: entry.selection.Clone(),
		Applied:   true,
	}, true
}

// pushBack restores popped records in their original order.
func (m *Manager) pushBack(popped []Record) {
	m.records = append(m.records, reversed(popped)...)
}

func reversed(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
