// Package selection holds the caret or range over the document tree.
package selection

import (
	"sync"

	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// Point addresses a position inside one node. For text the offset counts
// grapheme clusters; for an emoji 0 is before and 1 after; for a paragraph
// node it is always 0.
type Point struct {
	NodeIndex int
	Offset    int
}

// Selection is a caret when Start equals End, a range otherwise. Start is
// the anchor and may come after End in document order.
type Selection struct {
	Start Point
	End   Point
}

// Collapsed returns a caret at p.
func Collapsed(p Point) *Selection {
	return &Selection{Start: p, End: p}
}

// Clone returns a copy of s. A nil selection stays nil.
func (s *Selection) Clone() *Selection {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// IsCollapsed reports whether s is a caret. The null selection counts as
// collapsed.
func IsCollapsed(s *Selection) bool {
	return s == nil || s.Start == s.End
}

// EqualsNode reports whether a and b refer to the same node.
func EqualsNode(a, b Point) bool {
	return a.NodeIndex == b.NodeIndex
}

// Equal compares two selections including offsets.
func Equal(a, b *Selection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Compare orders two points in document order. It returns -1, 0 or 1, and
// false when either point is not in t.
func Compare(t tree.Tree, a, b Point) (int, bool) {
	ap, an, ok := tree.Locate(t, a.NodeIndex)
	if !ok {
		return 0, false
	}
	bp, bn, ok := tree.Locate(t, b.NodeIndex)
	if !ok {
		return 0, false
	}
	switch {
	case ap != bp:
		return sign(ap - bp), true
	case an != bn:
		return sign(an - bn), true
	default:
		return sign(a.Offset - b.Offset), true
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Ordered returns the two ends of s in document order.
func Ordered(t tree.Tree, s *Selection) (start, end Point) {
	if s == nil {
		return Point{}, Point{}
	}
	if c, ok := Compare(t, s.Start, s.End); ok && c > 0 {
		return s.End, s.Start
	}
	return s.Start, s.End
}

// Valid reports whether both ends of s resolve in t with in-range offsets.
func Valid(t tree.Tree, s *Selection) bool {
	if s == nil {
		return false
	}
	return validPoint(t, s.Start) && validPoint(t, s.End)
}

func validPoint(t tree.Tree, p Point) bool {
	n, ok := tree.Find(t, p.NodeIndex)
	if !ok || p.Offset < 0 {
		return false
	}
	switch n.Kind() {
	case node.KindText:
		return p.Offset <= n.Len()
	case node.KindEmoji:
		return p.Offset <= 1
	default:
		return p.Offset == 0
	}
}

// Manager owns the current selection and notifies listeners on every Set.
type Manager struct {
	mu        sync.Mutex
	current   *Selection
	listeners []func(*Selection)
}

// NewManager returns a manager with the null selection.
func NewManager() *Manager {
	return &Manager{}
}

// Get returns a copy of the current selection, or nil.
func (m *Manager) Get() *Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// Set replaces the selection. With no end the selection collapses onto start.
func (m *Manager) Set(start Point, end ...Point) {
	e := start
	if len(end) > 0 {
		e = end[0]
	}
	m.apply(&Selection{Start: start, End: e})
}

// SetSelection replaces the selection with a copy of s; nil clears it.
func (m *Manager) SetSelection(s *Selection) {
	m.apply(s.Clone())
}

// Clear resets to the null selection.
func (m *Manager) Clear() {
	m.apply(nil)
}

func (m *Manager) apply(s *Selection) {
	m.mu.Lock()
	m.current = s
	listeners := make([]func(*Selection), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	logger.DebugTagf("selection", "Selection set to %+v", s)
	for _, fn := range listeners {
		// Each listener gets its own copy.
		fn(s.Clone())
	}
}

// OnChange registers fn to run synchronously after every change.
func (m *Manager) OnChange(fn func(*Selection)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}
