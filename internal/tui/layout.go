// internal/tui/layout.go
package tui

import (
	"unicode"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Renderer turns an emoji glyph into the text drawn for it.
type Renderer interface {
	Render(glyph string) string
}

// unit is one text grapheme or one emoji as laid out on screen.
type unit struct {
	display  string
	width    int
	emoji    bool
	row, x   int
	from, to int // slots before and after the unit
}

// slot is a caret position between units and the points that map to it.
type slot struct {
	row, x int
	points []selection.Point
}

type line struct {
	para  int
	width int
	rtl   bool
}

// Layout places the document on rows of a fixed width. Paragraphs start on
// a new row and wrap at grapheme boundaries; right-to-left paragraphs are
// right-aligned.
type Layout struct {
	width int
	lines []line
	units []unit
	slots []slot
	index map[selection.Point]int // point -> slot
	first map[int]int             // node index -> first row
	last  map[int]selection.Point // node index -> point after it
	heads map[int]bool            // paragraph node indexes
}

// NewLayout lays t out on rows of width cells.
func NewLayout(t tree.Tree, width int, r Renderer) *Layout {
	l := &Layout{
		width: max(width, 1),
		index: make(map[selection.Point]int),
		first: make(map[int]int),
		last:  make(map[int]selection.Point),
		heads: make(map[int]bool),
	}
	for pi, p := range t {
		l.paragraph(pi, p, r)
	}
	return l
}

func (l *Layout) paragraph(pi int, p tree.Paragraph, r Renderer) {
	top := len(l.lines)
	l.lines = append(l.lines, line{para: pi})

	head := p.Head().ID
	l.heads[head] = true
	l.first[head] = top
	l.last[head] = selection.Point{NodeIndex: head}
	l.addSlot(selection.Point{NodeIndex: head}, 0)

	for _, n := range p.Content() {
		id := n.Index()
		l.first[id] = len(l.lines) - 1
		l.mapPoint(selection.Point{NodeIndex: id}, len(l.slots)-1)
		l.last[id] = selection.Point{NodeIndex: id}

		switch v := n.(type) {
		case node.Text:
			for i, g := range segment.SegmentText(v.Content) {
				display, w := textCell(g)
				before := selection.Point{NodeIndex: id, Offset: i}
				after := selection.Point{NodeIndex: id, Offset: i + 1}
				if l.place(unit{display: display, width: w}, before, after) && i == 0 {
					l.first[id] = len(l.lines) - 1
				}
				l.last[id] = after
			}
		case node.Emoji:
			display := r.Render(v.Glyph)
			w := max(runewidth.StringWidth(display), 1)
			after := selection.Point{NodeIndex: id, Offset: 1}
			if l.place(unit{display: display, width: w, emoji: true}, selection.Point{NodeIndex: id}, after) {
				l.first[id] = len(l.lines) - 1
			}
			l.last[id] = after
		}
	}

	if tree.ParagraphDirection(p) == segment.RTL {
		l.alignRight(top)
	}
}

// place appends u after the last slot, wrapping first if it does not fit.
// It reports whether a wrap happened.
func (l *Layout) place(u unit, before, after selection.Point) bool {
	row := len(l.lines) - 1
	x := l.lines[row].width
	wrapped := false
	if x > 0 && x+u.width > l.width {
		row++
		x = 0
		l.lines = append(l.lines, line{para: l.lines[row-1].para})
		l.addSlot(before, 0)
		wrapped = true
	}
	u.row, u.x = row, x
	u.from = len(l.slots) - 1
	l.lines[row].width = x + u.width
	l.addSlot(after, x+u.width)
	u.to = len(l.slots) - 1
	l.units = append(l.units, u)
	return wrapped
}

func (l *Layout) addSlot(p selection.Point, x int) {
	l.slots = append(l.slots, slot{row: len(l.lines) - 1, x: x})
	l.mapPoint(p, len(l.slots)-1)
}

// mapPoint makes slot i the caret position of p. A point that wraps keeps
// its entry in the earlier slot for hit testing.
func (l *Layout) mapPoint(p selection.Point, i int) {
	l.index[p] = i
	l.slots[i].points = append(l.slots[i].points, p)
}

func (l *Layout) alignRight(top int) {
	shift := make(map[int]int)
	for row := top; row < len(l.lines); row++ {
		l.lines[row].rtl = true
		shift[row] = max(l.width-l.lines[row].width, 0)
	}
	for i := range l.slots {
		if s, ok := shift[l.slots[i].row]; ok {
			l.slots[i].x += s
		}
	}
	for i := range l.units {
		if s, ok := shift[l.units[i].row]; ok {
			l.units[i].x += s
		}
	}
}

// textCell returns what to draw for a text grapheme and its cell width.
// Control characters show as a blank cell.
func textCell(g string) (string, int) {
	runes := []rune(g)
	if len(runes) > 0 && unicode.IsControl(runes[0]) {
		return " ", 1
	}
	return g, max(uniseg.StringWidth(g), 1)
}

// Rows returns the number of laid out rows.
func (l *Layout) Rows() int { return len(l.lines) }

// Position returns the cell of the caret at p.
func (l *Layout) Position(p selection.Point) (x, row int, ok bool) {
	i, ok := l.index[p]
	if !ok {
		return 0, 0, false
	}
	return l.slots[i].x, l.slots[i].row, true
}

// After returns the point just after node id.
func (l *Layout) After(id int) (selection.Point, bool) {
	p, ok := l.last[id]
	return p, ok
}

// NodeRow returns the first row node id occupies.
func (l *Layout) NodeRow(id int) (int, bool) {
	row, ok := l.first[id]
	return row, ok
}

// PointAt returns the caret position closest to cell (x, row). Rows past
// the end resolve on the last row.
func (l *Layout) PointAt(x, row int) (selection.Point, bool) {
	if row < 0 || len(l.lines) == 0 {
		return selection.Point{}, false
	}
	row = min(row, len(l.lines)-1)

	best, bestDist := -1, 0
	for i, s := range l.slots {
		if s.row != row {
			continue
		}
		d := s.x - x
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return selection.Point{}, false
	}
	points := l.slots[best].points
	p := points[0]
	for _, q := range points[1:] {
		if l.better(q, p) {
			p = q
		}
	}
	return p, true
}

// better orders candidate points of one slot: the end of a node, then the
// start of a content node, then the paragraph itself.
func (l *Layout) better(a, b selection.Point) bool {
	rank := func(p selection.Point) int {
		switch {
		case p.Offset > 0:
			return 0
		case !l.heads[p.NodeIndex]:
			return 1
		default:
			return 2
		}
	}
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra < rb
	}
	return a.NodeIndex < b.NodeIndex
}

// span returns the units between two points, in document order.
func (l *Layout) span(a, b selection.Point) ([]unit, bool) {
	ia, ok := l.index[a]
	if !ok {
		return nil, false
	}
	ib, ok := l.index[b]
	if !ok {
		return nil, false
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	var out []unit
	for _, u := range l.units {
		if u.from >= ia && u.to <= ib {
			out = append(out, u)
		}
	}
	return out, true
}
