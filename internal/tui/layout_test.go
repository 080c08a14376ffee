package tui

import (
	"testing"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeRenderer struct{}

func (codeRenderer) Render(string) string { return "[e]" }

type glyphRenderer struct{}

func (glyphRenderer) Render(g string) string { return g }

func pt(id, off int) selection.Point { return selection.Point{NodeIndex: id, Offset: off} }

// [P1 "ab"(2) E3 "c"(4)] [P5] [P6 "שלום"(7)]
func sampleTree() tree.Tree {
	return tree.Tree{
		{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "ab"}, node.Emoji{ID: 3, Glyph: "😀"}, node.Text{ID: 4, Content: "c"}},
		{node.Paragraph{ID: 5}},
		{node.Paragraph{ID: 6}, node.Text{ID: 7, Content: "שלום"}},
	}
}

func TestLayoutPositions(t *testing.T) {
	l := NewLayout(sampleTree(), 20, glyphRenderer{})
	require.Equal(t, 3, l.Rows())

	tests := []struct {
		p      selection.Point
		x, row int
	}{
		{pt(1, 0), 0, 0},
		{pt(2, 0), 0, 0},
		{pt(2, 2), 2, 0},
		{pt(3, 0), 2, 0},
		{pt(3, 1), 4, 0},
		{pt(4, 0), 4, 0},
		{pt(4, 1), 5, 0},
		{pt(5, 0), 0, 1},
		{pt(7, 0), 16, 2},
		{pt(7, 4), 20, 2},
	}
	for _, tt := range tests {
		x, row, ok := l.Position(tt.p)
		require.True(t, ok, "%+v", tt.p)
		assert.Equal(t, [2]int{tt.x, tt.row}, [2]int{x, row}, "%+v", tt.p)
	}

	_, _, ok := l.Position(pt(99, 0))
	assert.False(t, ok)

	after, ok := l.After(3)
	require.True(t, ok)
	assert.Equal(t, pt(3, 1), after)
	after, _ = l.After(5)
	assert.Equal(t, pt(5, 0), after)
}

func TestLayoutWrapsAtGraphemes(t *testing.T) {
	tr := tree.Tree{{node.Paragraph{ID: 1}, node.Text{ID: 2, Content: "abcde"}, node.Emoji{ID: 3, Glyph: "😀"}}}
	l := NewLayout(tr, 3, codeRenderer{})
	// "abc" | "de" | "[e]"
	require.Equal(t, 3, l.Rows())

	x, row, _ := l.Position(pt(2, 3))
	assert.Equal(t, [2]int{0, 1}, [2]int{x, row}, "caret after a wrap shows on the next row")
	x, row, _ = l.Position(pt(3, 0))
	assert.Equal(t, [2]int{0, 2}, [2]int{x, row})
	x, row, _ = l.Position(pt(3, 1))
	assert.Equal(t, [2]int{3, 2}, [2]int{x, row})

	r, _ := l.NodeRow(3)
	assert.Equal(t, 2, r)
	r, _ = l.NodeRow(2)
	assert.Equal(t, 0, r)
}

func TestLayoutHitTesting(t *testing.T) {
	l := NewLayout(sampleTree(), 20, glyphRenderer{})

	tests := []struct {
		name   string
		x, row int
		want   selection.Point
	}{
		{"line start prefers text start", 0, 0, pt(2, 0)},
		{"inside text", 1, 0, pt(2, 1)},
		{"text end beats emoji start", 2, 0, pt(2, 2)},
		{"emoji end beats text start", 4, 0, pt(3, 1)},
		{"past line end", 15, 0, pt(4, 1)},
		{"empty paragraph", 7, 1, pt(5, 0)},
		{"below the last row", 0, 40, pt(7, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.PointAt(tt.x, tt.row)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := l.PointAt(0, -1)
	assert.False(t, ok)
}

func TestLayoutSpan(t *testing.T) {
	l := NewLayout(sampleTree(), 20, glyphRenderer{})
	units, ok := l.span(pt(4, 1), pt(2, 1))
	require.True(t, ok)
	var shown []string
	for _, u := range units {
		shown = append(shown, u.display)
	}
	assert.Equal(t, []string{"b", "😀", "c"}, shown)

	_, ok = l.span(pt(2, 0), pt(42, 0))
	assert.False(t, ok)
}

func TestTextCell(t *testing.T) {
	d, w := textCell("\t")
	assert.Equal(t, " ", d)
	assert.Equal(t, 1, w)
	_, w = textCell("中")
	assert.Equal(t, 2, w)
	_, w = textCell("é")
	assert.Equal(t, 1, w)
}
