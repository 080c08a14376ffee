// internal/tui/view.go
package tui

import (
	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/theme"
	"github.com/fatemehkarimi/theodore/internal/tree"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// View draws the document into the rows above the status bar. It also
// places the caret, scrolls and maps clicks back to editor points.
type View struct {
	screen      tcell.Screen
	renderer    Renderer
	theme       func() *theme.Theme
	placeholder string

	height int // text area rows, set by Draw
	top    int // first visible layout row
	layout *Layout

	caretRow int
	scrolled bool
}

// NewView returns a view drawing on screen with the given emoji renderer.
// currentTheme is consulted on every draw.
func NewView(screen tcell.Screen, renderer Renderer, currentTheme func() *theme.Theme, placeholder string) *View {
	return &View{
		screen:      screen,
		renderer:    renderer,
		theme:       currentTheme,
		placeholder: placeholder,
		layout:      NewLayout(tree.New(), 1, renderer),
		caretRow:    -1,
	}
}

// Draw lays t out and draws the visible rows into the top height rows of
// the screen. The placeholder is drawn when empty is set.
func (v *View) Draw(t tree.Tree, empty bool, height int) {
	width, _ := v.screen.Size()
	v.height = max(height, 0)
	v.caretRow = -1
	v.layout = NewLayout(t, width, v.renderer)
	v.top = min(v.top, max(v.layout.Rows()-1, 0))

	th := v.theme()
	defaultStyle := th.GetStyle(theme.StyleDefault)
	emojiStyle := th.GetStyle(theme.StyleEmoji)

	for y := 0; y < v.height; y++ {
		for x := 0; x < width; x++ {
			v.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	if empty {
		drawString(v.screen, 0, 0, width, v.placeholder, th.GetStyle(theme.StylePlaceholder))
		return
	}

	for _, u := range v.layout.units {
		style := defaultStyle
		if u.emoji {
			style = emojiStyle
		}
		v.drawUnit(u, style, width)
	}
}

func (v *View) drawUnit(u unit, style tcell.Style, width int) {
	y := u.row - v.top
	if y < 0 || y >= v.height {
		return
	}
	drawString(v.screen, u.x, y, width, u.display, style)
	// A renderer may return something narrower than the cells reserved.
	for x := u.x + uniseg.StringWidth(u.display); x < u.x+u.width && x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawString draws s cluster by cluster from (x, y), clipped at width.
func drawString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
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

// PlaceCaretAt shows the terminal cursor at the caret position of
// (nodeIndex, offset). It reports false when the point is not laid out.
func (v *View) PlaceCaretAt(nodeIndex, offset int) bool {
	return v.placeCaret(selection.Point{NodeIndex: nodeIndex, Offset: offset})
}

// PlaceCaretAfter shows the cursor right after node nodeIndex.
func (v *View) PlaceCaretAfter(nodeIndex int) bool {
	p, ok := v.layout.After(nodeIndex)
	if !ok {
		return false
	}
	return v.placeCaret(p)
}

func (v *View) placeCaret(p selection.Point) bool {
	x, row, ok := v.layout.Position(p)
	if !ok {
		return false
	}
	v.caretRow = row
	width, _ := v.screen.Size()
	y := row - v.top
	if y < 0 || y >= v.height || width <= 0 {
		v.screen.HideCursor()
		return true
	}
	v.screen.ShowCursor(min(x, width-1), y)
	return true
}

// SelectRange highlights the units between the two points and shows the
// cursor at the end point.
func (v *View) SelectRange(startIndex, startOffset, endIndex, endOffset int) bool {
	start := selection.Point{NodeIndex: startIndex, Offset: startOffset}
	end := selection.Point{NodeIndex: endIndex, Offset: endOffset}
	units, ok := v.layout.span(start, end)
	if !ok {
		return false
	}
	width, _ := v.screen.Size()
	style := v.theme().GetStyle(theme.StyleSelection)
	for _, u := range units {
		v.drawUnit(u, style, width)
	}
	return v.placeCaret(end)
}

// ScrollIntoView scrolls so that the caret row, or the first row of
// nodeIndex when the caret was not placed, is visible.
func (v *View) ScrollIntoView(nodeIndex int) {
	row := v.caretRow
	if row < 0 {
		r, ok := v.layout.NodeRow(nodeIndex)
		if !ok {
			return
		}
		row = r
	}
	top := v.top
	switch {
	case v.height <= 0:
		return
	case row < top:
		top = row
	case row >= top+v.height:
		top = row - v.height + 1
	}
	if top != v.top {
		logger.DebugTagf("tui", "scroll %d -> %d for node %d", v.top, top, nodeIndex)
		v.top = top
		v.scrolled = true
	}
}

// TakeScrolled reports whether the view scrolled since the last call. The
// frame must be drawn again when it did.
func (v *View) TakeScrolled() bool {
	s := v.scrolled
	v.scrolled = false
	return s
}

// EditorPoint maps a screen cell to the nearest caret position.
func (v *View) EditorPoint(x, y int) (selection.Point, bool) {
	if y < 0 || y >= v.height {
		return selection.Point{}, false
	}
	return v.layout.PointAt(x, y+v.top)
}
