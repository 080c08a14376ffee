package app

import (
	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/statusbar"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// textHeight is the number of rows left for the document.
func (a *App) textHeight(screenHeight int) int {
	return max(screenHeight-a.cfg.Editor.StatusBarHeight, 0)
}

// drawEditor redraws the document and the status bar. The layout pass runs
// after the document is drawn; when it scrolls the view the document is
// drawn once more at the new offset.
func (a *App) drawEditor() {
	a.mu.Lock()
	defer a.mu.Unlock()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := a.textHeight(height)
	logger.DebugTagf("draw", "drawEditor: screen %dx%d, view height %d", width, height, viewHeight)

	screen.Clear()
	a.drawDocument(viewHeight)
	if a.view.TakeScrolled() {
		a.drawDocument(viewHeight)
	}

	a.updateStatusBarContent()
	if a.cfg.Editor.StatusBarHeight > 0 {
		end := a.statusBar.Draw(screen, width, height, a.themeManager.Current())
		if a.cmdMode {
			screen.ShowCursor(min(end, width-1), height-1)
		}
	}
	a.tuiManager.Show()
}

func (a *App) drawDocument(viewHeight int) {
	a.view.Draw(a.widget.Tree(), a.widget.IsEmpty(), viewHeight)
	a.widget.Layout()
}

// updateStatusBarContent pushes the caret state to the status bar.
func (a *App) updateStatusBarContent() {
	if a.cmdMode {
		a.statusBar.SetCommandInput(string(a.cmdInput), true)
	} else {
		a.statusBar.SetCommandInput("", false)
	}
	a.statusBar.SetCaretInfo(a.caretInfo())
}

// caretInfo describes the focus end of the selection.
func (a *App) caretInfo() statusbar.CaretInfo {
	t := a.widget.Tree()
	info := statusbar.CaretInfo{Paragraphs: len(t), Paragraph: 1, Column: 1, Modified: a.modified}
	sel := a.widget.Selection()
	if sel == nil {
		return info
	}
	pi, ni, ok := tree.Locate(t, sel.End.NodeIndex)
	if !ok {
		return info
	}
	col := 0
	if ni > 0 {
		for _, n := range t[pi][1:ni] {
			col += n.Len()
		}
		col += min(sel.End.Offset, t[pi][ni].Len())
	}
	info.Paragraph = pi + 1
	info.Column = col + 1
	info.RTL = tree.ParagraphDirection(t[pi]) == segment.RTL
	if !selection.IsCollapsed(sel) {
		info.Selected = segment.GraphemeCount(a.widget.SelectedText())
	}
	return info
}
