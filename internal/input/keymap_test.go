package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'x'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'X'}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionInsertNewParagraph}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteBackward}},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteForward}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"shift end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModShift), ActionEvent{Action: ActionMoveEnd, Extend: true}},
		{"ctrl z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"ctrl v", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), ActionEvent{Action: ActionPaste}},
		{"ctrl k", tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl), ActionEvent{Action: ActionEnterCommandMode}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionCancel}},
		{"unbound", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestBindOverridesDefault(t *testing.T) {
	p := NewInputProcessor()
	p.Bind(tcell.KeyF5, ActionQuit)
	assert.Equal(t, ActionQuit, p.ProcessEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)).Action)
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "unknown", Action(999).String())
}
