// internal/input/action.go
package input

// Action is an operation requested by a key press.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit

	// Caret movement; ActionEvent.Extend grows the selection instead.
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveHome
	ActionMoveEnd
	ActionSelectAll

	// Editing
	ActionInsertRune
	ActionInsertNewParagraph
	ActionDeleteBackward
	ActionDeleteForward
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	// Command line. Enter, Esc and Backspace are reinterpreted by the app
	// while the command line is open.
	ActionEnterCommandMode
	ActionCancel
)

var actionNames = map[Action]string{
	ActionQuit:               "quit",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveHome:           "move-home",
	ActionMoveEnd:            "move-end",
	ActionSelectAll:          "select-all",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewParagraph: "insert-paragraph",
	ActionDeleteBackward:     "delete-backward",
	ActionDeleteForward:      "delete-forward",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCopy:               "copy",
	ActionCut:                "cut",
	ActionPaste:              "paste",
	ActionEnterCommandMode:   "command",
	ActionCancel:             "cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
	Extend bool // Shift held on a movement key
}
