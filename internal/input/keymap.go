// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys, including Ctrl chords, to actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{keymap: make(Keymap)}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewParagraph
	p.keymap[tcell.KeyBackspace] = ActionDeleteBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteForward
	p.keymap[tcell.KeyEscape] = ActionCancel

	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlA] = ActionSelectAll
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste
	p.keymap[tcell.KeyCtrlK] = ActionEnterCommandMode
}

// Bind maps key to action, replacing a default binding.
func (p *InputProcessor) Bind(key tcell.Key, action Action) {
	p.keymap[key] = action
}

// ProcessEvent decodes ev. Plain and shifted runes become ActionInsertRune;
// runes with Ctrl or Alt held are ignored.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl+letter keys already say Ctrl in their key code.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune {
		if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	action, ok := p.keymap[key]
	if !ok {
		return ActionEvent{Action: ActionUnknown}
	}
	return ActionEvent{Action: action, Extend: mod&tcell.ModShift != 0 && isMove(action)}
}

func isMove(a Action) bool {
	switch a {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown, ActionMoveHome, ActionMoveEnd:
		return true
	}
	return false
}
