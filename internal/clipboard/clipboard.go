// Package clipboard holds copied text, either in process or on the system
// clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/fatemehkarimi/theodore/internal/logger"
)

// ErrEmpty is returned by ReadText when nothing has been copied.
var ErrEmpty = errors.New("clipboard is empty")

// Register is an in-process clipboard.
type Register struct {
	mu   sync.Mutex
	text string
	set  bool
}

func (r *Register) Write(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text, r.set = text, true
	return nil
}

func (r *Register) ReadText() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.set {
		return "", ErrEmpty
	}
	return r.text, nil
}

// System uses the operating system clipboard. Writes are mirrored into a
// register, which serves reads when the system clipboard is unavailable
// (no xclip/xsel/wl-clipboard, headless sessions).
type System struct {
	fallback Register
	read     func() (string, error)
	write    func(string) error
}

// NewSystem returns a System backed by github.com/atotto/clipboard.
func NewSystem() *System {
	if clipboard.Unsupported {
		logger.Warnf("system clipboard unsupported, using internal register")
	}
	return &System{read: clipboard.ReadAll, write: clipboard.WriteAll}
}

func (s *System) Write(text string) error {
	_ = s.fallback.Write(text)
	if clipboard.Unsupported {
		return nil
	}
	if err := s.write(text); err != nil {
		logger.DebugTagf("clipboard", "system write failed, kept internally: %v", err)
	}
	return nil
}

func (s *System) ReadText() (string, error) {
	if !clipboard.Unsupported {
		text, err := s.read()
		if err == nil {
			return text, nil
		}
		logger.DebugTagf("clipboard", "system read failed: %v", err)
	}
	text, err := s.fallback.ReadText()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
