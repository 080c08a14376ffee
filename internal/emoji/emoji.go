// Package emoji provides the renderers that turn an emoji glyph into the
// string the terminal shows in its place.
package emoji

import (
	"fmt"

	"github.com/fatemehkarimi/theodore/internal/segment"
)

// Renderer maps a glyph to its display form. Implementations must return
// the same output for the same glyph.
type Renderer interface {
	Render(glyph string) string
}

// Native shows the glyph itself.
type Native struct{}

func (Native) Render(glyph string) string { return glyph }

// Code shows the unified code of the glyph between colons, as in
// ":1f44d-1f3fd:".
type Code struct{}

func (Code) Render(glyph string) string {
	return ":" + segment.Unified(glyph) + ":"
}

// New returns the renderer named kind: "native", "code" or "lua". The lua
// renderer loads script.
func New(kind, script string) (Renderer, error) {
	switch kind {
	case "", "native":
		return Native{}, nil
	case "code":
		return Code{}, nil
	case "lua":
		return NewLuaFile(script)
	default:
		return nil, fmt.Errorf("unknown emoji renderer %q", kind)
	}
}
