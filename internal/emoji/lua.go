package emoji

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/segment"
	lua "github.com/yuin/gopher-lua"
)

// renderFunc is the global a script must define: render(glyph, code) -> string.
const renderFunc = "render"

var ErrNoRenderFunc = errors.New("lua script does not define render(glyph, code)")

// Lua renders glyphs through a user script. Results are cached per glyph,
// so a script runs at most once for each distinct glyph. A failing call
// falls back to the glyph itself.
type Lua struct {
	mu     sync.Mutex
	L      *lua.LState
	fn     lua.LValue
	cache  map[string]string
	closed bool
}

// NewLuaFile loads the script at path.
func NewLuaFile(path string) (*Lua, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lua script: %w", err)
	}
	return NewLua(string(src))
}

// NewLua runs source in a state limited to the base, table, string and
// math libraries and looks up its render function.
func NewLua(source string) (r *Lua, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
		if err != nil {
			L.Close()
			r = nil
		}
	}()

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("load lua script: %w", err)
	}
	fn := L.GetGlobal(renderFunc)
	if fn.Type() != lua.LTFunction {
		return nil, ErrNoRenderFunc
	}
	return &Lua{L: L, fn: fn, cache: make(map[string]string)}, nil
}

// Render calls render(glyph, code).
func (r *Lua) Render(glyph string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.cache[glyph]; ok {
		return out
	}
	if r.closed {
		return glyph
	}
	out, err := r.call(glyph)
	if err != nil {
		logger.Warnf("lua emoji renderer failed for %q: %v", glyph, err)
		out = glyph
	}
	r.cache[glyph] = out
	return out
}

func (r *Lua) call(glyph string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()

	top := r.L.GetTop()
	defer r.L.SetTop(top)

	err = r.L.CallByParam(lua.P{Fn: r.fn, NRet: 1, Protect: true},
		lua.LString(glyph), lua.LString(segment.Unified(glyph)))
	if err != nil {
		return "", err
	}
	ret := r.L.Get(-1)
	s, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("render returned %s, want string", ret.Type())
	}
	if s == "" {
		return "", errors.New("render returned an empty string")
	}
	return string(s), nil
}

// Close releases the Lua state. Cached results stay available.
func (r *Lua) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.L.Close()
		r.closed = true
	}
}
