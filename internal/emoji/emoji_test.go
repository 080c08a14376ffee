package emoji

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestNativeAndCode(t *testing.T) {
	assert.Equal(t, "😀", Native{}.Render("😀"))
	assert.Equal(t, ":1f44d-1f3fd:", Code{}.Render("👍🏽"))
}

func TestLuaRenderer(t *testing.T) {
	r, err := NewLua(`
calls = 0
function render(glyph, code)
  calls = calls + 1
  return "[" .. code .. "]"
end
`)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "[1f600]", r.Render("😀"))
	assert.Equal(t, "[1f600]", r.Render("😀"))
	assert.Equal(t, "[1f1ee-1f1f7]", r.Render("🇮🇷"))
	assert.Equal(t, lua.LNumber(2), r.L.GetGlobal("calls"))
}

func TestLuaRendererFallsBackToGlyph(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"runtime error", `function render(g, c) error("boom") end`},
		{"non string", `function render(g, c) return 42 end`},
		{"nil", `function render(g, c) end`},
		{"empty", `function render(g, c) return "" end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewLua(tt.script)
			require.NoError(t, err)
			defer r.Close()
			assert.Equal(t, "😀", r.Render("😀"))
		})
	}
}

func TestNewLuaRejectsBadScripts(t *testing.T) {
	_, err := NewLua(`render = 1`)
	assert.ErrorIs(t, err, ErrNoRenderFunc)

	_, err = NewLua(`function render(`)
	assert.Error(t, err)

	_, err = NewLua(`os.exit(1)`)
	assert.Error(t, err, "os library is not opened")
}

func TestNewByKind(t *testing.T) {
	r, err := New("code", "")
	require.NoError(t, err)
	assert.IsType(t, Code{}, r)

	_, err = New("svg", "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "r.lua")
	require.NoError(t, os.WriteFile(path, []byte(`function render(g, c) return "<" .. g .. ">" end`), 0o644))
	r, err = New("lua", path)
	require.NoError(t, err)
	assert.Equal(t, "<😀>", r.Render("😀"))
	r.(*Lua).Close()
	assert.Equal(t, "<😀>", r.Render("😀"), "cache survives close")
	assert.Equal(t, "🙂", r.Render("🙂"))
}
