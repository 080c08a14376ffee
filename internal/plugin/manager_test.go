package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *stubPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestRegisterRejectsEmptyAndDuplicateNames(t *testing.T) {
	var log []string
	m := NewManager()

	err := m.Register(&stubPlugin{log: &log})
	assert.ErrorIs(t, err, ErrEmptyName)

	require.NoError(t, m.Register(&stubPlugin{name: "wc", log: &log}))
	assert.Error(t, m.Register(&stubPlugin{name: "wc", log: &log}))

	p, ok := m.GetPlugin("wc")
	require.True(t, ok)
	assert.Equal(t, "wc", p.Name())
	_, ok = m.GetPlugin("missing")
	assert.False(t, ok)
}

func TestInitializeAndShutdownInNameOrder(t *testing.T) {
	var log []string
	m := NewManager()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, m.Register(&stubPlugin{name: name, log: &log}))
	}
	require.NoError(t, m.Register(&stubPlugin{name: "broken", initErr: errors.New("boom"), log: &log}))

	assert.Equal(t, 1, m.InitializePlugins(nil))
	m.ShutdownPlugins()

	assert.Equal(t, []string{
		"init alpha", "init broken", "init mid", "init zeta",
		"shutdown alpha", "shutdown broken", "shutdown mid", "shutdown zeta",
	}, log)
}
