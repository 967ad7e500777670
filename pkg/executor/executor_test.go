package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultExecutor_LookPath(t *testing.T) {
	e := &DefaultExecutor{}

	_, err := e.LookPath("surely-no-such-binary-anywhere")
	assert.Error(t, err)

	path, err := e.LookPath("sh")
	if err != nil {
		t.Skipf("no sh in PATH: %v", err)
	}
	assert.NotEmpty(t, path)
}

func TestDefaultExecutor_ExecFailure(t *testing.T) {
	e := &DefaultExecutor{}
	// execve of a non-existing file fails and returns instead of replacing
	// the test binary.
	err := e.Exec("/nonexistent/binary", []string{"binary"}, nil)
	require.Error(t, err)
}

func TestMockExecutor(t *testing.T) {
	m := &MockExecutor{}
	path, err := m.LookPath("true")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/true", path)
	assert.NoError(t, m.Exec(path, []string{"true"}, nil))

	var gotArgv []string
	m = &MockExecutor{
		ExecFunc: func(path string, argv []string, env []string) error {
			gotArgv = argv
			return errors.New("boom")
		},
	}
	assert.EqualError(t, m.Exec("/bin/x", []string{"x", "-y"}, nil), "boom")
	assert.Equal(t, []string{"x", "-y"}, gotArgv)
}
