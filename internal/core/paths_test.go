package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	t.Cleanup(ResetPaths)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".toolchat"), DataDir())
	assert.Equal(t, filepath.Join(home, ".toolchat", "toolchat.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".toolchat", "config.yaml"), ConfigFile())
	assert.Equal(t, ".env", DotEnvFile())

	info, err := os.Stat(DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
