package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogDirForOS(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("APPDATA", "")

	assert.Equal(t,
		filepath.Join(home, "Library", "Application Support", "triday"),
		defaultLogDirForOS("darwin"))
	assert.Equal(t,
		filepath.Join(home, ".local", "state", "triday"),
		defaultLogDirForOS("linux"))

	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, filepath.Join("/var/state", "triday"), defaultLogDirForOS("linux"))

	t.Setenv("LOCALAPPDATA", `C:\Users\me\AppData\Local`)
	assert.Equal(t,
		filepath.Join(`C:\Users\me\AppData\Local`, "triday"),
		defaultLogDirForOS("windows"))
}
