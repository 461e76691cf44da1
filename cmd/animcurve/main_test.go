package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	ok := filepath.Join(root, "input", "recordings")
	failed := ensureDirs(ok, filepath.Join(blocker, "output"))

	assert.Equal(t, 1, failed)
	info, err := os.Stat(ok)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
