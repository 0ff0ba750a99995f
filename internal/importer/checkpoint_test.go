package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckpoint_MarkAndSkip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.txt")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)

	require.False(t, cp.Done("batch-1"))
	require.NoError(t, cp.MarkDone("batch-1"))
	require.NoError(t, cp.MarkDone("batch-2"))
	// marking twice is a no-op
	require.NoError(t, cp.MarkDone("batch-1"))
	require.True(t, cp.Done("batch-1"))
	require.Equal(t, 2, cp.Count())
	require.NoError(t, cp.Close())
}

func TestCheckpoint_ResumesAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.txt")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	require.NoError(t, cp.MarkDone("restaurant-abc"))
	require.NoError(t, cp.Close())

	// a fresh open sees the previous run's completions
	cp2, err := OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp2.Close()
	require.True(t, cp2.Done("restaurant-abc"))
	require.False(t, cp2.Done("restaurant-xyz"))
}
