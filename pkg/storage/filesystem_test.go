package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalArchiveSaveAndDelete(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	name, err := archive.Save("court-1/2025-06-02.csv", []byte("Inicio,Fin\n18:00,18:30\n"))
	require.NoError(t, err)
	require.Equal(t, "court-1/2025-06-02.csv", name)

	data, err := os.ReadFile(archive.resolve(name))
	require.NoError(t, err)
	require.Contains(t, string(data), "18:00")

	require.NoError(t, archive.Delete(name))
	_, err = os.Stat(archive.resolve(name))
	require.True(t, os.IsNotExist(err))

	// deleting twice must stay silent
	require.NoError(t, archive.Delete(name))
}

func TestLocalArchiveCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewLocalArchive(dir)
	require.NoError(t, err)

	_, err = archive.Save("old.pdf", []byte("x"))
	require.NoError(t, err)
	_, err = archive.Save("fresh.pdf", []byte("y"))
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.pdf"), stale, stale))

	removed, err := archive.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dir, "old.pdf"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "fresh.pdf"))
	require.NoError(t, err)
}

func TestLocalArchiveNilIsNoop(t *testing.T) {
	var archive *LocalArchive

	name, err := archive.Save("anything.csv", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "anything.csv", name)

	require.NoError(t, archive.Delete("anything.csv"))

	removed, err := archive.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	require.Zero(t, removed)
}
