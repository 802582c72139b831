package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSlot(t *testing.T, dataDir, blob string) string {
	t.Helper()
	slot := slotFile(dataDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(slot), 0o755))
	require.NoError(t, os.WriteFile(slot, []byte(blob), 0o644))
	return slot
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	src := t.TempDir()
	blob := `{"tasks":[{"id":"1","title":"a","details":"","workload":2,"status":"Backlog","iterationId":"current_sprint"}],"currentIteration":{"id":"current_sprint","title":"Current Sprint","startDate":"","endDate":"","holidays":[],"workLimit":8}}`
	seedSlot(t, src, blob)

	archive := filepath.Join(t.TempDir(), "board.json.gz")
	require.NoError(t, Backup(src, archive))

	n, err := Verify(archive)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	dst := t.TempDir()
	require.NoError(t, Restore(archive, dst))

	restored, err := os.ReadFile(slotFile(dst))
	require.NoError(t, err)
	assert.JSONEq(t, blob, string(restored))
}

func TestBackupMissingSlot(t *testing.T) {
	err := Backup(t.TempDir(), filepath.Join(t.TempDir(), "out.json.gz"))
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not gzip"), 0o644))

	_, err := Verify(path)
	assert.Error(t, err)
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	src := t.TempDir()
	seedSlot(t, src, "{truncated")

	archive := filepath.Join(t.TempDir(), "board.json.gz")
	require.NoError(t, Backup(src, archive))

	dst := t.TempDir()
	err := Restore(archive, dst)
	assert.Error(t, err, "invalid JSON must not be restored")
	_, statErr := os.Stat(slotFile(dst))
	assert.True(t, os.IsNotExist(statErr), "target slot must stay untouched")
}
