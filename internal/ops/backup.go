// Package ops holds the operational tooling for the board's durable slot:
// gzip snapshots, restores and integrity checks used by cmd/ops.
package ops

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyoko-docs/kanban/internal/storage"
)

// slotFile returns the path of the board slot inside a data directory.
func slotFile(dataDir string) string {
	return filepath.Join(dataDir, "board", storage.BoardKey+".json")
}

// Backup writes a gzip snapshot of the board slot to archivePath.
func Backup(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("dataDir and archivePath are required")
	}

	src, err := os.Open(slotFile(dataDir))
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	gz.Name = storage.BoardKey + ".json"
	if _, err := io.Copy(gz, src); err != nil {
		_ = gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return dst.Sync()
}

// Restore unpacks a snapshot back into the board slot of dataDir. The
// snapshot is verified before anything is overwritten.
func Restore(archivePath, dataDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	if archivePath == "" || dataDir == "" {
		return fmt.Errorf("archivePath and dataDir are required")
	}

	blob, err := readSnapshot(archivePath)
	if err != nil {
		return err
	}

	out := slotFile(dataDir)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, blob, 0o644)
}

// Verify checks that an archive holds a parseable board snapshot and
// returns the number of tasks it carries.
func Verify(archivePath string) (int, error) {
	blob, err := readSnapshot(archivePath)
	if err != nil {
		return 0, err
	}
	var snap storage.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return 0, fmt.Errorf("snapshot does not parse: %w", err)
	}
	return len(snap.Tasks), nil
}

func readSnapshot(archivePath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("not a gzip snapshot: %w", err)
	}
	defer gz.Close()

	blob, err := io.ReadAll(gz)
	if err != nil {
		return nil, err
	}
	if !json.Valid(blob) {
		return nil, fmt.Errorf("snapshot is not valid JSON")
	}
	return blob, nil
}
