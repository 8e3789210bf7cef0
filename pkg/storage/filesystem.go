package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalArchive keeps copies of rendered slot sheets on disk so the
// front desk can reprint a day without hitting the API again.
type LocalArchive struct {
	baseDir string
}

// NewLocalArchive ensures the archive directory exists.
func NewLocalArchive(baseDir string) (*LocalArchive, error) {
	if baseDir == "" {
		baseDir = "./sheets"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &LocalArchive{baseDir: baseDir}, nil
}

// Save writes data under the given relative name, creating intermediate
// directories as needed, and returns the relative name back. A nil
// archive is a no-op so callers can leave archiving unconfigured.
func (a *LocalArchive) Save(name string, data []byte) (string, error) {
	if a == nil {
		return name, nil
	}
	path := a.resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archived sheet: %w", err)
	}
	return name, nil
}

// Delete removes an archived sheet. Missing files are not an error.
func (a *LocalArchive) Delete(name string) error {
	if a == nil {
		return nil
	}
	if err := os.Remove(a.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete archived sheet: %w", err)
	}
	return nil
}

// CleanupOlderThan drops sheets whose mtime predates the TTL and
// returns how many were removed.
func (a *LocalArchive) CleanupOlderThan(ttl time.Duration) (int, error) {
	if a == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-ttl)
	removed := 0
	err := filepath.WalkDir(a.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("cleanup sheet archive: %w", err)
	}
	return removed, nil
}

func (a *LocalArchive) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.baseDir, name)
}
