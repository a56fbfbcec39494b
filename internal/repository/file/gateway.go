package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
)

// TempFilePrefix is the prefix of in-flight snapshot files
const TempFilePrefix = "library-tmp-"

// snapshotGlob matches the files written for the library.* keys
const snapshotGlob = "library.*.json"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Gateway stores each key as <dir>/<key>.json. Writes go to a temp file in
// the same directory and are renamed into place, so a crash never leaves a
// half-written snapshot.
type Gateway struct {
	dir    string
	logger *slog.Logger
}

// NewGateway creates the data directory if needed
func NewGateway(dir string, logger *slog.Logger) (*Gateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Gateway{dir: dir, logger: logger}, nil
}

// Path returns the file backing key
func (g *Gateway) Path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(g.dir, key+".json"), nil
}

// Load reads the file for key; a missing file is not an error
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := g.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Save replaces the file for key atomically
func (g *Gateway) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := g.Path(key)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	g.logger.Debug("snapshot saved", "key", key, "path", path, "bytes", len(data))
	return nil
}

// Purge removes the library snapshot files and any leftover temp file in the
// data directory. Other files and the directory itself are kept.
func (g *Gateway) Purge(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var removed int
	for _, pattern := range []string{snapshotGlob, TempFilePrefix + "*"} {
		matches, err := filepath.Glob(filepath.Join(g.dir, pattern))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", m, err)
			}
			removed++
		}
	}
	g.logger.Info("snapshots purged", "dir", g.dir, "files", removed)
	return nil
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
