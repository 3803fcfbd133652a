package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a KV backed by one JSON file per key inside a directory. It is the
// default backend for the CLI so saved forms survive between runs.
type Dir struct {
	root string
}

// NewDir constructs a directory-backed store. The directory is created lazily
// on the first write.
func NewDir(root string) (*Dir, error) {
	cleaned := strings.TrimSpace(root)
	if cleaned == "" {
		return nil, errors.New("storage: directory path is required")
	}
	return &Dir{root: cleaned}, nil
}

func (d *Dir) Get(key string) (string, bool, error) {
	path, err := d.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return string(data), true, nil
}

func (d *Dir) Set(key, value string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("storage: create %s: %w", d.root, err)
	}
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	return nil
}

func (d *Dir) Delete(key string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (d *Dir) path(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || strings.ContainsAny(trimmed, `/\`) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(d.root, trimmed+".json"), nil
}
