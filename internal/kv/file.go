package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a filesystem-backed Store holding one JSON file per key under a
// base directory.
type File struct {
	dir string
}

// NewFile creates a file store rooted at dir, creating the directory if it
// does not exist.
func NewFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Read(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read storage key '%s': %w", key, err)
	}
	return data, true, nil
}

func (f *File) Write(ctx context.Context, key string, value []byte) error {
	// Write-then-rename so a crash mid-write cannot truncate the snapshot.
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("failed to write storage key '%s': %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("failed to commit storage key '%s': %w", key, err)
	}
	return nil
}
