package store

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Filesystem stores each key as one JSON file under a root directory.
// Keys are percent-escaped so arbitrary names map to safe filenames.
type Filesystem struct {
	root string
}

// NewFilesystem creates the root directory if needed. An empty root
// defaults to ./roomdata.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "roomdata"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, err
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) path(key string) string {
	return filepath.Join(f.root, url.PathEscape(key)+".json")
}

func (f *Filesystem) Put(key string, payload []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o640); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

func (f *Filesystem) Get(key string) ([]byte, error) {
	payload, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return payload, err
}

func (f *Filesystem) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *Filesystem) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *Filesystem) Close() error { return nil }
