package infra_file

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
	"github.com/spf13/afero"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9@._-]`)

// Backend keeps one JSON file per key under a single directory.
type Backend struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) (*Backend, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Backend{fs: fs, dir: dir}, nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := afero.ReadFile(b.fs, b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage_keyed.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	return afero.WriteFile(b.fs, b.path(key), value, 0o644)
}

func (b *Backend) Delete(_ context.Context, key string) error {
	err := b.fs.Remove(b.path(key))
	if os.IsNotExist(err) {
		return storage_keyed.ErrNotFound
	}
	return err
}

func (b *Backend) Keys(_ context.Context) ([]string, error) {
	infos, err := afero.ReadDir(b.fs, b.dir)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(info.Name(), ".json"))
	}
	return keys, nil
}

func (b *Backend) path(key string) string {
	safe := unsafeKeyChars.ReplaceAllString(key, "_")
	return filepath.Join(b.dir, safe+".json")
}
