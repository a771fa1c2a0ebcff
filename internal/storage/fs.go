package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// FileStorage implements Storage on a filesystem directory. Objects are served
// over HTTP by Handler, mounted at publicBase.
type FileStorage struct {
	fs         afero.Fs
	publicBase string
}

// NewFileStorage stores objects in fs, which is treated as the bucket root.
func NewFileStorage(fs afero.Fs, publicBase string) *FileStorage {
	return &FileStorage{fs: fs, publicBase: publicBase}
}

// NewDirStorage stores objects under dir on the local disk, creating it if needed.
func NewDirStorage(dir, publicBase string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %q: %w", dir, err)
	}
	return NewFileStorage(afero.NewBasePathFs(afero.NewOsFs(), dir), publicBase), nil
}

// Put writes reader to key. Parent directories are created as needed. The
// exclusive create makes overwrite=false safe against concurrent writers.
func (s *FileStorage) Put(ctx context.Context, key string, reader io.Reader, _ int64, _ string, overwrite bool) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := "/" + key
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return "", fmt.Errorf("create parent of %q: %w", key, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := s.fs.OpenFile(name, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("put object %q: %w", key, ErrObjectExists)
		}
		return "", fmt.Errorf("open %q: %w", key, err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return "", fmt.Errorf("write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w", key, err)
	}
	return key, nil
}

// Resolve returns publicBase joined with key.
func (s *FileStorage) Resolve(_ context.Context, key string) string {
	return joinURL(s.publicBase, key)
}

// Handler serves stored objects by key. Mount it with http.StripPrefix so
// that request paths are keys. Directory listings are not served.
func (s *FileStorage) Handler() http.Handler {
	files := http.FileServer(afero.NewHttpFs(s.fs).Dir("/"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
