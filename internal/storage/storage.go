package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// MediaStore keeps uploaded media on the local filesystem under baseDir and
// serves it at baseURL. Object names are ULIDs so uploads never collide and
// sort by creation time.
type MediaStore struct {
	baseDir string
	baseURL string
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Name    string
	URL     string
	Size    int64
	ModTime time.Time
}

// NewMediaStore creates the base directory if needed.
func NewMediaStore(baseDir, baseURL string) (*MediaStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &MediaStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save stores the upload under folder with a fresh ULID name, keeping the
// original extension, and returns the public URL.
func (s *MediaStore) Save(ctx context.Context, folder, filename string, reader io.Reader) (string, error) {
	name := objectName(folder, filename)
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.URLFor(name), nil
}

// URLFor maps an object name to its public URL.
func (s *MediaStore) URLFor(name string) string {
	return s.baseURL + "/media/" + name
}

// Open returns a reader for a stored object.
func (s *MediaStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored object.
func (s *MediaStore) Delete(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(name))); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List walks the store and returns every object. The sweep job uses this to
// find uploads no row references any more.
func (s *MediaStore) List(ctx context.Context) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	err := filepath.WalkDir(s.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		objects = append(objects, ObjectInfo{
			Name:    name,
			URL:     s.URLFor(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	return objects, nil
}

// Dir exposes the base directory so the entrypoint can mount a file server
// over the stored objects.
func (s *MediaStore) Dir() string {
	return s.baseDir
}

func objectName(folder, filename string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy())
	ext := strings.ToLower(filepath.Ext(filename))
	name := id.String() + ext
	folder = path.Clean("/" + folder)
	if folder == "/" {
		return name
	}
	return strings.TrimPrefix(folder, "/") + "/" + name
}
