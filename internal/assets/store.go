// Package assets keeps uploaded pen images in a flat directory, keyed by the client's filename.
package assets

import (
	"io"             // Stream copy
	"mime/multipart" // Uploaded file headers
	"os"             // Filesystem access
	"path/filepath"  // Path joining

	"github.com/pkg/errors" // Error wrapping
)

// Store is a directory of uploaded images
type Store struct {
	dir string // Root directory, also mounted at /static
}

// New returns a Store rooted at dir, creating the directory when absent
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create asset dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory
func (s *Store) Dir() string {
	return s.dir
}

// Path maps a stored name to its file
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save writes the upload under the client's filename and returns that name.
// An existing file with the same name is overwritten.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	name := fh.Filename
	if name == "" {
		return "", errors.New("upload has no filename")
	}
	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	dst, err := os.Create(s.Path(name))
	if err != nil {
		return "", errors.Wrapf(err, "create %s", name)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", errors.Wrapf(err, "write %s", name)
	}
	if err := dst.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", name)
	}
	return name, nil
}
