// Package fsdir implements a filesystem-backed directory.Directory,
// generalized from the segment-file lifecycle idiom of the teacher
// storage layer (create-dir-if-missing, atomic rename-based commit).
package fsdir

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ervinbosenbacher/ironsearch/pkg/errors"
	"github.com/ervinbosenbacher/ironsearch/pkg/filesys"
)

// Directory is a filesystem-backed directory.Directory rooted at a
// single path.
type Directory struct {
	root string
}

// New creates (if necessary) and opens a filesystem directory at root.
func New(root string) (*Directory, error) {
	if err := filesys.CreateDir(root, 0755, true); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create directory root").
			WithPath(root)
	}
	return &Directory{root: root}, nil
}

func (d *Directory) path(name string) string {
	return filepath.Join(d.root, name)
}

// CreateOutput opens name for writing, creating or truncating it.
func (d *Directory) CreateOutput(name string) (io.WriteCloser, error) {
	f, err := os.OpenFile(d.path(name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create output file").
			WithFileName(name).WithPath(d.path(name))
	}
	return f, nil
}

// OpenInput opens name for reading.
func (d *Directory) OpenInput(name string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open input file").
			WithFileName(name).WithPath(d.path(name))
	}
	return f, nil
}

// Rename atomically replaces newName with oldName's contents.
func (d *Directory) Rename(oldName, newName string) error {
	if err := os.Rename(d.path(oldName), d.path(newName)); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to rename segment file").
			WithFileName(oldName).WithPath(d.path(oldName))
	}
	return nil
}

// Delete removes name; deleting a missing file is not an error.
func (d *Directory) Delete(name string) error {
	if err := os.Remove(d.path(name)); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to delete file").
			WithFileName(name).WithPath(d.path(name))
	}
	return nil
}

// ListFiles returns every regular file name directly under the
// directory root.
func (d *Directory) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to list directory").
			WithPath(d.root)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Length returns the byte length of name.
func (d *Directory) Length(name string) (int64, error) {
	info, err := os.Stat(d.path(name))
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat file").
			WithFileName(name).WithPath(d.path(name))
	}
	return info.Size(), nil
}
