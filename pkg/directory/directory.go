// Package directory defines the abstract byte-addressable storage
// contract codecs and the index writer/reader consume. Concrete
// directory implementations (filesystem, in-memory, or otherwise) are
// external collaborators; this package only fixes the interface.
package directory

import "io"

// Directory is an abstract byte-addressable store. Filenames are opaque
// byte strings chosen by the codec; the directory itself assigns no
// meaning to them.
type Directory interface {
	// CreateOutput opens name for writing, creating or truncating it.
	CreateOutput(name string) (io.WriteCloser, error)

	// OpenInput opens name for reading.
	OpenInput(name string) (io.ReadCloser, error)

	// Rename atomically replaces newName's contents with oldName's and
	// removes oldName.
	Rename(oldName, newName string) error

	// Delete removes name. Deleting a name that does not exist is not
	// an error.
	Delete(name string) error

	// ListFiles returns every name currently present, in unspecified
	// order.
	ListFiles() ([]string, error)

	// Length returns the byte length of name.
	Length(name string) (int64, error)
}
