package tempfile

import (
	"io"
)

// File defines the random access operations a spooled stream needs from its
// on-disk backing store. Implementations handle the underlying storage
// mechanism (an OS temp file, or memory for tests).
type File interface {
	io.Reader
	io.Writer
	io.Seeker

	// Close releases the file and removes it from storage unless it was persisted.
	io.Closer

	// Truncate changes the size of the file without moving the cursor.
	// Growing the file fills the new region with zero bytes.
	Truncate(size int64) error

	// Sync commits the current contents to stable storage.
	Sync() error

	// Name returns the path of the file, or a descriptive name for in-memory files.
	Name() string
}

// Factory creates a new empty File in dir. Prefix is used to build the file name.
type Factory func(dir, prefix string, preferDiskBacked bool) (File, error)
