package spooled

import (
	"fmt"
	"os"

	"github.com/lanrat/spooled/tempfile"
)

// DefaultCapacity is the starting in-memory capacity when none is configured.
const DefaultCapacity = 8 * 1024

// Config holds configuration settings for a spooled TempFile
type Config struct {
	MaxSize          int64            // bytes held in memory before rolling over to disk
	InitialCapacity  int              // starting capacity of the in-memory buffer, capped by MaxSize
	TempFilesDir     string           // empty for automatic selection, see tempfile.GetTempDir
	PreferDiskBacked bool             // prefer disk backed temp dirs (/var/tmp) over tmpfs
	FilenamePrefix   string           // filename prefix for files put in temp directory
	CopyBufferSize   int              // chunk size used by Spool when copying from a reader
	TempFileFactory  tempfile.Factory // creates the on-disk backing store, nil for tempfile.Create
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		MaxSize:          1 << 20, // 1MB
		InitialCapacity:  DefaultCapacity,
		PreferDiskBacked: true,
		FilenamePrefix:   fmt.Sprintf("spooled_%d_", os.Getpid()),
		CopyBufferSize:   1 << 16, // 64k
		TempFileFactory:  tempfile.Create,
		TempFilesDir:     "",
	}
}

// mergeConfig takes a provided config and replaces any values not set with the defaults.
// The provided config is not modified.
func mergeConfig(c *Config) Config {
	d := DefaultConfig()
	if c == nil {
		return *d
	}
	m := *c
	if m.MaxSize < 0 {
		m.MaxSize = 0
	}
	if m.InitialCapacity <= 0 {
		m.InitialCapacity = d.InitialCapacity
		if int64(m.InitialCapacity) > m.MaxSize {
			m.InitialCapacity = int(m.MaxSize)
		}
	}
	if m.FilenamePrefix == "" {
		m.FilenamePrefix = d.FilenamePrefix
	}
	if m.CopyBufferSize <= 0 {
		m.CopyBufferSize = d.CopyBufferSize
	}
	if m.TempFileFactory == nil {
		m.TempFileFactory = d.TempFileFactory
	}
	// skipping TempFilesDir as it is the empty string
	// skipping PreferDiskBacked and MaxSize as their zero values are meaningful
	return m
}
