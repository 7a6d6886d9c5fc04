package tempfile

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// name of the subdirectory used under the home or working directory
// when no system temp directory is usable
const spoolTempDirName = ".spooled-tmp"

var (
	// pre-computed directory choices
	diskPreferredDir string
	memoryAllowedDir string
	dirDiscoveryOnce sync.Once
)

// GetTempDir returns the directory new temp files should be created in.
// A non-empty dir is returned as is if it exists as a directory or could be
// created. Otherwise a directory is discovered once and cached: when
// preferDiskBacked is set, locations that are usually disk backed (like
// /var/tmp) are tried before the OS temp dir, which may be a tmpfs.
func GetTempDir(dir string, preferDiskBacked bool) string {
	if dir != "" && isDirectoryUsable(dir) {
		return dir
	}

	dirDiscoveryOnce.Do(discoverDirectories)

	if preferDiskBacked {
		return diskPreferredDir
	}
	return memoryAllowedDir
}

func discoverDirectories() {
	osTemp := os.TempDir()
	fallbacks := fallbackCandidates()

	diskPreferredDir = firstUsable(append(append(diskPreferredCandidates(), osTemp), fallbacks...), osTemp)
	memoryAllowedDir = firstUsable(append([]string{osTemp}, fallbacks...), osTemp)
}

func firstUsable(candidates []string, fallback string) string {
	for _, c := range candidates {
		if isDirectoryUsable(c) {
			return c
		}
	}
	return fallback
}

// diskPreferredCandidates returns directories that are more likely to be
// disk backed than memory backed.
func diskPreferredCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/var/tmp", "/private/var/tmp"}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris":
		return []string{"/var/tmp"}
	default:
		return nil
	}
}

// fallbackCandidates returns process owned subdirectories of the home and
// working directories.
func fallbackCandidates() []string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, spoolTempDirName))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, spoolTempDirName))
	}
	return candidates
}

// isDirectoryUsable reports whether dir is a directory or does not exist yet
// and may be created. Writability is only checked when the file is created.
func isDirectoryUsable(dir string) bool {
	stat, err := os.Stat(dir)
	if err != nil {
		return os.IsNotExist(err)
	}
	return stat.IsDir()
}
