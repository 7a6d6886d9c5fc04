package tempfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetTempDirWithPreferences(t *testing.T) {
	result1 := GetTempDir("", true)
	if result1 == "" {
		t.Error("Expected non-empty directory with preferDiskBacked=true")
	}

	result2 := GetTempDir("", false)
	if result2 == "" {
		t.Error("Expected non-empty directory with preferDiskBacked=false")
	}

	t.Logf("preferDiskBacked=true: %s", result1)
	t.Logf("preferDiskBacked=false: %s", result2)
}

func TestGetTempDirWithSpecificDir(t *testing.T) {
	testDir := t.TempDir()

	result := GetTempDir(testDir, true)
	if result != testDir {
		t.Errorf("Expected GetTempDir to return %s, got %s", testDir, result)
	}
}

func TestGetTempDirWithUnusableDir(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "testfile")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result := GetTempDir(testFile, false)
	if result == testFile {
		t.Errorf("Expected GetTempDir to skip regular file %s", testFile)
	}
	if result != GetTempDir("", false) {
		t.Errorf("Expected fallback to discovered directory, got %s", result)
	}
}

func TestGetTempDirConsistency(t *testing.T) {
	result1 := GetTempDir("", true)
	result2 := GetTempDir("", true)

	if result1 != result2 {
		t.Errorf("Expected consistent results, got %s and %s", result1, result2)
	}
}

func TestIsDirectoryUsable(t *testing.T) {
	testDir := t.TempDir()

	if !isDirectoryUsable(testDir) {
		t.Errorf("Expected existing directory %s to be usable", testDir)
	}

	nonExistentDir := filepath.Join(testDir, "subdir")
	if !isDirectoryUsable(nonExistentDir) {
		t.Errorf("Expected creatable directory %s to be usable", nonExistentDir)
	}

	testFile := filepath.Join(testDir, "testfile")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if isDirectoryUsable(testFile) {
		t.Errorf("Expected file %s to not be usable as directory", testFile)
	}
}

func TestDiskPreferredCandidates(t *testing.T) {
	candidates := diskPreferredCandidates()

	switch runtime.GOOS {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris":
		found := false
		for _, candidate := range candidates {
			if candidate == "/var/tmp" {
				found = true
				break
			}
		}
		if !found {
			t.Error("Expected /var/tmp to be included in disk-preferred candidates")
		}
	default:
		t.Logf("%s disk-preferred candidates: %v", runtime.GOOS, candidates)
	}
}

func TestFallbackCandidates(t *testing.T) {
	fallbacks := fallbackCandidates()

	if len(fallbacks) == 0 {
		t.Error("Expected some fallback directories")
	}
	for _, fallback := range fallbacks {
		if !filepath.IsAbs(fallback) {
			t.Errorf("Expected fallback %s to be absolute path", fallback)
		}
		if filepath.Base(fallback) != spoolTempDirName {
			t.Errorf("Expected fallback %s to end in %s", fallback, spoolTempDirName)
		}
	}
}
