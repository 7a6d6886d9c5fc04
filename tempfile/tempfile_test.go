package tempfile_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/lanrat/spooled/tempfile"
)

// exercise runs the same random access script against any File
func exercise(t *testing.T, f tempfile.File) {
	t.Helper()
	if _, err := f.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(2, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("de")); err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(9); err != nil {
		t.Fatal(err)
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 7 {
		t.Fatalf("Truncate moved cursor to %d, expected 7", pos)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte("abc\x00\x00de\x00\x00")
	if !bytes.Equal(got, expected) {
		t.Fatalf("read %q, expected %q", got, expected)
	}
	if err := f.Sync(); err != nil {
		t.Fatal(err)
	}
}

func TestDiskFileRandomAccess(t *testing.T) {
	f, err := tempfile.New(t.TempDir(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	exercise(t, f)
}

func TestMockFileRandomAccess(t *testing.T) {
	f := tempfile.Mock(0)
	exercise(t, f)
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if !f.Closed() {
		t.Fatal("Expected mock to report closed")
	}
}

func TestMockFileWriteLimit(t *testing.T) {
	f := tempfile.Mock(0)
	f.WriteLimit = 4

	n, err := f.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("Write returned (%d, %v), expected (3, nil)", n, err)
	}
	n, err = f.Write([]byte("def"))
	if !errors.Is(err, tempfile.ErrInjected) {
		t.Fatalf("Expected ErrInjected, got %v", err)
	}
	if n != 1 {
		t.Fatalf("Write past limit wrote %d bytes, expected 1", n)
	}
	if string(f.Bytes()) != "abcd" {
		t.Fatalf("content %q, expected %q", f.Bytes(), "abcd")
	}
}

func TestMockFactory(t *testing.T) {
	m := tempfile.Mock(0)
	factory := tempfile.MockFactory(m)

	f, err := factory("", "", true)
	if err != nil {
		t.Fatal(err)
	}
	if f != tempfile.File(m) {
		t.Fatal("Expected factory to hand out the provided mock")
	}
	if _, err := factory("", "", true); !errors.Is(err, tempfile.ErrInjected) {
		t.Fatalf("Expected ErrInjected once mocks are used up, got %v", err)
	}
}

func TestMockNamesUnique(t *testing.T) {
	a, b := tempfile.Mock(0), tempfile.Mock(0)
	if a.Name() == b.Name() {
		t.Fatalf("Expected unique mock names, both were %s", a.Name())
	}
}
