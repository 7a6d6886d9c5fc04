package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestStdinToStdout(t *testing.T) {
	stdout, stderr, err := execute(t, "hello spool", "--temp-dir", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "hello spool" {
		t.Fatalf("stdout is %q, expected %q", stdout, "hello spool")
	}
	if !strings.Contains(stderr, "rolled=false") {
		t.Errorf("log %q does not report an in-memory body", stderr)
	}
}

func TestLargeFilePersisted(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.bin")
	body := bytes.Repeat([]byte("spool"), 2000)
	if err := os.WriteFile(input, body, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "output.bin")

	_, stderr, err := execute(t, "", "--max-size", "100", "--temp-dir", dir, "--out", out, input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "rolled=true") {
		t.Errorf("log %q does not report a rolled body", stderr)
	}
	if !strings.Contains(stderr, "persisted temp file") {
		t.Errorf("log %q does not report persisting", stderr)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Fatal("persisted output does not match input")
	}
}

func TestSmallBodyWrittenToOut(t *testing.T) {
	out := filepath.Join(t.TempDir(), "small.txt")
	_, _, err := execute(t, "tiny", "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "tiny" {
		t.Fatalf("output is %q, expected %q", got, "tiny")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "spool.yaml")
	if err := os.WriteFile(cfg, []byte("max_size: 3\ntemp_dir: "+dir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(t, "more than three", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "more than three" {
		t.Fatalf("stdout is %q", stdout)
	}
	if !strings.Contains(stderr, "rolled=true") {
		t.Errorf("log %q does not report a rolled body", stderr)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestMissingInput(t *testing.T) {
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "missing"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}
