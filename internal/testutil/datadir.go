// Package testutil provides reusable test fixtures for wr tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Sample data file names in the repository's data directory.
var SampleFiles = []string{"schema.sql", "Wine.csv", "Review.csv", "Reviewer.csv"}

// SampleDir returns the absolute path of the repository's data directory.
func SampleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "data")
}

// TestDataDir is a temporary data directory for loader and CLI tests.
type TestDataDir struct {
	Path   string
	t      *testing.T
	sample []string
	files  map[string]string
}

// NewTestDataDir creates a new data directory builder.
// Call Build() to create the actual directory.
func NewTestDataDir(t *testing.T) *TestDataDir {
	t.Helper()
	return &TestDataDir{
		t:     t,
		files: make(map[string]string),
	}
}

// WithSample copies the named files from the sample data. No names copies
// every sample file.
func (d *TestDataDir) WithSample(names ...string) *TestDataDir {
	if len(names) == 0 {
		names = SampleFiles
	}
	d.sample = append(d.sample, names...)
	return d
}

// WithFile adds a file with the given content, replacing any sample copy.
func (d *TestDataDir) WithFile(name, content string) *TestDataDir {
	d.files[name] = content
	return d
}

// Build creates the directory and all configured files.
func (d *TestDataDir) Build() *TestDataDir {
	d.t.Helper()

	d.Path = d.t.TempDir()

	src := SampleDir(d.t)
	for _, name := range d.sample {
		if _, ok := d.files[name]; ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, name))
		if err != nil {
			d.t.Fatalf("failed to read sample %s: %v", name, err)
		}
		d.writeFile(name, string(data))
	}

	for name, content := range d.files {
		d.writeFile(name, content)
	}

	return d
}

// File returns the absolute path of name inside the directory.
func (d *TestDataDir) File(name string) string {
	return filepath.Join(d.Path, name)
}

func (d *TestDataDir) writeFile(name, content string) {
	d.t.Helper()
	if err := os.WriteFile(d.File(name), []byte(content), 0o644); err != nil {
		d.t.Fatalf("failed to write %s: %v", name, err)
	}
}
