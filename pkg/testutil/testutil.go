package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile writes content at dir/rel, creating parent directories.
// rel uses forward slashes. It returns the full path.
func CreateFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateTree writes every rel -> content pair under dir
func CreateTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		CreateFile(t, dir, rel, content)
	}
}

// CreateDir creates dir/rel and its parents
func CreateDir(t *testing.T, dir, rel string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// CreateSymlink creates link pointing to target
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// ReadFile returns the content of path, following symlinks
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// AssertFileContent checks that path reads as expected
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	if actual := ReadFile(t, path); actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertSymlink checks that link is a symlink whose stored destination is
// the canonical path of expectedTarget
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("Symlink %s does not exist: %v", link, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("%s is not a symlink (mode %s)", link, info.Mode())
	}

	actual, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("Failed to read symlink %s: %v", link, err)
	}
	expected, err := filepath.EvalSymlinks(expectedTarget)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", expectedTarget, err)
	}
	if actual != expected {
		t.Errorf("Symlink %s target mismatch\nExpected: %s\nActual: %s", link, expected, actual)
	}
}

// AssertNoFile checks that nothing, not even a dangling symlink, is at path
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("%s exists but should not", path)
	}
}

// AssertEmptyDir checks that dir exists and has no entries
func AssertEmptyDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}
	if len(entries) > 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Directory %s should be empty, has %v", dir, names)
	}
}
