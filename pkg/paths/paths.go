// Package paths provides the path arithmetic shared by the pipeline stages:
// home directory resolution, mapping a path between roots, and
// canonicalization of link sources.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dfm/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// HomeDir resolves the user's home directory. $HOME wins over the
// platform lookup so tests and sandboxes can redirect it.
func HomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrHomeDir, "cannot determine home directory").
			WithDetail("env", EnvHome)
	}
	if home == "" {
		return "", errors.New(errors.ErrHomeDir, "home directory is empty").
			WithDetail("env", EnvHome)
	}
	return home, nil
}

// ExpandHome replaces a leading ~ with the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// ~user forms are not supported
		return path
	}

	home, err := HomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Rel returns path relative to root. It fails when path is not inside root,
// which would otherwise produce a "../" mapping outside the destination root.
func Rel(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %s relative to %s", path, root)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not inside %s", path, root)
	}
	return rel, nil
}

// Overlap reports whether a and b are the same directory or one lies
// inside the other. Both are made absolute first.
func Overlap(a, b string) bool {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	if absA == absB {
		return true
	}
	if _, err := Rel(absA, absB); err == nil {
		return true
	}
	_, err = Rel(absB, absA)
	return err == nil
}

// Rebase maps a path under from onto the same relative location under to
func Rebase(path, from, to string) (string, error) {
	rel, err := Rel(from, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(to, rel), nil
}

// Canonical returns the absolute path with every symlink resolved
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot make %s absolute", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot resolve %s", abs)
	}
	return resolved, nil
}

// Ext returns the final extension of path without the dot. A leading dot
// alone (".bashrc") is part of the name, not an extension.
func Ext(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return base[idx+1:]
}
