// Package scanner enumerates the regular files of a source tree.
package scanner

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/filesystem"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/paths"
)

// Entry is a regular file found under the scanned root
type Entry struct {
	// Path is the file path as walked, rooted at the scan root
	Path string
	// Rel is Path relative to the scan root
	Rel string
	// Ext is the final extension without the leading dot
	Ext string
}

// Scanner walks a root directory. Metadata is read through FS with the
// follow-symlinks stat, so a link to a file counts as a file.
type Scanner struct {
	fs filesystem.FS
}

// New creates a Scanner backed by fsys
func New(fsys filesystem.FS) *Scanner {
	return &Scanner{fs: fsys}
}

// Walk lazily yields every regular file under root. Directories are
// descended into but not yielded. A root that is itself a symlink is
// followed, while entry paths stay rooted at root as given. A missing root
// yields nothing. The first unreadable entry yields a TRAVERSAL error and
// ends the sequence.
func (s *Scanner) Walk(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		logger := logging.GetLogger("scanner")

		rootInfo, err := s.fs.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug().Str("root", root).Msg("Input root does not exist, nothing to scan")
				return
			}
			yield(Entry{}, errors.Wrapf(err, errors.ErrTraversal, "cannot read input root %s", root).
				WithDetail("path", root))
			return
		}
		if !rootInfo.IsDir() {
			yield(Entry{}, errors.Newf(errors.ErrTraversal, "input root %s is not a directory", root).
				WithDetail("path", root))
			return
		}

		walkRoot, err := s.resolveRoot(root)
		if err != nil {
			yield(Entry{}, err)
			return
		}

		stopped := false
		walkErr := filepath.WalkDir(walkRoot, func(walked string, d fs.DirEntry, err error) error {
			if err != nil {
				return errors.Wrapf(err, errors.ErrTraversal, "cannot traverse %s", walked).
					WithDetail("path", walked)
			}
			if walked == walkRoot {
				return nil
			}

			rel, err := filepath.Rel(walkRoot, walked)
			if err != nil {
				return errors.Wrapf(err, errors.ErrTraversal, "cannot relate %s to %s", walked, root)
			}
			path := walked
			if walkRoot != root {
				path = filepath.Join(root, rel)
			}

			logger.Trace().Str("path", path).Msg("Getting metadata")
			info, err := s.fs.Stat(path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrTraversal, "cannot read metadata for %s", path).
					WithDetail("path", path)
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			if !yield(Entry{Path: path, Rel: rel, Ext: paths.Ext(path)}, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})

		if walkErr != nil && !stopped {
			yield(Entry{}, walkErr)
		}
	}
}

// resolveRoot returns the directory to walk. WalkDir does not descend into a
// symlinked root, so a root link is resolved first.
func (s *Scanner) resolveRoot(root string) (string, error) {
	info, err := s.fs.Lstat(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTraversal, "cannot read input root %s", root).
			WithDetail("path", root)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return root, nil
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTraversal, "cannot resolve input root %s", root).
			WithDetail("path", root)
	}
	return resolved, nil
}

// Scan collects Walk into a slice sorted by relative path. It fails on the
// first traversal error and returns no partial result.
func (s *Scanner) Scan(root string) ([]Entry, error) {
	var entries []Entry
	for entry, err := range s.Walk(root) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Rel < entries[j].Rel
	})
	return entries, nil
}
