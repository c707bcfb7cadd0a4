// Package linker creates the home-directory symlinks that point into the
// output tree.
package linker

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/filesystem"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/materialize"
	"github.com/arthur-debert/dfm/pkg/paths"
)

const dirPerm fs.FileMode = 0755

// Existing describes what occupied a link target before linking
type Existing string

const (
	ExistingNone      Existing = ""
	ExistingFile      Existing = "file"
	ExistingSymlink   Existing = "symlink"
	ExistingDirectory Existing = "directory"
	ExistingOther     Existing = "other"
)

// Link is the outcome of linking one output
type Link struct {
	// Target is the symlink path under the home directory
	Target string
	// Source is the absolute path the symlink points at
	Source string
	// Rel is Target relative to the home directory
	Rel string
	// Replaced is what was removed from Target to make room
	Replaced Existing
	// Err is a LINK or UNSAFE_OVERWRITE error when linking failed
	Err error
}

// OK reports whether the link is in place
func (l Link) OK() bool {
	return l.Err == nil
}

// Linker links outputs into a home directory
type Linker struct {
	home string
	fs   filesystem.FS
}

// New creates a Linker rooted at home
func New(home string, fsys filesystem.FS) *Linker {
	return &Linker{home: home, fs: fsys}
}

// Target returns the home path for out. It is derived from the relative path
// recorded when the output was materialized, never from a root prefix guess.
func (l *Linker) Target(out materialize.Output) string {
	return filepath.Join(l.home, out.Rel)
}

// Plan reports the link that Link would create, without changing anything
func (l *Linker) Plan(out materialize.Output) Link {
	link := Link{Target: l.Target(out), Rel: out.Rel}

	source, err := plannedSource(out.Path)
	if err != nil {
		link.Err = err
		return link
	}
	link.Source = source

	existing, err := l.inspect(link.Target)
	if err != nil {
		link.Err = err
		return link
	}
	link.Replaced = existing
	if existing == ExistingDirectory {
		if err := l.ensureEmptyDir(link.Target); err != nil {
			link.Err = err
		}
	}
	return link
}

// Link replaces whatever is at the target with a symlink to the canonical
// path of out. Re-linking an unchanged output yields the same link.
func (l *Linker) Link(out materialize.Output) Link {
	logger := logging.GetLogger("linker")
	link := Link{Target: l.Target(out), Rel: out.Rel}

	source, err := paths.Canonical(out.Path)
	if err != nil {
		link.Err = errors.Wrapf(err, errors.ErrLink, "cannot resolve materialized file %s", out.Path).
			WithDetail("target", link.Target)
		return link
	}
	link.Source = source

	existing, err := l.clear(link.Target, source)
	if err != nil {
		link.Err = err
		return link
	}
	link.Replaced = existing

	if err := l.fs.MkdirAll(filepath.Dir(link.Target), dirPerm); err != nil {
		link.Err = linkError(err, "failed to create parent directory", link)
		return link
	}

	if err := l.fs.Symlink(source, link.Target); err != nil {
		link.Err = linkError(err, "failed to create symlink", link)
		return link
	}

	logger.Info().
		Str("source", source).
		Str("target", link.Target).
		Str("replaced", string(existing)).
		Msg("Symlinked")
	return link
}

// LinkAll links every output. A failure is recorded on its Link and never
// stops the remaining outputs from being linked.
func (l *Linker) LinkAll(outs []materialize.Output) []Link {
	logger := logging.GetLogger("linker")
	links := make([]Link, 0, len(outs))
	for _, out := range outs {
		link := l.Link(out)
		if link.Err != nil {
			logger.Error().Err(link.Err).Str("target", link.Target).Msg("Failed to link")
		}
		links = append(links, link)
	}
	return links
}

// PlanAll is the dry-run counterpart of LinkAll
func (l *Linker) PlanAll(outs []materialize.Output) []Link {
	links := make([]Link, 0, len(outs))
	for _, out := range outs {
		links = append(links, l.Plan(out))
	}
	return links
}

// Failed returns the links that could not be created
func Failed(links []Link) []Link {
	var failed []Link
	for _, link := range links {
		if link.Err != nil {
			failed = append(failed, link)
		}
	}
	return failed
}

// inspect classifies what is at target without following symlinks
func (l *Linker) inspect(target string) (Existing, error) {
	info, err := l.fs.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return ExistingNone, nil
		}
		return ExistingNone, errors.Wrapf(err, errors.ErrLink, "cannot inspect %s", target).
			WithDetail("target", target)
	}

	switch mode := info.Mode(); {
	case mode&os.ModeSymlink != 0:
		return ExistingSymlink, nil
	case mode.IsDir():
		return ExistingDirectory, nil
	case mode.IsRegular():
		return ExistingFile, nil
	default:
		return ExistingOther, nil
	}
}

// clear removes whatever occupies target. Non-empty directories are left
// alone and reported as UNSAFE_OVERWRITE. The materialized file itself is
// never removed, which protects output roots that overlap the home directory.
func (l *Linker) clear(target, source string) (Existing, error) {
	existing, err := l.inspect(target)
	if err != nil || existing == ExistingNone {
		return existing, err
	}

	switch existing {
	case ExistingDirectory:
		if err := l.ensureEmptyDir(target); err != nil {
			return existing, err
		}
	case ExistingFile:
		if l.sameFile(target, source) {
			return existing, errors.Newf(errors.ErrLink, "link target %s is the materialized file itself", target).
				WithDetail("target", target).
				WithDetail("source", source)
		}
	}

	if err := l.fs.Remove(target); err != nil {
		return existing, errors.Wrapf(err, errors.ErrLink, "failed to remove existing %s at %s", existing, target).
			WithDetail("target", target)
	}
	return existing, nil
}

// plannedSource is the path Link would point at. An output that does not
// exist yet has no canonical form, so only its absolute path is known.
func plannedSource(path string) (string, error) {
	if canonical, err := paths.Canonical(path); err == nil {
		return canonical, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrLink, "cannot make %s absolute", path)
	}
	return abs, nil
}

func (l *Linker) ensureEmptyDir(target string) error {
	entries, err := l.fs.ReadDir(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrLink, "cannot read directory %s", target).
			WithDetail("target", target)
	}
	if len(entries) > 0 {
		return errors.Newf(errors.ErrUnsafeOverwrite,
			"refusing to replace non-empty directory %s with a symlink", target).
			WithDetail("target", target).
			WithDetail("entries", len(entries))
	}
	return nil
}

func (l *Linker) sameFile(a, b string) bool {
	ai, err := l.fs.Stat(a)
	if err != nil {
		return false
	}
	bi, err := l.fs.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func linkError(err error, msg string, link Link) error {
	return errors.Wrap(err, errors.ErrLink, msg).
		WithDetail("target", link.Target).
		WithDetail("source", link.Source)
}
