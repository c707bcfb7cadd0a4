// Package materialize produces the output tree: templates are rendered,
// everything else is copied, and the relative layout of the input is kept.
package materialize

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/filesystem"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/scanner"
	"github.com/arthur-debert/dfm/pkg/template"
	"github.com/arthur-debert/dfm/pkg/values"
)

const dirPerm fs.FileMode = 0755

// Output is a file materialized under the output root
type Output struct {
	Source scanner.Entry
	// Path is the materialized file, rooted at the output root
	Path string
	// Rel is Path relative to the output root. It equals Source.Rel, minus
	// the template marker when Rendered.
	Rel      string
	Rendered bool
}

// Materializer writes source entries into the output root
type Materializer struct {
	outputRoot string
	classifier template.Classifier
	engine     *template.Engine
	fs         filesystem.FS
}

// New creates a Materializer. engine may be nil when no template is routed
// through it.
func New(outputRoot string, classifier template.Classifier, engine *template.Engine, fsys filesystem.FS) *Materializer {
	return &Materializer{
		outputRoot: outputRoot,
		classifier: classifier,
		engine:     engine,
		fs:         fsys,
	}
}

// Plan computes the Output for entry without touching the filesystem.
// The mapping depends only on the entry's relative path and its
// classification.
func (m *Materializer) Plan(entry scanner.Entry) Output {
	rendered := m.classifier.IsTemplate(entry.Path)
	rel := entry.Rel
	if rendered {
		rel = m.classifier.OutputName(rel)
	}
	return Output{
		Source:   entry,
		Path:     filepath.Join(m.outputRoot, rel),
		Rel:      rel,
		Rendered: rendered,
	}
}

// Materialize renders templates and copies everything else
func (m *Materializer) Materialize(entry scanner.Entry, vals values.Table) (Output, error) {
	if m.classifier.IsTemplate(entry.Path) {
		return m.Render(entry, vals)
	}
	return m.Copy(entry)
}

// Copy writes a byte-for-byte copy of entry under the output root,
// replacing any existing file and keeping the source permission bits.
func (m *Materializer) Copy(entry scanner.Entry) (Output, error) {
	out := Output{
		Source: entry,
		Path:   filepath.Join(m.outputRoot, entry.Rel),
		Rel:    entry.Rel,
	}

	info, err := m.fs.Stat(entry.Path)
	if err != nil {
		return Output{}, ioError(err, "failed to stat source", entry.Path, out.Path)
	}

	if err := m.fs.MkdirAll(filepath.Dir(out.Path), dirPerm); err != nil {
		return Output{}, ioError(err, "failed to create output directory", entry.Path, out.Path)
	}

	src, err := m.fs.Open(entry.Path)
	if err != nil {
		return Output{}, ioError(err, "failed to open source", entry.Path, out.Path)
	}
	defer func() { _ = src.Close() }()

	if err := m.fs.WriteFileAtomic(out.Path, src, info.Mode().Perm()); err != nil {
		return Output{}, ioError(err, "failed to copy file", entry.Path, out.Path)
	}

	logger := logging.GetLogger("materialize")
	logger.Debug().
		Str("source", entry.Path).
		Str("output", out.Path).
		Msg("Copied")
	return out, nil
}

// Render executes entry as a template against vals and writes the result
// under the output root with the marker extension stripped. The write is
// atomic: a failed render leaves any previous output untouched.
func (m *Materializer) Render(entry scanner.Entry, vals values.Table) (Output, error) {
	rel := m.classifier.OutputName(entry.Rel)
	out := Output{
		Source:   entry,
		Path:     filepath.Join(m.outputRoot, rel),
		Rel:      rel,
		Rendered: true,
	}

	if m.engine == nil {
		return Output{}, errors.Newf(errors.ErrInternal, "no template engine configured to render %s", entry.Path)
	}

	info, err := m.fs.Stat(entry.Path)
	if err != nil {
		return Output{}, ioError(err, "failed to stat template", entry.Path, out.Path)
	}

	source, err := m.fs.ReadFile(entry.Path)
	if err != nil {
		return Output{}, ioError(err, "failed to read template", entry.Path, out.Path)
	}

	rendered, err := m.engine.Render(entry.Path, string(source), vals)
	if err != nil {
		return Output{}, err
	}

	if err := m.fs.MkdirAll(filepath.Dir(out.Path), dirPerm); err != nil {
		return Output{}, ioError(err, "failed to create output directory", entry.Path, out.Path)
	}

	if err := m.fs.WriteFileAtomic(out.Path, strings.NewReader(rendered), info.Mode().Perm()); err != nil {
		return Output{}, ioError(err, "failed to write rendered template", entry.Path, out.Path)
	}

	logger := logging.GetLogger("materialize")
	logger.Info().
		Str("source", entry.Path).
		Str("output", out.Path).
		Msg("Templated")
	return out, nil
}

func ioError(err error, msg, source, output string) error {
	return errors.Wrap(err, errors.ErrIO, msg).
		WithDetail("source", source).
		WithDetail("output", output)
}
