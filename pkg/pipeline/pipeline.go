// Package pipeline runs the three deployment stages in order: scan the input
// root, materialize every file into the output root, then link each output
// into the home directory.
package pipeline

import (
	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/filesystem"
	"github.com/arthur-debert/dfm/pkg/linker"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/arthur-debert/dfm/pkg/materialize"
	"github.com/arthur-debert/dfm/pkg/paths"
	"github.com/arthur-debert/dfm/pkg/scanner"
	"github.com/arthur-debert/dfm/pkg/template"
	"github.com/arthur-debert/dfm/pkg/values"
)

const (
	DefaultInputRoot  = "home"
	DefaultOutputRoot = "out"
)

// Options configures a run
type Options struct {
	// InputRoot is the source tree to mirror
	InputRoot string
	// OutputRoot receives the rendered and copied files
	OutputRoot string
	// ValuesPath is the values document, read only when templates exist
	ValuesPath string
	// TemplateExt is the template marker extension, without the dot
	TemplateExt string
	// HomeDir is where links are created. Empty resolves the user's home.
	HomeDir string
	// DryRun plans outputs and links without writing anything
	DryRun bool
	// FS defaults to the host filesystem
	FS filesystem.FS
	// Engine defaults to a fresh Handlebars engine
	Engine *template.Engine
}

// Result describes what a run did, or would do when DryRun is set
type Result struct {
	InputRoot  string
	OutputRoot string
	HomeDir    string
	DryRun     bool

	Entries []scanner.Entry
	Outputs []materialize.Output
	Links   []linker.Link

	// ValuesLoaded is true when at least one template made the values
	// document necessary
	ValuesLoaded bool
	ValuesPath   string
}

// Templates counts the outputs that were rendered
func (r *Result) Templates() int {
	n := 0
	for _, out := range r.Outputs {
		if out.Rendered {
			n++
		}
	}
	return n
}

// Failed returns the links that could not be created
func (r *Result) Failed() []linker.Link {
	return linker.Failed(r.Links)
}

// Err summarizes link failures as a single LINK error, or nil when every
// link is in place
func (r *Result) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	targets := make([]string, 0, len(failed))
	for _, link := range failed {
		targets = append(targets, link.Target)
	}
	return errors.Newf(errors.ErrLink, "%d of %d link(s) failed", len(failed), len(r.Links)).
		WithDetail("targets", targets)
}

// withDefaults fills unset options
func (o Options) withDefaults() (Options, error) {
	if o.InputRoot == "" {
		o.InputRoot = DefaultInputRoot
	}
	if o.OutputRoot == "" {
		o.OutputRoot = DefaultOutputRoot
	}
	if o.ValuesPath == "" {
		o.ValuesPath = values.DefaultFile
	}
	if o.TemplateExt == "" {
		o.TemplateExt = template.DefaultMarker
	}
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Engine == nil {
		o.Engine = template.NewEngine()
	}
	if o.HomeDir == "" {
		home, err := paths.HomeDir()
		if err != nil {
			return o, err
		}
		o.HomeDir = home
	}
	return o, nil
}

// Run executes scan, classify, load values, materialize and link, strictly in
// that order. Any fatal error stops the run before the next stage. Link
// failures do not; they are collected in the Result and reported by Err.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("pipeline")

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if paths.Overlap(opts.InputRoot, opts.OutputRoot) {
		// A nested output root would be scanned again on the next run
		return nil, errors.Newf(errors.ErrInvalidInput,
			"input root %s and output root %s must not contain each other", opts.InputRoot, opts.OutputRoot).
			WithDetail("input", opts.InputRoot).
			WithDetail("output", opts.OutputRoot)
	}
	done := logging.LogOperationStart(logger, "run")
	defer done()

	result := &Result{
		InputRoot:  opts.InputRoot,
		OutputRoot: opts.OutputRoot,
		HomeDir:    opts.HomeDir,
		DryRun:     opts.DryRun,
	}

	// Scan
	entries, err := scanner.New(opts.FS).Scan(opts.InputRoot)
	if err != nil {
		return nil, err
	}
	result.Entries = entries
	logger.Debug().Int("files", len(entries)).Str("root", opts.InputRoot).Msg("Scanned input root")

	// Classify
	classifier := template.NewClassifier(opts.TemplateExt)
	var vals values.Table
	if hasTemplates(entries, classifier) {
		vals, err = values.Load(opts.ValuesPath)
		if err != nil {
			return nil, err
		}
		result.ValuesLoaded = true
		result.ValuesPath = opts.ValuesPath
	}

	// Materialize
	mat := materialize.New(opts.OutputRoot, classifier, opts.Engine, opts.FS)
	result.Outputs = make([]materialize.Output, 0, len(entries))
	for _, entry := range entries {
		if opts.DryRun {
			result.Outputs = append(result.Outputs, mat.Plan(entry))
			continue
		}
		out, err := mat.Materialize(entry, vals)
		if err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, out)
	}

	// Link
	lnk := linker.New(opts.HomeDir, opts.FS)
	if opts.DryRun {
		result.Links = lnk.PlanAll(result.Outputs)
	} else {
		result.Links = lnk.LinkAll(result.Outputs)
	}

	logger.Info().
		Int("files", len(result.Outputs)).
		Int("templates", result.Templates()).
		Int("failed", len(result.Failed())).
		Bool("dryRun", opts.DryRun).
		Msg("Run finished")
	return result, nil
}

func hasTemplates(entries []scanner.Entry, classifier template.Classifier) bool {
	for _, entry := range entries {
		if classifier.IsTemplate(entry.Path) {
			return true
		}
	}
	return false
}
