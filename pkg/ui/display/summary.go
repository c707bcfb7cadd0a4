// Package display holds the format-neutral view of a run that every
// renderer consumes.
package display

import (
	"time"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/linker"
	"github.com/arthur-debert/dfm/pkg/pipeline"
)

// Actions applied to a source file
const (
	ActionRender = "render"
	ActionCopy   = "copy"
)

// Link states of a file
const (
	StatusLinked   = "linked"
	StatusPlanned  = "planned"
	StatusFailed   = "failed"
	StatusConflict = "conflict"
)

// Summary is the result of a run, flattened for display
type Summary struct {
	InputRoot  string    `json:"inputRoot"`
	OutputRoot string    `json:"outputRoot"`
	HomeDir    string    `json:"homeDir"`
	ValuesFile string    `json:"valuesFile,omitempty"`
	DryRun     bool      `json:"dryRun"`
	Files      []File    `json:"files"`
	Totals     Totals    `json:"totals"`
	Timestamp  time.Time `json:"timestamp"`
}

// File is one source file and its fate
type File struct {
	Source   string `json:"source"`
	Output   string `json:"output"`
	Link     string `json:"link"`
	Action   string `json:"action"`
	Status   string `json:"status"`
	Replaced string `json:"replaced,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Totals counts files by outcome
type Totals struct {
	Files    int `json:"files"`
	Rendered int `json:"rendered"`
	Copied   int `json:"copied"`
	Linked   int `json:"linked"`
	Failed   int `json:"failed"`
}

// OK reports whether every file made it into the home directory
func (s *Summary) OK() bool {
	return s.Totals.Failed == 0
}

// FromResult builds the Summary of a pipeline result. Outputs and links are
// index aligned in a result, one link per output.
func FromResult(r *pipeline.Result) *Summary {
	s := &Summary{
		InputRoot:  r.InputRoot,
		OutputRoot: r.OutputRoot,
		HomeDir:    r.HomeDir,
		DryRun:     r.DryRun,
		Files:      make([]File, 0, len(r.Outputs)),
		Timestamp:  time.Now(),
	}
	if r.ValuesLoaded {
		s.ValuesFile = r.ValuesPath
	}

	for i, out := range r.Outputs {
		f := File{
			Source: out.Source.Rel,
			Output: out.Path,
			Action: ActionCopy,
		}
		if out.Rendered {
			f.Action = ActionRender
			s.Totals.Rendered++
		} else {
			s.Totals.Copied++
		}

		if i < len(r.Links) {
			applyLink(&f, r.Links[i], r.DryRun)
		}
		switch f.Status {
		case StatusLinked, StatusPlanned:
			s.Totals.Linked++
		case StatusFailed, StatusConflict:
			s.Totals.Failed++
		}
		s.Files = append(s.Files, f)
	}
	s.Totals.Files = len(s.Files)
	return s
}

func applyLink(f *File, link linker.Link, dryRun bool) {
	f.Link = link.Target
	f.Replaced = string(link.Replaced)

	switch {
	case link.Err == nil && dryRun:
		f.Status = StatusPlanned
	case link.Err == nil:
		f.Status = StatusLinked
	case errors.IsErrorCode(link.Err, errors.ErrUnsafeOverwrite):
		f.Status = StatusConflict
		f.Error = link.Err.Error()
	default:
		f.Status = StatusFailed
		f.Error = link.Err.Error()
	}
}
