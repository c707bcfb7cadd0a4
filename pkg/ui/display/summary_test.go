package display

import (
	"testing"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/linker"
	"github.com/arthur-debert/dfm/pkg/materialize"
	"github.com/arthur-debert/dfm/pkg/pipeline"
	"github.com/arthur-debert/dfm/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(dryRun bool) *pipeline.Result {
	return &pipeline.Result{
		InputRoot:    "home",
		OutputRoot:   "out",
		HomeDir:      "/home/u",
		DryRun:       dryRun,
		ValuesLoaded: true,
		ValuesPath:   "values.toml",
		Outputs: []materialize.Output{
			{Source: scanner.Entry{Rel: ".bashrc"}, Path: "out/.bashrc", Rel: ".bashrc"},
			{Source: scanner.Entry{Rel: "conf.hbs", Ext: "hbs"}, Path: "out/conf", Rel: "conf", Rendered: true},
			{Source: scanner.Entry{Rel: "tool"}, Path: "out/tool", Rel: "tool"},
		},
		Links: []linker.Link{
			{Target: "/home/u/.bashrc", Source: "/w/out/.bashrc", Replaced: linker.ExistingFile},
			{Target: "/home/u/conf", Source: "/w/out/conf"},
			{Target: "/home/u/tool", Err: errors.New(errors.ErrUnsafeOverwrite, "refusing")},
		},
	}
}

func TestFromResult(t *testing.T) {
	s := FromResult(sampleResult(false))

	assert.Equal(t, "home", s.InputRoot)
	assert.Equal(t, "values.toml", s.ValuesFile)
	assert.False(t, s.DryRun)
	require.Len(t, s.Files, 3)

	assert.Equal(t, File{
		Source:   ".bashrc",
		Output:   "out/.bashrc",
		Link:     "/home/u/.bashrc",
		Action:   ActionCopy,
		Status:   StatusLinked,
		Replaced: "file",
	}, s.Files[0])

	assert.Equal(t, ActionRender, s.Files[1].Action)
	assert.Equal(t, StatusLinked, s.Files[1].Status)
	assert.Empty(t, s.Files[1].Replaced)

	assert.Equal(t, StatusConflict, s.Files[2].Status)
	assert.Contains(t, s.Files[2].Error, "refusing")

	assert.Equal(t, Totals{Files: 3, Rendered: 1, Copied: 2, Linked: 2, Failed: 1}, s.Totals)
	assert.False(t, s.OK())
}

func TestFromResult_DryRun(t *testing.T) {
	r := sampleResult(true)
	r.Links[2].Err = nil

	s := FromResult(r)
	assert.True(t, s.DryRun)
	for _, f := range s.Files {
		assert.Equal(t, StatusPlanned, f.Status)
	}
	assert.True(t, s.OK())
}

func TestFromResult_LinkFailure(t *testing.T) {
	r := sampleResult(false)
	r.Links[1].Err = errors.New(errors.ErrLink, "permission denied")

	s := FromResult(r)
	assert.Equal(t, StatusFailed, s.Files[1].Status)
	assert.Equal(t, 2, s.Totals.Failed)
}

func TestFromResult_NoValues(t *testing.T) {
	r := sampleResult(false)
	r.ValuesLoaded = false

	assert.Empty(t, FromResult(r).ValuesFile)
}
