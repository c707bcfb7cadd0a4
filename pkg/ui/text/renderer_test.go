package text

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dfm/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf)

	s := &display.Summary{
		InputRoot:  "home",
		OutputRoot: "out",
		HomeDir:    "/home/u",
		ValuesFile: "values.toml",
		Files: []display.File{
			{Source: ".bashrc", Link: "/home/u/.bashrc", Action: display.ActionCopy, Status: display.StatusLinked, Replaced: "file"},
			{Source: "conf.hbs", Link: "/home/u/conf", Action: display.ActionRender, Status: display.StatusLinked},
			{Source: "tool", Link: "/home/u/tool", Action: display.ActionCopy, Status: display.StatusConflict, Error: "non-empty directory"},
		},
		Totals: display.Totals{Files: 3, Rendered: 1, Copied: 2, Linked: 2, Failed: 1},
	}
	require.NoError(t, r.RenderSummary(s))

	expected := "home -> out -> /home/u\n" +
		"values: values.toml\n" +
		"linked   copy   .bashrc -> /home/u/.bashrc (replaced file)\n" +
		"linked   render conf.hbs -> /home/u/conf\n" +
		"conflict copy   tool -> /home/u/tool\n" +
		"  error: non-empty directory\n" +
		"3 file(s): 1 rendered, 2 copied, 2 linked, 1 failed\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderSummary_DryRun(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, New(buf).RenderSummary(&display.Summary{InputRoot: "home", OutputRoot: "out", HomeDir: "/h", DryRun: true}))
	assert.Contains(t, buf.String(), "(dry run)")
	assert.Contains(t, buf.String(), "0 file(s)")
}

func TestRenderError(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, New(buf).RenderError(stderrors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}
