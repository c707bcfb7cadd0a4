package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	s := &display.Summary{
		InputRoot:  "home",
		OutputRoot: "out",
		HomeDir:    "/home/u",
		DryRun:     true,
		Files: []display.File{
			{Source: "conf.hbs", Output: "out/conf", Link: "/home/u/conf", Action: display.ActionRender, Status: display.StatusPlanned},
		},
		Totals: display.Totals{Files: 1, Rendered: 1, Linked: 1},
	}
	require.NoError(t, New(buf).RenderSummary(s))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["dryRun"])
	assert.NotContains(t, decoded, "valuesFile")

	files := decoded["files"].([]interface{})
	require.Len(t, files, 1)
	file := files[0].(map[string]interface{})
	assert.Equal(t, "render", file["action"])
	assert.Equal(t, "planned", file["status"])
	assert.NotContains(t, file, "error")

	totals := decoded["totals"].(map[string]interface{})
	assert.Equal(t, float64(1), totals["rendered"])
}

func TestRenderError(t *testing.T) {
	buf := &bytes.Buffer{}
	err := errors.New(errors.ErrConfigMissing, "values.toml not found").WithDetail("path", "values.toml")
	require.NoError(t, New(buf).RenderError(err))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "[CONFIG_MISSING] values.toml not found", decoded["error"])
	assert.Equal(t, "CONFIG_MISSING", decoded["code"])
	assert.Equal(t, map[string]interface{}{"path": "values.toml"}, decoded["details"])
}

func TestRenderMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, New(buf).RenderMessage("done"))
	assert.JSONEq(t, `{"message": "done"}`, buf.String())
}
