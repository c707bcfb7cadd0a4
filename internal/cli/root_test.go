package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dfm/pkg/config"
	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir    string
	input  string
	output string
	home   string
	values string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:    dir,
		input:  filepath.Join(dir, "home"),
		output: filepath.Join(dir, "out"),
		home:   filepath.Join(dir, "user"),
		values: filepath.Join(dir, "values.toml"),
	}
	require.NoError(t, os.MkdirAll(f.input, 0755))
	require.NoError(t, os.MkdirAll(f.home, 0755))
	t.Setenv("HOME", f.home)
	t.Setenv("DFM_LOGGING_FILE", "false")
	t.Cleanup(func() { _ = logging.CloseLogFile() })
	return f
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// run executes dfm against the fixture and returns stdout
func (f *fixture) run(t *testing.T, extra ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.LoadOptions{WorkDir: f.dir, SkipUser: true})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	args := append([]string{"-i", f.input, "-o", f.output, "-c", f.values, "--format", "text"}, extra...)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_RendersCopiesAndLinks(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "a.txt"), "plain")
	f.write(t, filepath.Join(f.input, ".config", "app.conf.hbs"), "user={{user}}")
	f.write(t, f.values, `user = "ada"`)

	out, err := f.run(t)
	require.NoError(t, err)

	assert.Contains(t, out, "render .config/app.conf.hbs")
	assert.Contains(t, out, "2 file(s): 1 rendered, 1 copied, 2 linked, 0 failed")

	data, err := os.ReadFile(filepath.Join(f.home, ".config", "app.conf"))
	require.NoError(t, err)
	assert.Equal(t, "user=ada", string(data))

	info, err := os.Lstat(filepath.Join(f.home, "a.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)
}

func TestRoot_MissingValuesFails(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "conf.hbs"), "{{x}}")

	_, err := f.run(t)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))

	_, statErr := os.Stat(f.output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_LinkFailureExitsNonZeroAfterSummary(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "a.txt"), "a")
	f.write(t, filepath.Join(f.input, "tool"), "b")
	f.write(t, filepath.Join(f.home, "tool", "keep"), "precious")

	out, err := f.run(t)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLink))
	assert.Contains(t, out, "conflict")
	assert.Contains(t, out, "1 failed")
}

func TestRoot_DryRun(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "a.txt"), "a")

	out, err := f.run(t, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "planned")
	assert.Contains(t, out, MsgDryRunNotice)

	entries, err := os.ReadDir(f.home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRoot_JSONFormat(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "a.txt"), "a")

	out, err := f.run(t, "--format", "json")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, f.input, decoded["inputRoot"])
	assert.Len(t, decoded["files"], 1)
}

func TestRoot_EmptyInput(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to do")
}

func TestRoot_InvalidFormat(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRoot_RejectsArguments(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "extra")
	assert.Error(t, err)
}

func TestRoot_SettingsFileInWorkDir(t *testing.T) {
	f := newFixture(t)
	custom := filepath.Join(f.dir, "src")
	f.write(t, filepath.Join(custom, "b.txt"), "b")
	f.write(t, filepath.Join(f.dir, ".dfm.toml"), "[paths]\ninput = \""+filepath.ToSlash(custom)+"\"\noutput = \""+filepath.ToSlash(f.output)+"\"\n")

	cmd := newRootCmd(config.LoadOptions{WorkDir: f.dir, SkipUser: true})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--format", "text"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "b.txt")
	_, err := os.Lstat(filepath.Join(f.home, "b.txt"))
	assert.NoError(t, err)
}

func TestRoot_LogFileFollowsSettings(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "a.txt"), "plain")
	logPath := filepath.Join(f.dir, "state", "dfm.log")
	t.Setenv("DFM_LOGGING_FILE", "true")
	t.Setenv("DFM_LOGGING_PATH", logPath)

	_, err := f.run(t)
	require.NoError(t, err)

	_, err = os.Stat(logPath)
	assert.NoError(t, err, "log file is written where the settings say")
}

func TestRoot_OutputInsideInputRejected(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.input, "a.txt"), "plain")

	_, err := f.run(t, "-o", filepath.Join(f.input, "out"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	_, err = os.Lstat(filepath.Join(f.home, "a.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestOverridesFromFlags(t *testing.T) {
	cmd := newRootCmd(config.LoadOptions{})
	require.NoError(t, cmd.ParseFlags([]string{"-c", "v.yaml", "-i", "src"}))

	assert.Equal(t, map[string]interface{}{
		config.KeyValues: "v.yaml",
		config.KeyInput:  "src",
	}, overridesFromFlags(cmd))
}

func TestVersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dfm version")
}
