package template

import (
	"sync"
	"testing"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	values := map[string]any{
		"name":  "x",
		"count": int64(3),
		"ratio": 1.5,
		"debug": true,
		"user": map[string]any{
			"email": "me@example.com",
		},
		"hosts": []any{"alpha", "beta"},
		"html":  `<a href="x">&</a>`,
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"simple substitution", "name = {{name}}\n", "name = x\n"},
		{"nested table", "email={{user.email}}", "email=me@example.com"},
		{"integer", "count={{count}}", "count=3"},
		{"float", "ratio={{ratio}}", "ratio=1.5"},
		{"conditional", "{{#if debug}}on{{else}}off{{/if}}", "on"},
		{"iteration", "{{#each hosts}}[{{this}}]{{/each}}", "[alpha][beta]"},
		{"no html escaping", "{{html}}", `<a href="x">&</a>`},
		{"undefined renders empty", "a{{missing}}b", "ab"},
		{"no placeholders", "plain text", "plain text"},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Render(tt.name, tt.source, values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_RenderIsDeterministic(t *testing.T) {
	engine := NewEngine()
	values := map[string]any{"a": "1", "b": map[string]any{"c": "2"}}
	source := "{{a}}-{{b.c}}"

	first, err := engine.Render("t", source, values)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := NewEngine().Render("t", source, values)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_SyntaxError(t *testing.T) {
	_, err := NewEngine().Render("broken.hbs", "{{#if x}}never closed", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
	assert.Equal(t, "broken.hbs", errors.GetErrorDetails(err)["template"])
}

func TestEngine_CachesByNameAndSource(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render("a", "{{x}}", nil)
	require.NoError(t, err)
	_, err = engine.Render("a", "{{x}}", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Cached())

	got, err := engine.Render("a", "changed {{x}}", map[string]any{"x": "y"})
	require.NoError(t, err)
	assert.Equal(t, "changed y", got)
	assert.Equal(t, 1, engine.Cached())

	_, err = engine.Render("b", "{{x}}", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Cached())
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := NewEngine()
	values := map[string]any{"v": "ok"}

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := engine.Render("shared", "{{v}}", values)
			if err == nil {
				results[i] = out
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "ok", r)
	}
}

func TestEngine_DoesNotMutateValues(t *testing.T) {
	values := map[string]any{"s": "<b>", "nested": map[string]any{"t": "y"}}
	_, err := NewEngine().Render("t", "{{s}}", values)
	require.NoError(t, err)

	_, isString := values["s"].(string)
	assert.True(t, isString)
	_, isString = values["nested"].(map[string]any)["t"].(string)
	assert.True(t, isString)
}
