package template

import (
	"sync"

	"github.com/aymerick/raymond"

	"github.com/arthur-debert/dfm/pkg/errors"
	"github.com/arthur-debert/dfm/pkg/logging"
)

type compiled struct {
	source string
	tpl    *raymond.Template
}

// Engine renders Handlebars templates and caches their compiled form
type Engine struct {
	mu    sync.Mutex
	cache map[string]compiled
}

// NewEngine creates an Engine with an empty cache
func NewEngine() *Engine {
	return &Engine{cache: make(map[string]compiled)}
}

// Render compiles source (or reuses the cached compilation registered under
// name) and executes it against values. Syntax and execution failures are
// TEMPLATE errors. The output is a pure function of source and values.
func (e *Engine) Render(name, source string, values map[string]any) (string, error) {
	tpl, err := e.compile(name, source)
	if err != nil {
		return "", err
	}

	out, err := tpl.Exec(unescaped(values))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplate, "failed to render template %s", name).
			WithDetail("template", name)
	}
	return out, nil
}

// Cached reports how many compiled templates the engine holds
func (e *Engine) Cached() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

func (e *Engine) compile(name, source string) (*raymond.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.cache[name]; ok && c.source == source {
		return c.tpl, nil
	}

	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplate, "invalid template syntax in %s", name).
			WithDetail("template", name)
	}

	e.cache[name] = compiled{source: source, tpl: tpl}
	logger := logging.GetLogger("template")
	logger.Trace().Str("template", name).Msg("Compiled template")
	return tpl, nil
}

// unescaped copies values, turning every string into a raymond.SafeString
// so the engine emits it without HTML escaping.
func unescaped(value any) any {
	switch v := value.(type) {
	case string:
		return raymond.SafeString(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = unescaped(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = unescaped(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = raymond.SafeString(item)
		}
		return out
	default:
		return value
	}
}
