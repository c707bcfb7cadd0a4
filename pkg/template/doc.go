// Package template decides which source files are templates and renders them.
//
// # Classification
//
// A file is a template when its final extension equals the template marker,
// compared case-sensitively. The default marker is "hbs":
//
//	home/.gitconfig.hbs   template, materialized as .gitconfig
//	home/.gitconfig.HBS   plain file, copied as-is
//	home/.hbs             plain file (a dotfile without an extension)
//
// Only the marker is stripped from the output name, so "foo.conf.hbs"
// becomes "foo.conf".
//
// # Rendering
//
// Templates use Handlebars syntax and are rendered against the values table:
//
//	[user]
//	name = {{user.name}}
//	{{#if user.email}}email = {{user.email}}{{/if}}
//	{{#each hosts}}
//	Host {{this}}
//	{{/each}}
//
// Values are written verbatim: the engine never HTML-escapes them, since the
// outputs are configuration files, not web pages. A value that is referenced
// but not defined renders as an empty string.
//
// One Engine is created per run and passed to whoever renders. It caches
// compiled templates by name, and the cache is guarded by a mutex so a single
// Engine may be shared by concurrent renderers.
package template
