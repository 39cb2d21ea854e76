package migration

import "strings"

// Resolver converts Django model names to physical table names following
// the default naming convention: lower-cased model name, prefixed with
// "<app>_" when an app label is known.
type Resolver struct {
	app   string
	cache map[string]string
}

// NewResolver returns a resolver for the given app label (may be empty).
func NewResolver(app string) *Resolver {
	return &Resolver{app: app, cache: make(map[string]string)}
}

// Resolve maps a model name to its table name. Results are cached by the
// raw model name; caching never changes the result.
func (r *Resolver) Resolve(model string) string {
	if t, ok := r.cache[model]; ok {
		return t
	}
	table := strings.ToLower(model)
	if r.app != "" {
		table = r.app + "_" + table
	}
	r.cache[model] = table
	return table
}
