// Package translate maps validated task inputs to upstream provider requests
// and provider responses to task outputs. One translator per task type; the
// registry keeps the executor free of per-type branching.
package translate

import (
	"net/url"
	"strconv"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

// Request describes one GET call against the mapping provider.
type Request struct {
	Endpoint string
	Params   url.Values
}

// Translator validates a task input and builds the upstream request for it.
type Translator interface {
	Type() task.Type
	BuildRequest(in task.Input) (*Request, error)
}

// Registry holds the translator for each supported task type.
type Registry struct {
	translators map[task.Type]Translator
}

// NewRegistry builds the registry with all six translators.
func NewRegistry() *Registry {
	r := &Registry{translators: make(map[task.Type]Translator)}
	for _, t := range []Translator{
		geocode{},
		reverseGeocode{},
		directions{},
		placesSearch{},
		placeDetails{},
		distanceMatrix{},
	} {
		r.translators[t.Type()] = t
	}
	return r
}

// Lookup returns the translator for the given task type.
func (r *Registry) Lookup(t task.Type) (Translator, bool) {
	tr, ok := r.translators[t]
	return tr, ok
}

// requireObject rejects non-structured input for task types that only accept
// application/json, then decodes the content.
func requireObject(t task.Type, in task.Input) (map[string]any, error) {
	if in.Format != task.InputJSON {
		return nil, domain.Validationf("%s requires %s input", t, task.InputJSON)
	}
	return in.Object()
}

// stringField extracts a non-empty string field from the input document.
func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok && s != ""
}

// numberField extracts a numeric field from the input document.
func numberField(m map[string]any, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

// stringList extracts a non-empty list of strings from the input document.
func stringList(m map[string]any, key string) ([]string, bool) {
	raw, ok := m[key].([]any)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// formatNumber renders a JSON number the way the provider expects, without a
// trailing ".0" on integral values.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
