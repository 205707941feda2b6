// Package manifest holds the static capability manifest served for discovery
// and used to validate incoming task types.
package manifest

import "github.com/mapforge/mapforge/internal/domain/task"

// Entry describes one supported task type: the input formats it accepts and
// the output formats it can produce. Entries are read-only after process start.
type Entry struct {
	Type          task.Type           `json:"type"`
	Description   string              `json:"description"`
	InputFormats  []task.InputFormat  `json:"input_formats"`
	OutputFormats []task.OutputFormat `json:"output_formats"`
}

// FormatDescriptor documents a format in the agent card.
type FormatDescriptor struct {
	Format      string `json:"format"`
	Description string `json:"description"`
}

// Auth documents the authentication scheme in the agent card.
type Auth struct {
	Type       string `json:"type"`
	HeaderName string `json:"header_name"`
}

// Card is the agent card document served on /agent-card.
type Card struct {
	SchemaVersion string             `json:"schema_version"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Version       string             `json:"version"`
	URL           string             `json:"url,omitempty"`
	Auth          Auth               `json:"auth"`
	InputFormats  []FormatDescriptor `json:"input_formats"`
	OutputFormats []FormatDescriptor `json:"output_formats"`
	Tasks         []Entry            `json:"tasks"`
}

// Manifest is the immutable set of task types this agent supports.
type Manifest struct {
	entries []Entry
	byType  map[task.Type]Entry
}

// New builds the manifest for the six mapping task types.
func New() *Manifest {
	entries := []Entry{
		{
			Type:          task.TypeGeocode,
			Description:   "Convert addresses to latitude and longitude coordinates",
			InputFormats:  []task.InputFormat{task.InputText, task.InputJSON},
			OutputFormats: []task.OutputFormat{task.OutputJSON, task.OutputGeoJSON},
		},
		{
			Type:          task.TypeReverseGeocode,
			Description:   "Convert coordinates to addresses",
			InputFormats:  []task.InputFormat{task.InputJSON},
			OutputFormats: []task.OutputFormat{task.OutputJSON, task.OutputText},
		},
		{
			Type:          task.TypeDirections,
			Description:   "Get directions between locations",
			InputFormats:  []task.InputFormat{task.InputJSON},
			OutputFormats: []task.OutputFormat{task.OutputJSON, task.OutputText},
		},
		{
			Type:          task.TypePlacesSearch,
			Description:   "Search for places by free-text query",
			InputFormats:  []task.InputFormat{task.InputText, task.InputJSON},
			OutputFormats: []task.OutputFormat{task.OutputJSON, task.OutputGeoJSON},
		},
		{
			Type:          task.TypePlaceDetails,
			Description:   "Get detailed information about a specific place",
			InputFormats:  []task.InputFormat{task.InputJSON},
			OutputFormats: []task.OutputFormat{task.OutputJSON},
		},
		{
			Type:          task.TypeDistanceMatrix,
			Description:   "Calculate travel distance and time between points",
			InputFormats:  []task.InputFormat{task.InputJSON},
			OutputFormats: []task.OutputFormat{task.OutputJSON},
		},
	}

	byType := make(map[task.Type]Entry, len(entries))
	for _, e := range entries {
		byType[e.Type] = e
	}
	return &Manifest{entries: entries, byType: byType}
}

// TaskTypes returns the supported task types in declaration order.
func (m *Manifest) TaskTypes() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Supports reports whether the given task type is in the manifest.
func (m *Manifest) Supports(t task.Type) bool {
	_, ok := m.byType[t]
	return ok
}

// Entry returns the manifest entry for the given task type.
func (m *Manifest) Entry(t task.Type) (Entry, bool) {
	e, ok := m.byType[t]
	return e, ok
}

// Card returns the agent card document for capability discovery.
func (m *Manifest) Card(baseURL string) Card {
	return Card{
		SchemaVersion: "v1",
		Name:          "MapForge",
		Description:   "An A2A-compliant agent that exposes Google Maps capabilities",
		Version:       "0.1.0",
		URL:           baseURL,
		Auth: Auth{
			Type:       "api_key",
			HeaderName: "X-API-Key",
		},
		InputFormats: []FormatDescriptor{
			{Format: string(task.InputText), Description: "Natural language query for maps operations"},
			{Format: string(task.InputJSON), Description: "Structured data for maps operations"},
		},
		OutputFormats: []FormatDescriptor{
			{Format: string(task.OutputText), Description: "Text response with maps information"},
			{Format: string(task.OutputJSON), Description: "JSON response with structured maps data"},
			{Format: string(task.OutputGeoJSON), Description: "GeoJSON formatted location data"},
		},
		Tasks: m.TaskTypes(),
	}
}
