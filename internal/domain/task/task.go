// Package task defines the Task domain entity and its input/output formats.
package task

import (
	"encoding/json"
	"time"

	"github.com/mapforge/mapforge/internal/domain"
)

// Type identifies one of the supported mapping operations.
type Type string

const (
	TypeGeocode        Type = "geocode"
	TypeReverseGeocode Type = "reverse_geocode"
	TypeDirections     Type = "directions"
	TypePlacesSearch   Type = "places_search"
	TypePlaceDetails   Type = "place_details"
	TypeDistanceMatrix Type = "distance_matrix"
)

// Status represents the current state of a task.
type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// InputFormat enumerates the representations a task input may use.
type InputFormat string

const (
	InputText     InputFormat = "text"
	InputJSON     InputFormat = "application/json"
	InputMarkdown InputFormat = "text/markdown"
)

// OutputFormat enumerates the representations a task output may use.
type OutputFormat string

const (
	OutputText     OutputFormat = "text"
	OutputJSON     OutputFormat = "application/json"
	OutputMarkdown OutputFormat = "text/markdown"
	OutputGeoJSON  OutputFormat = "application/geo+json"
)

// Input carries the caller-supplied task payload. Content is kept as raw JSON
// so that passthrough outputs stay byte-exact.
type Input struct {
	Format  InputFormat     `json:"format"`
	Content json.RawMessage `json:"content"`
}

// Text returns the content as a plain string. Fails when the content is not a
// JSON string value.
func (in Input) Text() (string, error) {
	var s string
	if err := json.Unmarshal(in.Content, &s); err != nil {
		return "", domain.Validationf("content must be a string for %s input", in.Format)
	}
	return s, nil
}

// Object returns the content as a structured document. Fails when the content
// is not a JSON object.
func (in Input) Object() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(in.Content, &m); err != nil {
		return nil, domain.Validationf("content must be a JSON object for %s input", in.Format)
	}
	return m, nil
}

// Output holds the result of an executed task. Immutable once attached.
type Output struct {
	Format  OutputFormat    `json:"format"`
	Content json.RawMessage `json:"content"`
}

// TextOutput builds a text-format output from a plain string.
func TextOutput(s string) *Output {
	content, _ := json.Marshal(s)
	return &Output{Format: OutputText, Content: content}
}

// JSONOutput builds a json-format output that passes raw through untouched.
func JSONOutput(raw json.RawMessage) *Output {
	return &Output{Format: OutputJSON, Content: raw}
}

// Task represents a unit of work requested by a caller.
type Task struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Input     Input     `json:"input"`
	Output    *Output   `json:"output,omitempty"`
}

// Clone returns a copy that shares no mutable state with the receiver.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Input.Content = append(json.RawMessage(nil), t.Input.Content...)
	if t.Output != nil {
		out := *t.Output
		out.Content = append(json.RawMessage(nil), t.Output.Content...)
		c.Output = &out
	}
	return &c
}
