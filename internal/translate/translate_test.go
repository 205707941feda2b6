package translate

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

func textInput(s string) task.Input {
	content, _ := json.Marshal(s)
	return task.Input{Format: task.InputText, Content: content}
}

func jsonInput(doc string) task.Input {
	return task.Input{Format: task.InputJSON, Content: json.RawMessage(doc)}
}

func TestRegistryCoversAllTaskTypes(t *testing.T) {
	r := NewRegistry()

	for _, tt := range []task.Type{
		task.TypeGeocode,
		task.TypeReverseGeocode,
		task.TypeDirections,
		task.TypePlacesSearch,
		task.TypePlaceDetails,
		task.TypeDistanceMatrix,
	} {
		if _, ok := r.Lookup(tt); !ok {
			t.Errorf("no translator registered for %s", tt)
		}
	}

	if _, ok := r.Lookup("unsupported_task"); ok {
		t.Error("expected lookup miss for unsupported_task")
	}
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name         string
		taskType     task.Type
		input        task.Input
		wantEndpoint string
		wantParams   map[string]string
		wantErr      string
	}{
		{
			name:         "geocode from text",
			taskType:     task.TypeGeocode,
			input:        textInput("1600 Amphitheatre Parkway, Mountain View, CA"),
			wantEndpoint: "/geocode/json",
			wantParams:   map[string]string{"address": "1600 Amphitheatre Parkway, Mountain View, CA"},
		},
		{
			name:         "geocode from structured address",
			taskType:     task.TypeGeocode,
			input:        jsonInput(`{"address":"Berlin"}`),
			wantEndpoint: "/geocode/json",
			wantParams:   map[string]string{"address": "Berlin"},
		},
		{
			name:     "geocode missing address",
			taskType: task.TypeGeocode,
			input:    jsonInput(`{}`),
			wantErr:  "address required",
		},
		{
			name:     "geocode rejects markdown",
			taskType: task.TypeGeocode,
			input:    task.Input{Format: task.InputMarkdown, Content: json.RawMessage(`"# Berlin"`)},
			wantErr:  "accepts",
		},
		{
			name:         "reverse geocode combines latlng",
			taskType:     task.TypeReverseGeocode,
			input:        jsonInput(`{"lat":37.4224764,"lng":-122.0842499}`),
			wantEndpoint: "/geocode/json",
			wantParams:   map[string]string{"latlng": "37.4224764,-122.0842499"},
		},
		{
			name:     "reverse geocode rejects text input",
			taskType: task.TypeReverseGeocode,
			input:    textInput("37.42,-122.08"),
			wantErr:  "requires application/json input",
		},
		{
			name:     "reverse geocode missing coordinates",
			taskType: task.TypeReverseGeocode,
			input:    jsonInput(`{"lat":37.42}`),
			wantErr:  "lat and lng required",
		},
		{
			name:         "directions defaults mode to driving",
			taskType:     task.TypeDirections,
			input:        jsonInput(`{"origin":"Berlin","destination":"Hamburg"}`),
			wantEndpoint: "/directions/json",
			wantParams:   map[string]string{"origin": "Berlin", "destination": "Hamburg", "mode": "driving"},
		},
		{
			name:         "directions honors mode",
			taskType:     task.TypeDirections,
			input:        jsonInput(`{"origin":"Berlin","destination":"Hamburg","mode":"walking"}`),
			wantEndpoint: "/directions/json",
			wantParams:   map[string]string{"mode": "walking"},
		},
		{
			name:     "directions missing destination",
			taskType: task.TypeDirections,
			input:    jsonInput(`{"origin":"Berlin"}`),
			wantErr:  "destination required",
		},
		{
			name:     "directions rejects text input",
			taskType: task.TypeDirections,
			input:    textInput("Berlin to Hamburg"),
			wantErr:  "requires application/json input",
		},
		{
			name:         "places search from text defaults type",
			taskType:     task.TypePlacesSearch,
			input:        textInput("pizza near me"),
			wantEndpoint: "/place/textsearch/json",
			wantParams:   map[string]string{"query": "pizza near me", "type": "restaurant"},
		},
		{
			name:         "places search structured with location",
			taskType:     task.TypePlacesSearch,
			input:        jsonInput(`{"query":"pizza","location":{"lat":52.52,"lng":13.405}}`),
			wantEndpoint: "/place/textsearch/json",
			wantParams:   map[string]string{"query": "pizza", "location": "52.52,13.405", "radius": "5000"},
		},
		{
			name:         "places search structured with radius",
			taskType:     task.TypePlacesSearch,
			input:        jsonInput(`{"query":"pizza","location":{"lat":52.52,"lng":13.405},"radius":250}`),
			wantEndpoint: "/place/textsearch/json",
			wantParams:   map[string]string{"radius": "250"},
		},
		{
			name:     "places search missing query",
			taskType: task.TypePlacesSearch,
			input:    jsonInput(`{"location":{"lat":1,"lng":2}}`),
			wantErr:  "query required",
		},
		{
			name:         "place details",
			taskType:     task.TypePlaceDetails,
			input:        jsonInput(`{"place_id":"ChIJ2eUgeAK6j4ARbn5u_wAGqWA"}`),
			wantEndpoint: "/place/details/json",
			wantParams:   map[string]string{"place_id": "ChIJ2eUgeAK6j4ARbn5u_wAGqWA"},
		},
		{
			name:     "place details missing id",
			taskType: task.TypePlaceDetails,
			input:    jsonInput(`{}`),
			wantErr:  "place_id required",
		},
		{
			name:         "distance matrix joins with pipe",
			taskType:     task.TypeDistanceMatrix,
			input:        jsonInput(`{"origins":["Berlin","Hamburg"],"destinations":["Munich","Cologne"]}`),
			wantEndpoint: "/distancematrix/json",
			wantParams: map[string]string{
				"origins":      "Berlin|Hamburg",
				"destinations": "Munich|Cologne",
				"mode":         "driving",
			},
		},
		{
			name:     "distance matrix missing destinations",
			taskType: task.TypeDistanceMatrix,
			input:    jsonInput(`{"origins":["Berlin"]}`),
			wantErr:  "destinations required",
		},
		{
			name:     "distance matrix missing origins",
			taskType: task.TypeDistanceMatrix,
			input:    jsonInput(`{"destinations":["Munich"]}`),
			wantErr:  "origins required",
		},
		{
			name:     "distance matrix empty destinations",
			taskType: task.TypeDistanceMatrix,
			input:    jsonInput(`{"origins":["Berlin"],"destinations":[]}`),
			wantErr:  "destinations required",
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := r.Lookup(tt.taskType)
			if !ok {
				t.Fatalf("no translator for %s", tt.taskType)
			}

			req, err := tr.BuildRequest(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("BuildRequest: %v", err)
			}
			if tt.wantEndpoint != "" && req.Endpoint != tt.wantEndpoint {
				t.Errorf("expected endpoint %s, got %s", tt.wantEndpoint, req.Endpoint)
			}
			for k, v := range tt.wantParams {
				if got := req.Params.Get(k); got != v {
					t.Errorf("param %s: expected %q, got %q", k, v, got)
				}
			}
		})
	}
}

func TestPlacesSearchWithoutLocationOmitsRadius(t *testing.T) {
	r := NewRegistry()
	tr, _ := r.Lookup(task.TypePlacesSearch)

	req, err := tr.BuildRequest(jsonInput(`{"query":"pizza"}`))
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if req.Params.Has("radius") || req.Params.Has("location") {
		t.Errorf("expected no location bias, got %v", req.Params)
	}
	if req.Params.Has("type") {
		t.Errorf("structured search must not default type, got %v", req.Params)
	}
}
