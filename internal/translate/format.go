package translate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

// renderFunc converts a raw provider document into a task output.
type renderFunc func(raw json.RawMessage) (*task.Output, error)

// Negotiator decides how to render upstream output per task type. Formats not
// enumerated for a type silently fall back to the json passthrough default;
// the contract is deliberately permissive.
type Negotiator struct {
	renderers map[task.Type]map[task.OutputFormat]renderFunc
}

// NewNegotiator builds the renderer table.
func NewNegotiator() *Negotiator {
	return &Negotiator{
		renderers: map[task.Type]map[task.OutputFormat]renderFunc{
			task.TypeGeocode: {
				task.OutputGeoJSON: renderGeocodeGeoJSON,
			},
			task.TypeReverseGeocode: {
				task.OutputText: renderReverseGeocodeText,
			},
			task.TypeDirections: {
				task.OutputText: renderDirectionsText,
			},
			task.TypePlacesSearch: {
				task.OutputGeoJSON: renderPlacesGeoJSON,
			},
		},
	}
}

// Negotiate renders raw in the requested format. An empty or unsupported
// request yields the raw document as application/json.
func (n *Negotiator) Negotiate(t task.Type, requested task.OutputFormat, raw json.RawMessage) (*task.Output, error) {
	if render, ok := n.renderers[t][requested]; ok {
		return render(raw)
	}
	return task.JSONOutput(raw), nil
}

// geometry, feature and featureCollection model the emitted GeoJSON documents.
// Coordinates are [longitude, latitude].
type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// geoResult is the subset of a geocoding result used for rendering.
type geoResult struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func renderGeocodeGeoJSON(raw json.RawMessage) (*task.Output, error) {
	var resp struct {
		Results []geoResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.Upstreamf("decode geocode response: %v", err)
	}
	if len(resp.Results) == 0 {
		return nil, domain.Upstreamf("provider returned no results")
	}

	first := resp.Results[0]
	content, err := json.Marshal(feature{
		Type: "Feature",
		Geometry: geometry{
			Type:        "Point",
			Coordinates: []float64{first.Geometry.Location.Lng, first.Geometry.Location.Lat},
		},
		Properties: map[string]any{
			"formatted_address": first.FormattedAddress,
			"place_id":          first.PlaceID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return &task.Output{Format: task.OutputGeoJSON, Content: content}, nil
}

func renderReverseGeocodeText(raw json.RawMessage) (*task.Output, error) {
	var resp struct {
		Results []geoResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.Upstreamf("decode reverse geocode response: %v", err)
	}

	address := "Address not found"
	if len(resp.Results) > 0 && resp.Results[0].FormattedAddress != "" {
		address = resp.Results[0].FormattedAddress
	}
	return task.TextOutput(address), nil
}

// instructionMarkup strips the embedded markup found in the provider's
// html_instructions: bold tags removed, block openers become a sentence break.
var instructionMarkup = strings.NewReplacer(
	"<b>", "",
	"</b>", "",
	"<div>", ". ",
	"</div>", "",
)

func renderDirectionsText(raw json.RawMessage) (*task.Output, error) {
	var resp struct {
		Routes []struct {
			Legs []struct {
				Steps []struct {
					HTMLInstructions string `json:"html_instructions"`
				} `json:"steps"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.Upstreamf("decode directions response: %v", err)
	}

	var lines []string
	for _, route := range resp.Routes {
		for _, leg := range route.Legs {
			// Numbering restarts per leg.
			for i, step := range leg.Steps {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, instructionMarkup.Replace(step.HTMLInstructions)))
			}
		}
	}
	return task.TextOutput(strings.Join(lines, "\n")), nil
}

func renderPlacesGeoJSON(raw json.RawMessage) (*task.Output, error) {
	var resp struct {
		Results []struct {
			Name             string   `json:"name"`
			FormattedAddress string   `json:"formatted_address"`
			Rating           *float64 `json:"rating"`
			PlaceID          string   `json:"place_id"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.Upstreamf("decode places response: %v", err)
	}

	features := make([]feature, 0, len(resp.Results))
	for _, place := range resp.Results {
		var rating any
		if place.Rating != nil {
			rating = *place.Rating
		}
		features = append(features, feature{
			Type: "Feature",
			Geometry: geometry{
				Type:        "Point",
				Coordinates: []float64{place.Geometry.Location.Lng, place.Geometry.Location.Lat},
			},
			Properties: map[string]any{
				"name":     place.Name,
				"address":  place.FormattedAddress,
				"rating":   rating,
				"place_id": place.PlaceID,
			},
		})
	}

	content, err := json.Marshal(featureCollection{Type: "FeatureCollection", Features: features})
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return &task.Output{Format: task.OutputGeoJSON, Content: content}, nil
}
