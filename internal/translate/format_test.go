package translate

import (
	"encoding/json"
	"testing"

	"github.com/mapforge/mapforge/internal/domain/task"
)

const geocodeDoc = `{
  "status": "OK",
  "results": [
    {
      "formatted_address": "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA",
      "place_id": "ChIJ2eUgeAK6j4ARbn5u_wAGqWA",
      "geometry": {"location": {"lat": 37.4224764, "lng": -122.0842499}}
    }
  ]
}`

func TestNegotiateDefaultsToPassthrough(t *testing.T) {
	n := NewNegotiator()
	raw := json.RawMessage(geocodeDoc)

	out, err := n.Negotiate(task.TypeGeocode, "", raw)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if out.Format != task.OutputJSON {
		t.Errorf("expected json format, got %s", out.Format)
	}
	if string(out.Content) != geocodeDoc {
		t.Error("passthrough must be byte-exact")
	}
}

func TestNegotiateUnsupportedFormatFallsBack(t *testing.T) {
	n := NewNegotiator()
	raw := json.RawMessage(`{"status":"OK","result":{"name":"Pizzeria"}}`)

	// place_details supports json only; a geo+json request silently falls
	// back instead of failing.
	out, err := n.Negotiate(task.TypePlaceDetails, task.OutputGeoJSON, raw)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if out.Format != task.OutputJSON {
		t.Errorf("expected json fallback, got %s", out.Format)
	}
	if string(out.Content) != string(raw) {
		t.Error("fallback must pass the document through untouched")
	}
}

func TestGeocodeGeoJSON(t *testing.T) {
	n := NewNegotiator()

	out, err := n.Negotiate(task.TypeGeocode, task.OutputGeoJSON, json.RawMessage(geocodeDoc))
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if out.Format != task.OutputGeoJSON {
		t.Fatalf("expected geo+json, got %s", out.Format)
	}

	var f struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(out.Content, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Type != "Feature" || f.Geometry.Type != "Point" {
		t.Errorf("unexpected geojson shape: %+v", f)
	}
	// GeoJSON order: [longitude, latitude].
	if f.Geometry.Coordinates[0] != -122.0842499 || f.Geometry.Coordinates[1] != 37.4224764 {
		t.Errorf("unexpected coordinates %v", f.Geometry.Coordinates)
	}
	if f.Properties["place_id"] != "ChIJ2eUgeAK6j4ARbn5u_wAGqWA" {
		t.Errorf("unexpected place_id %v", f.Properties["place_id"])
	}
}

func TestGeocodeGeoJSONNoResults(t *testing.T) {
	n := NewNegotiator()
	_, err := n.Negotiate(task.TypeGeocode, task.OutputGeoJSON, json.RawMessage(`{"status":"OK","results":[]}`))
	if err == nil {
		t.Fatal("expected error for empty results, got nil")
	}
}

func TestReverseGeocodeText(t *testing.T) {
	n := NewNegotiator()

	out, err := n.Negotiate(task.TypeReverseGeocode, task.OutputText, json.RawMessage(geocodeDoc))
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if out.Format != task.OutputText {
		t.Fatalf("expected text, got %s", out.Format)
	}
	var s string
	if err := json.Unmarshal(out.Content, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA" {
		t.Errorf("unexpected address %q", s)
	}
}

func TestReverseGeocodeTextNoResults(t *testing.T) {
	n := NewNegotiator()

	out, err := n.Negotiate(task.TypeReverseGeocode, task.OutputText, json.RawMessage(`{"status":"OK","results":[]}`))
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	var s string
	if err := json.Unmarshal(out.Content, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != "Address not found" {
		t.Errorf("expected fallback address, got %q", s)
	}
}

func TestDirectionsText(t *testing.T) {
	doc := `{
	  "status": "OK",
	  "routes": [
	    {
	      "legs": [
	        {
	          "steps": [
	            {"html_instructions": "Head <b>north</b> on Main St"},
	            {"html_instructions": "Turn <b>left</b><div>Destination will be on the right</div>"}
	          ]
	        }
	      ]
	    }
	  ]
	}`

	n := NewNegotiator()
	out, err := n.Negotiate(task.TypeDirections, task.OutputText, json.RawMessage(doc))
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}

	var s string
	if err := json.Unmarshal(out.Content, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := "1. Head north on Main St\n2. Turn left. Destination will be on the right"
	if s != want {
		t.Errorf("expected %q, got %q", want, s)
	}
}

func TestPlacesGeoJSON(t *testing.T) {
	doc := `{
	  "status": "OK",
	  "results": [
	    {
	      "name": "Pizzeria Uno",
	      "formatted_address": "1 Main St",
	      "rating": 4.5,
	      "place_id": "p1",
	      "geometry": {"location": {"lat": 52.52, "lng": 13.405}}
	    },
	    {
	      "name": "No Rating Diner",
	      "formatted_address": "2 Main St",
	      "place_id": "p2",
	      "geometry": {"location": {"lat": 52.53, "lng": 13.406}}
	    }
	  ]
	}`

	n := NewNegotiator()
	out, err := n.Negotiate(task.TypePlacesSearch, task.OutputGeoJSON, json.RawMessage(doc))
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(out.Content, &fc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
		t.Fatalf("unexpected collection: type=%s features=%d", fc.Type, len(fc.Features))
	}
	if fc.Features[0].Geometry.Coordinates[0] != 13.405 {
		t.Errorf("unexpected lng %v", fc.Features[0].Geometry.Coordinates)
	}
	if fc.Features[0].Properties["rating"] != 4.5 {
		t.Errorf("expected rating 4.5, got %v", fc.Features[0].Properties["rating"])
	}
	if fc.Features[1].Properties["rating"] != nil {
		t.Errorf("expected null rating, got %v", fc.Features[1].Properties["rating"])
	}
}
