package translate

import (
	"net/url"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

// defaultSearchRadius applies when a structured places search supplies a
// location without a radius, in meters.
const defaultSearchRadius = float64(5000)

// defaultPlaceType biases plain-text searches when no structured filters are
// available.
const defaultPlaceType = "restaurant"

// placesSearch runs a free-text place search, optionally biased around a
// location.
type placesSearch struct{}

func (placesSearch) Type() task.Type { return task.TypePlacesSearch }

func (placesSearch) BuildRequest(in task.Input) (*Request, error) {
	params := url.Values{}

	switch in.Format {
	case task.InputText:
		query, err := in.Text()
		if err != nil {
			return nil, err
		}
		if query == "" {
			return nil, domain.Validationf("query required")
		}
		params.Set("query", query)
		params.Set("type", defaultPlaceType)
	case task.InputJSON:
		obj, err := in.Object()
		if err != nil {
			return nil, err
		}
		query, ok := stringField(obj, "query")
		if !ok {
			return nil, domain.Validationf("query required")
		}
		params.Set("query", query)

		if loc, ok := obj["location"].(map[string]any); ok {
			lat, okLat := numberField(loc, "lat")
			lng, okLng := numberField(loc, "lng")
			if !okLat || !okLng {
				return nil, domain.Validationf("location requires lat and lng")
			}
			radius, ok := numberField(obj, "radius")
			if !ok {
				radius = defaultSearchRadius
			}
			params.Set("location", formatNumber(lat)+","+formatNumber(lng))
			params.Set("radius", formatNumber(radius))
		}
	default:
		return nil, domain.Validationf("%s accepts %s or %s input", task.TypePlacesSearch, task.InputText, task.InputJSON)
	}

	return &Request{Endpoint: "/place/textsearch/json", Params: params}, nil
}

// placeDetails looks up a single place by id. Structured input only.
type placeDetails struct{}

func (placeDetails) Type() task.Type { return task.TypePlaceDetails }

func (placeDetails) BuildRequest(in task.Input) (*Request, error) {
	obj, err := requireObject(task.TypePlaceDetails, in)
	if err != nil {
		return nil, err
	}

	placeID, ok := stringField(obj, "place_id")
	if !ok {
		return nil, domain.Validationf("place_id required")
	}

	return &Request{
		Endpoint: "/place/details/json",
		Params:   url.Values{"place_id": {placeID}},
	}, nil
}
