package translate

import (
	"net/url"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

// geocode converts an address to coordinates. Accepts free text (the address
// itself) or a structured document with an "address" field.
type geocode struct{}

func (geocode) Type() task.Type { return task.TypeGeocode }

func (geocode) BuildRequest(in task.Input) (*Request, error) {
	var address string
	switch in.Format {
	case task.InputText:
		text, err := in.Text()
		if err != nil {
			return nil, err
		}
		address = text
	case task.InputJSON:
		obj, err := in.Object()
		if err != nil {
			return nil, err
		}
		address, _ = stringField(obj, "address")
	default:
		return nil, domain.Validationf("%s accepts %s or %s input", task.TypeGeocode, task.InputText, task.InputJSON)
	}

	if address == "" {
		return nil, domain.Validationf("address required")
	}

	return &Request{
		Endpoint: "/geocode/json",
		Params:   url.Values{"address": {address}},
	}, nil
}

// reverseGeocode converts coordinates to an address. Structured input only.
type reverseGeocode struct{}

func (reverseGeocode) Type() task.Type { return task.TypeReverseGeocode }

func (reverseGeocode) BuildRequest(in task.Input) (*Request, error) {
	obj, err := requireObject(task.TypeReverseGeocode, in)
	if err != nil {
		return nil, err
	}

	lat, okLat := numberField(obj, "lat")
	lng, okLng := numberField(obj, "lng")
	if !okLat || !okLng {
		return nil, domain.Validationf("lat and lng required")
	}

	return &Request{
		Endpoint: "/geocode/json",
		Params:   url.Values{"latlng": {formatNumber(lat) + "," + formatNumber(lng)}},
	}, nil
}
