package translate

import (
	"net/url"
	"strings"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

// defaultTravelMode applies when a routing task omits "mode".
const defaultTravelMode = "driving"

// directions fetches a route between two locations. Structured input only.
type directions struct{}

func (directions) Type() task.Type { return task.TypeDirections }

func (directions) BuildRequest(in task.Input) (*Request, error) {
	obj, err := requireObject(task.TypeDirections, in)
	if err != nil {
		return nil, err
	}

	origin, ok := stringField(obj, "origin")
	if !ok {
		return nil, domain.Validationf("origin required")
	}
	destination, ok := stringField(obj, "destination")
	if !ok {
		return nil, domain.Validationf("destination required")
	}
	mode, ok := stringField(obj, "mode")
	if !ok {
		mode = defaultTravelMode
	}

	return &Request{
		Endpoint: "/directions/json",
		Params: url.Values{
			"origin":      {origin},
			"destination": {destination},
			"mode":        {mode},
		},
	}, nil
}

// distanceMatrix computes travel distance and time between origin and
// destination sets. Structured input only; lists are joined with "|" the way
// the provider expects.
type distanceMatrix struct{}

func (distanceMatrix) Type() task.Type { return task.TypeDistanceMatrix }

func (distanceMatrix) BuildRequest(in task.Input) (*Request, error) {
	obj, err := requireObject(task.TypeDistanceMatrix, in)
	if err != nil {
		return nil, err
	}

	origins, ok := stringList(obj, "origins")
	if !ok {
		return nil, domain.Validationf("origins required")
	}
	destinations, ok := stringList(obj, "destinations")
	if !ok {
		return nil, domain.Validationf("destinations required")
	}
	mode, ok := stringField(obj, "mode")
	if !ok {
		mode = defaultTravelMode
	}

	return &Request{
		Endpoint: "/distancematrix/json",
		Params: url.Values{
			"origins":      {strings.Join(origins, "|")},
			"destinations": {strings.Join(destinations, "|")},
			"mode":         {mode},
		},
	}, nil
}
