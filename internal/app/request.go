package app

import (
	"strings"
	"time"

	"trip_surprise/internal/domain"
)

// RequestInput carries already-resolved form values into BuildRequest.
type RequestInput struct {
	Origin          domain.LocationSpec
	Destination     domain.LocationSpec
	DepartureDate   time.Time
	Age             int
	HotelPreference string
	FlightInfo      string
	Duration        string
	GoalsText       string
}

// BuildRequest validates the cities and assembles the canonical TripRequest.
// Origin is checked first, so a form missing both cities reports only the origin.
func BuildRequest(in RequestInput) (domain.TripRequest, error) {
	if strings.TrimSpace(in.Origin.City) == "" {
		return domain.TripRequest{}, &domain.Failure{
			Kind:    domain.KindMissingInput,
			Message: "Please enter your origin city!",
			Err:     domain.ErrMissingOriginCity,
		}
	}
	if strings.TrimSpace(in.Destination.City) == "" {
		return domain.TripRequest{}, &domain.Failure{
			Kind:    domain.KindMissingInput,
			Message: "Please enter your destination city!",
			Err:     domain.ErrMissingDestinationCity,
		}
	}
	return domain.TripRequest{
		Origin:          in.Origin,
		Destination:     in.Destination,
		DepartureDate:   in.DepartureDate,
		TravelerAge:     in.Age,
		HotelPreference: in.HotelPreference,
		FlightInfo:      in.FlightInfo,
		Duration:        in.Duration,
		GoalsText:       in.GoalsText,
	}, nil
}
