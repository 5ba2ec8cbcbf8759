package domain

import "time"

// TripForm holds raw field values coming from the interaction surface.
// The validate tags are the widget constraints; city checks belong to the request builder.
type TripForm struct {
	OriginCountry          string    `json:"origin_country" yaml:"origin_country"`
	OriginSubdivision      string    `json:"origin_state" yaml:"origin_state"`
	OriginCity             string    `json:"origin_city" yaml:"origin_city"`
	DestinationCountry     string    `json:"destination_country" yaml:"destination_country"`
	DestinationSubdivision string    `json:"destination_state" yaml:"destination_state"`
	DestinationCity        string    `json:"destination_city" yaml:"destination_city"`
	DepartureDate          time.Time `json:"departure_date" yaml:"departure_date" validate:"required"`
	Age                    int       `json:"age" yaml:"age" validate:"gte=18,lte=80"`
	HotelPreference        string    `json:"hotel_location" yaml:"hotel_location"`
	GoalsText              string    `json:"trip_goals_and_plans" yaml:"trip_goals_and_plans"`
	FlightInfo             string    `json:"flight_information" yaml:"flight_information"`
	DurationChoice         string    `json:"trip_duration" yaml:"trip_duration"`
	CustomDuration         string    `json:"custom_duration" yaml:"custom_duration"`
}

// TripRequest is the canonical, validated request handed to the engine adapter.
type TripRequest struct {
	Origin          LocationSpec
	Destination     LocationSpec
	DepartureDate   time.Time
	TravelerAge     int
	HotelPreference string
	FlightInfo      string
	Duration        string
	GoalsText       string
}

// Engine input keys.
const (
	InputOrigin      = "origin"
	InputDestination = "destination"
	InputAge         = "age"
	InputHotel       = "hotel_location"
	InputFlight      = "flight_information"
	InputDuration    = "trip_duration"
	InputGoals       = "trip_goals_and_plans"
	InputRequest     = "request"
)

// Phrase is the natural-language summary of the trip, e.g.
// "flights from São Paulo, SP, Brazil to New York, NY, USA on June 30".
func (r TripRequest) Phrase() string {
	return "flights from " + r.Origin.String() + " to " + r.Destination.String() +
		" on " + r.DepartureDate.Format("January 02")
}

// Inputs flattens the request into the mapping the engine's prompt templates use.
// Everything is a string except age.
func (r TripRequest) Inputs() map[string]any {
	return map[string]any{
		InputOrigin:      r.Origin.String(),
		InputDestination: r.Destination.String(),
		InputAge:         r.TravelerAge,
		InputHotel:       r.HotelPreference,
		InputFlight:      r.FlightInfo,
		InputDuration:    r.Duration,
		InputGoals:       r.GoalsText,
		InputRequest:     r.Phrase(),
	}
}

// EngineResult is the engine's raw output. Raw is expected to hold JSON but nothing guarantees it.
type EngineResult struct {
	Raw   string
	Tasks []TaskOutput
}

// TaskOutput is the text one engine task produced.
type TaskOutput struct {
	Name  string
	Agent string
	Raw   string
}
