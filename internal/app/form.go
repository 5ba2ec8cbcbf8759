package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"trip_surprise/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form defaults, as preselected on the trip form.
const (
	DefaultOriginCity      = "São Paulo"
	DefaultDestinationCity = "New York"
	DefaultHotel           = "Brooklyn"
	DefaultAge             = 30
	DefaultFlightInfo      = "GOL 1234, leaving at June 30th, 2024, 10:00"
)

// NewForm returns a form prefilled with the widget defaults for the given locale set.
func NewForm(locales *LocaleResolver, now time.Time) domain.TripForm {
	oc, dc := locales.DefaultCountry(domain.Origin), locales.DefaultCountry(domain.Destination)
	departure := now.AddDate(0, 0, 30)
	return domain.TripForm{
		OriginCountry:          oc,
		OriginSubdivision:      locales.Subdivisions(domain.Origin, oc).Default,
		OriginCity:             DefaultOriginCity,
		DestinationCountry:     dc,
		DestinationSubdivision: locales.Subdivisions(domain.Destination, dc).Default,
		DestinationCity:        DefaultDestinationCity,
		DepartureDate:          time.Date(departure.Year(), departure.Month(), departure.Day(), 0, 0, 0, 0, now.Location()),
		Age:                    DefaultAge,
		HotelPreference:        DefaultHotel,
		FlightInfo:             DefaultFlightInfo,
		DurationChoice:         DefaultDuration,
	}
}

// ValidateForm enforces the widget constraints (age range, date present).
// These are rejected before a submission starts and are not pipeline failures.
func ValidateForm(f domain.TripForm) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be between 18 and 80", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid form: %s", strings.Join(msgs, "; "))
}
