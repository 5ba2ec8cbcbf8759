package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_surprise/internal/app"
	"trip_surprise/internal/domain"
)

func validInput() app.RequestInput {
	return app.RequestInput{
		Origin:          domain.LocationSpec{Country: "Brazil", Subdivision: "São Paulo", City: "São Paulo"},
		Destination:     domain.LocationSpec{Country: "USA", Subdivision: "New York", City: "New York"},
		DepartureDate:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		Age:             30,
		HotelPreference: "Brooklyn",
		FlightInfo:      "GOL 1234, leaving at June 30th, 2024, 10:00",
		Duration:        "14 days",
		GoalsText:       "museums and jazz",
	}
}

func TestBuildRequest_OK(t *testing.T) {
	req, err := app.BuildRequest(validInput())
	require.NoError(t, err)

	assert.Equal(t, "São Paulo, São Paulo, Brazil", req.Origin.String())
	assert.Equal(t, "New York, New York, USA", req.Destination.String())
	assert.Equal(t, "flights from São Paulo, São Paulo, Brazil to New York, New York, USA on June 30", req.Phrase())

	in := req.Inputs()
	assert.Equal(t, "São Paulo, São Paulo, Brazil", in[domain.InputOrigin])
	assert.Equal(t, "New York, New York, USA", in[domain.InputDestination])
	assert.Equal(t, 30, in[domain.InputAge])
	assert.Equal(t, "Brooklyn", in[domain.InputHotel])
	assert.Equal(t, "GOL 1234, leaving at June 30th, 2024, 10:00", in[domain.InputFlight])
	assert.Equal(t, "14 days", in[domain.InputDuration])
	assert.Equal(t, "museums and jazz", in[domain.InputGoals])
	assert.Equal(t, req.Phrase(), in[domain.InputRequest])
}

func TestBuildRequest_DayIsZeroPadded(t *testing.T) {
	in := validInput()
	in.DepartureDate = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	req, err := app.BuildRequest(in)
	require.NoError(t, err)
	assert.Contains(t, req.Phrase(), " on March 05")
}

func TestBuildRequest_MissingCities(t *testing.T) {
	tests := []struct {
		name         string
		origin, dest string
		want         error
		wantMsg      string
	}{
		{"empty origin", "", "New York", domain.ErrMissingOriginCity, "Please enter your origin city!"},
		{"whitespace origin", "  \t", "New York", domain.ErrMissingOriginCity, "Please enter your origin city!"},
		{"empty destination", "Recife", "", domain.ErrMissingDestinationCity, "Please enter your destination city!"},
		{"both empty reports origin only", "", " ", domain.ErrMissingOriginCity, "Please enter your origin city!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.Origin.City, in.Destination.City = tc.origin, tc.dest

			_, err := app.BuildRequest(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			f, ok := domain.AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, domain.KindMissingInput, f.Kind)
			assert.Equal(t, tc.wantMsg, f.Message)
		})
	}
}
