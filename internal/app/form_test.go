package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_surprise/internal/app"
)

func TestNewForm_Defaults(t *testing.T) {
	now := time.Date(2024, time.May, 31, 15, 0, 0, 0, time.UTC)
	f := app.NewForm(app.NewLocaleResolver(testLocales()), now)

	assert.Equal(t, "Brazil", f.OriginCountry)
	assert.Equal(t, "São Paulo", f.OriginSubdivision)
	assert.Equal(t, "USA", f.DestinationCountry)
	assert.Equal(t, "New York", f.DestinationSubdivision)
	assert.Equal(t, app.DefaultDuration, f.DurationChoice)
	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), f.DepartureDate)
	require.NoError(t, app.ValidateForm(f))
}

func TestValidateForm(t *testing.T) {
	base := app.NewForm(app.NewLocaleResolver(testLocales()), time.Now())

	for _, age := range []int{18, 45, 80} {
		f := base
		f.Age = age
		assert.NoError(t, app.ValidateForm(f), "age %d", age)
	}
	for _, age := range []int{0, 17, 81} {
		f := base
		f.Age = age
		err := app.ValidateForm(f)
		require.Error(t, err, "age %d", age)
		assert.Contains(t, err.Error(), "Age must be between 18 and 80")
	}

	f := base
	f.DepartureDate = time.Time{}
	err := app.ValidateForm(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DepartureDate is required")
}
