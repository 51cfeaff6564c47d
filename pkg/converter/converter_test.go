package converter

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/amirasaad/converter/pkg/catalog"
	"github.com/amirasaad/converter/pkg/domain"
	"github.com/amirasaad/converter/pkg/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Text(t *testing.T) {
	tests := []struct {
		name      string
		category  catalog.Category
		operation string
		amount    float64
		table     rates.Table
		want      string
	}{
		{"usd to kes live", catalog.Currency, catalog.USDToKES, 10, rates.Table{"kes": 130}, "10.0 USD = 1300.00 KES"},
		{"usd to kes fallback", catalog.Currency, catalog.USDToKES, 2.5, rates.Fallback(), "2.5 USD = 322.50 KES"},
		{"eur to kes fallback", catalog.Currency, catalog.EURToKES, 1, rates.Fallback(), "1.0 EUR = 21930.00 KES"},
		{"gbp to kes fallback", catalog.Currency, catalog.GBPToKES, 3, rates.Fallback(), "3.0 GBP = 38700.00 KES"},
		{"kes to ugx fallback", catalog.Currency, catalog.KESToUGX, 100, rates.Fallback(), "100.0 KES = 2500.00 UGX"},
		{"missing key uses constant", catalog.Currency, catalog.EURToKES, 1, rates.Table{"kes": 129}, "1.0 EUR = 21930.00 KES"},
		{"celsius", catalog.Temperature, catalog.CelsiusToFahrenheit, 37, nil, "37.0°C = 98.60°F"},
		{"celsius three decimals", catalog.Temperature, catalog.CelsiusToFahrenheit, 0.075, nil, "0.075°C = 32.13°F"},
		{"fahrenheit", catalog.Temperature, catalog.FahrenheitToCelsius, 0, nil, "0.0°F = -17.78°C"},
		{"km", catalog.Distance, catalog.KilometersToMiles, 42.195, nil, "42.195 km = 26.22 miles"},
		{"miles", catalog.Distance, catalog.MilesToKilometers, 26.2, nil, "26.2 miles = 42.16 km"},
		{"zero", catalog.Distance, catalog.MilesToKilometers, 0, nil, "0.0 miles = 0.00 km"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Convert(tt.category, tt.operation, tt.amount, tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, tt.operation, res.Operation)
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name      string
		category  catalog.Category
		operation string
		amount    float64
		wantErr   error
	}{
		{"negative", catalog.Distance, catalog.KilometersToMiles, -1, domain.ErrValidation},
		{"nan", catalog.Distance, catalog.KilometersToMiles, math.NaN(), domain.ErrValidation},
		{"inf", catalog.Temperature, catalog.CelsiusToFahrenheit, math.Inf(1), domain.ErrValidation},
		{"overflow", catalog.Currency, catalog.USDToKES, math.MaxFloat64, domain.ErrValidation},
		{"operation from other category", catalog.Temperature, catalog.USDToKES, 1, domain.ErrUnknownOperation},
		{"unknown category", catalog.Category(9), catalog.USDToKES, 1, domain.ErrUnknownOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Convert(tt.category, tt.operation, tt.amount, rates.Fallback())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}

// resultValue parses the rounded value back out of a result text.
func resultValue(t *testing.T, text string) float64 {
	t.Helper()
	_, rhs, ok := strings.Cut(text, " = ")
	require.True(t, ok, text)
	end := strings.IndexFunc(rhs, func(r rune) bool {
		return r != '-' && r != '.' && (r < '0' || r > '9')
	})
	if end >= 0 {
		rhs = rhs[:end]
	}
	v, err := strconv.ParseFloat(rhs, 64)
	require.NoError(t, err, text)
	return v
}

func sampleAmounts(limit float64) []float64 {
	r := rand.New(rand.NewSource(7))
	amounts := []float64{0, 0.01, 1, 10, 37.5, 100, limit}
	for range 50 {
		amounts = append(amounts, r.Float64()*limit)
	}
	return amounts
}

func TestConvert_TemperatureRoundTrip(t *testing.T) {
	for _, a := range sampleAmounts(1e6) {
		f, err := Convert(catalog.Temperature, catalog.CelsiusToFahrenheit, a, nil)
		require.NoError(t, err)
		assert.Equal(t, FormatValue(a*9/5+32), FormatValue(f.Value))

		back, err := Convert(catalog.Temperature, catalog.FahrenheitToCelsius, resultValue(t, f.Text), nil)
		require.NoError(t, err)
		assert.InDelta(t, a, resultValue(t, back.Text), 0.01, "amount %v", a)
	}
}

// The two distance factors are not exact inverses (their product is 0.9999972),
// so the round trip drifts by about 2.8e-6 per km on top of display rounding.
func TestConvert_DistanceRoundTrip(t *testing.T) {
	for _, a := range sampleAmounts(500) {
		mi, err := Convert(catalog.Distance, catalog.KilometersToMiles, a, nil)
		require.NoError(t, err)

		back, err := Convert(catalog.Distance, catalog.MilesToKilometers, resultValue(t, mi.Text), nil)
		require.NoError(t, err)
		assert.InDelta(t, a, back.Value, 0.01, "amount %v", a)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1300, "1300.00"},
		{6.21371, "6.21"},
		{0, "0.00"},
		// exact ties go to the even cent
		{0.125, "0.12"},
		{0.375, "0.38"},
		{-0.125, "-0.12"},
		// the binary value sits just below or above the written one
		{2.675, "2.67"},
		{1.005, "1.00"},
		{0.015, "0.01"},
		{-0.001, "-0.00"},
		{1e20, "100000000000000000000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "FormatValue(%v)", tt.in)
	}
}

// FormatValue must agree with fixed-point formatting of the binary value,
// which already rounds correctly with ties to even.
func TestFormatValue_MatchesFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 2000 {
		v := float64(rng.Intn(2_000_000)) / 1000
		assert.Equal(t, strconv.FormatFloat(v, 'f', 2, 64), FormatValue(v), "FormatValue(%v)", v)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		10:      "10.0",
		0:       "0.0",
		2.5:     "2.5",
		0.1:     "0.1",
		1234.56: "1234.56",
		0.0001:  "0.0001",
		0.00001: "1e-05",
		1.5e-7:  "1.5e-07",
		1e16:    "1e+16",
		1e15:    "1000000000000000.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(in), "FormatAmount(%v)", in)
	}
}
