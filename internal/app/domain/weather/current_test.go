package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentPayload = `{
	"name": "Lisbon",
	"dt": 1709294400,
	"main": {"temp": 17.6, "feels_like": 16.4, "temp_min": 15.2, "temp_max": 19.5, "pressure": 1018, "humidity": 72},
	"weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02d"}],
	"wind": {"speed": 4.63, "deg": 320},
	"sys": {"country": "PT", "sunrise": 1709276400, "sunset": 1709317200},
	"visibility": 8000,
	"timezone": 0
}`

func TestNormalizeCurrent(t *testing.T) {
	var raw CurrentResponse
	require.NoError(t, json.Unmarshal([]byte(currentPayload), &raw))

	got := NormalizeCurrent(raw)

	assert.Equal(t, "Lisbon", got.City)
	assert.Equal(t, "PT", got.Country)
	assert.Equal(t, 18, got.Temp)
	assert.Equal(t, 16, got.FeelsLike)
	assert.Equal(t, 15, got.TempMin)
	assert.Equal(t, 20, got.TempMax)
	assert.Equal(t, 4.6, got.Wind)
	assert.Equal(t, 320, got.WindDeg)
	assert.Equal(t, "Clouds", got.Condition)
	assert.Equal(t, "few clouds", got.Description)
	assert.Equal(t, "02d", got.Icon)
	assert.Equal(t, 8, got.Visibility)
	assert.Equal(t, 1018, got.Pressure)
	assert.Equal(t, 72, got.Humidity)
}

func TestNormalizeCurrent_VisibilityDefaults(t *testing.T) {
	zero := 0
	tests := []struct {
		name       string
		visibility *int
	}{
		{name: "missing", visibility: nil},
		{name: "zero", visibility: &zero},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeCurrent(CurrentResponse{Visibility: tc.visibility})
			assert.Equal(t, 10, got.Visibility)
		})
	}
}

func TestNormalizeCurrent_NoConditions(t *testing.T) {
	got := NormalizeCurrent(CurrentResponse{Name: "Nowhere"})
	assert.Equal(t, "Nowhere", got.City)
	assert.Empty(t, got.Condition)
}

func TestSamples(t *testing.T) {
	raw := ForecastResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{"list":[
		{"dt": 100, "main": {"temp": 9.9, "humidity": 50}, "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}], "wind": {"speed": 2.2, "deg": 90}, "pop": 0.4}
	]}`), &raw))

	got := Samples(raw)

	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].Timestamp)
	assert.Equal(t, 9.9, got[0].Temp)
	assert.Equal(t, 500, got[0].ConditionID)
	assert.Equal(t, "Rain", got[0].Condition)
	assert.Equal(t, 0.4, got[0].Pop)
}
