package weather

import "github.com/FACorreiaa/wanderai/internal/app/models"

const defaultVisibilityMeters = 10000

// NormalizeCurrent maps a raw current-conditions response into a
// CurrentWeather. Temperatures are whole degrees, wind keeps one decimal and
// visibility is converted to kilometres, defaulting to 10 km when missing.
func NormalizeCurrent(raw CurrentResponse) models.CurrentWeather {
	visibility := defaultVisibilityMeters
	if raw.Visibility != nil && *raw.Visibility != 0 {
		visibility = *raw.Visibility
	}

	cond := firstCondition(raw.Weather)

	return models.CurrentWeather{
		City:        raw.Name,
		Country:     raw.Sys.Country,
		Temp:        roundHalfUp(raw.Main.Temp),
		FeelsLike:   roundHalfUp(raw.Main.FeelsLike),
		TempMin:     roundHalfUp(raw.Main.TempMin),
		TempMax:     roundHalfUp(raw.Main.TempMax),
		Humidity:    raw.Main.Humidity,
		Wind:        roundTenth(raw.Wind.Speed),
		WindDeg:     raw.Wind.Deg,
		Condition:   cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
		Visibility:  roundHalfUp(float64(visibility) / 1000),
		Pressure:    raw.Main.Pressure,
		Sunrise:     raw.Sys.Sunrise,
		Sunset:      raw.Sys.Sunset,
		Timezone:    raw.Timezone,
	}
}

// Samples converts the provider's forecast list into WeatherSamples, verbatim.
func Samples(raw ForecastResponse) []models.WeatherSample {
	samples := make([]models.WeatherSample, 0, len(raw.List))
	for _, item := range raw.List {
		cond := firstCondition(item.Weather)
		samples = append(samples, models.WeatherSample{
			Timestamp:   item.Dt,
			Temp:        item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
			Humidity:    item.Main.Humidity,
			Pressure:    item.Main.Pressure,
			WindSpeed:   item.Wind.Speed,
			WindDeg:     item.Wind.Deg,
			ConditionID: cond.ID,
			Condition:   cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
			Pop:         item.Pop,
		})
	}
	return samples
}

func firstCondition(items []owmCondition) owmCondition {
	if len(items) == 0 {
		return owmCondition{}
	}
	return items[0]
}
