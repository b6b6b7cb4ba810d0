package models

import "time"

// WeatherSample is one raw 3-hour observation as returned by the provider.
type WeatherSample struct {
	Timestamp   int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     int     `json:"wind_deg"`
	ConditionID int     `json:"condition_id"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Pop         float64 `json:"pop"`
}

// DailyForecast is one calendar day of the aggregated forecast. Representative
// fields come from the sample nearest to noon, TempMin/TempMax span the day.
type DailyForecast struct {
	DateKey     string  `json:"dateKey"`
	Day         string  `json:"day"`
	Date        string  `json:"date"`
	Temp        int     `json:"temp"`
	TempMin     int     `json:"tempMin"`
	TempMax     int     `json:"tempMax"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	Wind        float64 `json:"wind"`
	Pop         int     `json:"pop"`
}

// CurrentWeather is a normalized current-conditions snapshot.
type CurrentWeather struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feelsLike"`
	TempMin     int     `json:"tempMin"`
	TempMax     int     `json:"tempMax"`
	Humidity    int     `json:"humidity"`
	Wind        float64 `json:"wind"`
	WindDeg     int     `json:"windDeg"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Visibility  int     `json:"visibility"`
	Pressure    int     `json:"pressure"`
	Sunrise     int64   `json:"sunrise"`
	Sunset      int64   `json:"sunset"`
	Timezone    int     `json:"timezone"`
}

// WeatherSnapshot joins current conditions and the daily forecast of one fetch.
type WeatherSnapshot struct {
	Current   CurrentWeather  `json:"current"`
	Forecast  []DailyForecast `json:"forecast"`
	FetchedAt time.Time       `json:"fetchedAt"`
}
