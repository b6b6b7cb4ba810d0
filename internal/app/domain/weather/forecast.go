package weather

import (
	"math"
	"time"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

// MaxForecastDays caps the number of daily records produced from a forecast.
const MaxForecastDays = 5

type dayBucket struct {
	rep     models.WeatherSample
	repHour int
	minTemp float64
	maxTemp float64
}

// AggregateForecast groups 3-hour samples by UTC calendar date and returns one
// record per date in first-seen order, at most MaxForecastDays of them.
//
// The representative sample of a day is the one whose hour, rendered in loc,
// is closest to noon; ties keep the earlier sample. TempMin and TempMax span
// every sample of the day. Dates are UTC while hours follow loc, so days near
// midnight can land on the neighbouring destination-local day.
func AggregateForecast(samples []models.WeatherSample, loc *time.Location) []models.DailyForecast {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]*dayBucket)
	var order []string

	for _, s := range samples {
		ts := time.Unix(s.Timestamp, 0)
		key := ts.UTC().Format(time.DateOnly)
		hour := ts.In(loc).Hour()

		b, ok := buckets[key]
		if !ok {
			buckets[key] = &dayBucket{rep: s, repHour: hour, minTemp: s.Temp, maxTemp: s.Temp}
			order = append(order, key)
			continue
		}

		if noonDistance(hour) < noonDistance(b.repHour) {
			b.rep = s
			b.repHour = hour
		}
		b.minTemp = math.Min(b.minTemp, s.Temp)
		b.maxTemp = math.Max(b.maxTemp, s.Temp)
	}

	if len(order) > MaxForecastDays {
		order = order[:MaxForecastDays]
	}

	out := make([]models.DailyForecast, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		date, _ := time.Parse(time.DateOnly, key)
		out = append(out, models.DailyForecast{
			DateKey:     key,
			Day:         date.Format("Mon"),
			Date:        date.Format("Jan 2"),
			Temp:        roundHalfUp(b.rep.Temp),
			TempMin:     roundHalfUp(b.minTemp),
			TempMax:     roundHalfUp(b.maxTemp),
			Condition:   b.rep.Condition,
			Description: b.rep.Description,
			Icon:        b.rep.Icon,
			Humidity:    b.rep.Humidity,
			Wind:        roundTenth(b.rep.WindSpeed),
			Pop:         roundHalfUp(b.rep.Pop * 100),
		})
	}
	return out
}

func noonDistance(hour int) int {
	if hour > 12 {
		return hour - 12
	}
	return 12 - hour
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
