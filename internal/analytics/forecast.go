package analytics

import (
	"math"
	"time"
)

// ForecastPoint is one projected future month.
type ForecastPoint struct {
	Month     string `json:"month"`
	Predicted int    `json:"predicted"`
}

// Forecast extrapolates the monthly series horizon months forward with an
// ordinary-least-squares line over index positions 1..n. Fewer than two
// observed points yield an empty forecast. Predictions are clamped at zero
// and rounded for presentation.
//
// Month labels are anchored at now, not at the last observed month; when the
// data lags the calendar the labels and the regression's time axis diverge.
// That is the documented behavior of this dashboard and is kept as is.
func Forecast(series []MonthlyBucket, horizon int, now time.Time) []ForecastPoint {
	forecast := []ForecastPoint{}

	n := len(series)
	if n < 2 || horizon < 1 {
		return forecast
	}

	var xMean, yMean float64
	for i, b := range series {
		xMean += float64(i + 1)
		yMean += float64(b.Count)
	}
	xMean /= float64(n)
	yMean /= float64(n)

	var numerator, denominator float64
	for i, b := range series {
		dx := float64(i+1) - xMean
		numerator += dx * (float64(b.Count) - yMean)
		denominator += dx * dx
	}
	if denominator == 0 {
		return forecast
	}

	slope := numerator / denominator
	intercept := yMean - slope*xMean

	for i := 1; i <= horizon; i++ {
		predicted := intercept + slope*float64(n+i)
		if predicted < 0 {
			predicted = 0
		}
		forecast = append(forecast, ForecastPoint{
			Month:     monthLabel(now, i),
			Predicted: int(math.Round(predicted)),
		})
	}
	return forecast
}
