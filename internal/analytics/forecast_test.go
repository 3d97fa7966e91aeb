package analytics

import (
	"testing"
)

func series(counts ...int) []MonthlyBucket {
	out := make([]MonthlyBucket, len(counts))
	for i, c := range counts {
		out[i] = MonthlyBucket{Month: monthLabel(testNow, i-len(counts)+1), Count: c}
	}
	return out
}

func TestForecastLinearSeries(t *testing.T) {
	// perfect slope-1 line 1..6 projects 7, 8, 9
	points := Forecast(series(1, 2, 3, 4, 5, 6), 3, testNow)
	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}

	expected := []int{7, 8, 9}
	months := []string{"2024-04", "2024-05", "2024-06"}
	for i, p := range points {
		if p.Predicted != expected[i] {
			t.Errorf("Point %d: expected %d, got %d", i, expected[i], p.Predicted)
		}
		if p.Month != months[i] {
			t.Errorf("Point %d: expected month %s, got %s", i, months[i], p.Month)
		}
	}
}

func TestForecastFlatSeries(t *testing.T) {
	points := Forecast(series(5, 5, 5, 5), 2, testNow)
	for _, p := range points {
		if p.Predicted != 5 {
			t.Errorf("Flat series must project flat, got %d", p.Predicted)
		}
	}
}

func TestForecastClampsNegative(t *testing.T) {
	points := Forecast(series(9, 6, 3), 3, testNow)
	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}
	// slope -3 reaches zero immediately and stays clamped
	for i, p := range points {
		if p.Predicted < 0 {
			t.Errorf("Point %d: negative prediction %d", i, p.Predicted)
		}
	}
	if points[2].Predicted != 0 {
		t.Errorf("Expected clamp to zero, got %d", points[2].Predicted)
	}
}

func TestForecastTooFewPoints(t *testing.T) {
	if points := Forecast(series(7), 3, testNow); len(points) != 0 {
		t.Errorf("Single point must yield empty forecast, got %v", points)
	}
	if points := Forecast(nil, 3, testNow); len(points) != 0 {
		t.Errorf("Empty series must yield empty forecast, got %v", points)
	}
	if points := Forecast(series(1, 2, 3), 0, testNow); len(points) != 0 {
		t.Errorf("Zero horizon must yield empty forecast, got %v", points)
	}
}
