// service.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package analytics

import (
	"context"
	"log"
	"time"

	"github.com/localnerve/scenedir/internal/store"
)

// dailyCountersPath is where the external counting process writes per-day
// per-scene view counters.
const dailyCountersPath = "counters/daily"

// globalTotalsPath is the externally maintained per-scene cumulative totals document.
const globalTotalsPath = "counters/globalTotals"

// Service computes dashboard figures from the counter documents.
// All reads degrade to zero-filled or empty results when the upstream is
// unreachable; a dashboard renders flat rather than erroring.
type Service struct {
	store        *store.Client
	windowMonths int
	horizon      int
	topK         int
}

// NewService creates an analytics service.
func NewService(c *store.Client, windowMonths, horizon, topK int) *Service {
	return &Service{
		store:        c,
		windowMonths: windowMonths,
		horizon:      horizon,
		topK:         topK,
	}
}

// History returns the monthly view series, zero-filled over the trailing window.
func (s *Service) History(ctx context.Context, token string) []MonthlyBucket {
	raw, err := s.store.Get(ctx, token, dailyCountersPath)
	if err != nil {
		log.Printf("performance history degraded to zero-filled window: %v", err)
		raw = nil
	}
	return AggregateMonthly(raw, s.windowMonths, time.Now().UTC())
}

// HistoryWithForecast returns the monthly series plus the projected next months.
func (s *Service) HistoryWithForecast(ctx context.Context, token string) ([]MonthlyBucket, []ForecastPoint) {
	now := time.Now().UTC()

	raw, err := s.store.Get(ctx, token, dailyCountersPath)
	if err != nil {
		log.Printf("performance forecast degraded to zero-filled window: %v", err)
		raw = nil
	}

	history := AggregateMonthly(raw, s.windowMonths, now)
	return history, Forecast(history, s.horizon, now)
}

// TopScenesDistribution ranks the global totals document, top K views first.
func (s *Service) TopScenesDistribution(ctx context.Context, token string) ([]string, []int) {
	raw, err := s.store.Get(ctx, token, globalTotalsPath)
	if err != nil {
		log.Printf("top scenes degraded to empty: %v", err)
		return []string{}, []int{}
	}
	return TopScenes(raw, s.topK)
}
