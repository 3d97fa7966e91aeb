package analytics

import (
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"github.com/localnerve/scenedir/internal/types"
)

// MonthlyBucket is one calendar month's summed view count.
type MonthlyBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// dateKeyLayout is the 8-digit calendar form daily counter keys use.
const dateKeyLayout = "20060102"

// monthLayout keys monthly buckets; lexicographic order equals chronological.
const monthLayout = "2006-01"

// sceneDayEntry is one scene's counter under a daily key.
type sceneDayEntry struct {
	Views types.FlexInt `json:"views"`
}

// AggregateMonthly rolls a raw daily counter document into monthly buckets,
// sorted ascending by month.
//
// Keys that are not 8-digit calendar dates are skipped, as is any scene entry
// that does not parse; one bad day never poisons the rest. The trailing
// windowMonths months ending at now are always present, zero-filled when no
// daily data landed in them, so chart series never have gaps.
func AggregateMonthly(raw []byte, windowMonths int, now time.Time) []MonthlyBucket {
	monthCount := map[string]int{}

	var days map[string]json.RawMessage
	if len(raw) > 0 {
		// a malformed document aggregates like an empty one
		_ = json.Unmarshal(raw, &days)
	}

	for dateKey, dayValue := range days {
		day, err := time.Parse(dateKeyLayout, dateKey)
		if err != nil {
			continue
		}
		month := day.Format(monthLayout)
		if _, ok := monthCount[month]; !ok {
			monthCount[month] = 0
		}

		var scenes map[string]json.RawMessage
		if err := json.Unmarshal(dayValue, &scenes); err != nil {
			continue
		}
		for _, sceneValue := range scenes {
			var entry sceneDayEntry
			if err := json.Unmarshal(sceneValue, &entry); err != nil {
				continue
			}
			monthCount[month] += entry.Views.Int()
		}
	}

	// Ensure the trailing window always exists
	for i := windowMonths - 1; i >= 0; i-- {
		month := monthLabel(now, -i)
		if _, ok := monthCount[month]; !ok {
			monthCount[month] = 0
		}
	}

	buckets := make([]MonthlyBucket, 0, len(monthCount))
	for month, count := range monthCount {
		buckets = append(buckets, MonthlyBucket{Month: month, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}

// monthLabel shifts now by offset whole months and formats the result.
// Plain AddDate would overshoot at month ends (Mar 31 minus one month lands
// in March again), so the shift works on a year*12+month index.
func monthLabel(now time.Time, offset int) string {
	idx := now.Year()*12 + int(now.Month()) - 1 + offset
	year := idx / 12
	month := time.Month(idx%12 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}
