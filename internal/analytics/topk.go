package analytics

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/localnerve/scenedir/internal/types"
)

// unknownTitle labels totals entries that carry no title.
const unknownTitle = "Unknown"

// sceneTotal is one entry of the pre-aggregated global totals document.
type sceneTotal struct {
	Title string        `json:"title"`
	Views types.FlexInt `json:"views"`
}

// TopScenes ranks the global totals document and returns the top k as
// parallel label/count slices, views descending.
//
// The document is walked with a token decoder so entries keep their original
// order; the stable sort then breaks count ties the way the document listed
// them. Missing titles fall back to a placeholder, missing views to zero,
// and an empty or absent document yields empty slices.
func TopScenes(raw []byte, k int) ([]string, []int) {
	labels := []string{}
	counts := []int{}

	entries := parseTotals(raw)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Views > entries[j].Views
	})

	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	for _, e := range entries {
		labels = append(labels, e.Title)
		counts = append(counts, e.Views.Int())
	}
	return labels, counts
}

// parseTotals reads the totals object in document order. Entries that are
// not objects are skipped without aborting the rest.
func parseTotals(raw []byte) []sceneTotal {
	entries := []sceneTotal{}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.EqualFold(bytes.TrimSpace(raw), []byte("null")) {
		return entries
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return entries
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return entries
	}

	for dec.More() {
		// key
		if _, err := dec.Token(); err != nil {
			return entries
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return entries
		}

		var entry sceneTotal
		if err := json.Unmarshal(value, &entry); err != nil {
			continue
		}
		if entry.Title == "" {
			entry.Title = unknownTitle
		}
		entries = append(entries, entry)
	}
	return entries
}
