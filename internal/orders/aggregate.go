package orders

import (
	"time"

	"github.com/brewplanhq/brewplan-backend/internal/predict"
	"github.com/brewplanhq/brewplan-backend/internal/schedule"
)

// Recommendation is the purchase-order suggestion for one order slot. Items
// carries the full known item key set; an item without demand sums to 0.
type Recommendation struct {
	OrderDate     time.Time      `json:"order_date"`
	Label         string         `json:"label"`
	CoverageStart time.Time      `json:"coverage_start"`
	CoverageEnd   time.Time      `json:"coverage_end"`
	Items         map[string]int `json:"items"`
}

// Aggregate sums predicted per-item demand over each window's coverage range.
// Windows with no matching forecast day are omitted, not errored: a window
// past the forecast horizon simply produces nothing. Output order follows the
// window order.
func Aggregate(records []predict.EnrichedDay, windows []schedule.Window, itemIDs []string) []Recommendation {
	recommendations := make([]Recommendation, 0, len(windows))

	for _, window := range windows {
		totals := make(map[string]int, len(itemIDs))
		for _, id := range itemIDs {
			totals[id] = 0
		}

		matched := 0
		for _, record := range records {
			if record.Date.Before(window.CoverageStart) || record.Date.After(window.CoverageEnd) {
				continue
			}
			matched++
			for _, id := range itemIDs {
				totals[id] += record.PredictedItems[id]
			}
		}
		if matched == 0 {
			continue
		}

		recommendations = append(recommendations, Recommendation{
			OrderDate:     window.OrderDate,
			Label:         window.Label,
			CoverageStart: window.CoverageStart,
			CoverageEnd:   window.CoverageEnd,
			Items:         totals,
		})
	}

	return recommendations
}
