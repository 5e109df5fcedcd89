// Package summary aggregates cleaned board entities into bounded summaries
// that are small enough to hand back to the model.
package summary

import (
	"fmt"
	"math"
)

// unknownBucket groups entities whose category field is absent.
const unknownBucket = "Unknown"

// Result is the output of one tool call. The full value may hold every cleaned
// item; ForContext returns the copy that is safe to put into the model's
// context.
type Result interface {
	// ItemCount is the representative number of items the result covers.
	ItemCount() int

	// DataQuality returns the result's data quality notes, or an empty object.
	DataQuality() any

	// ForContext drops per-item detail and caps any item list at limit.
	ForContext(limit int) any
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func coverage(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}

func bucket(label string) string {
	if label == "" {
		return unknownBucket
	}
	return label
}

// nullable renders "" as JSON null in summary rows.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func capItems[T any](items []T, limit int) []T {
	if limit < 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}
