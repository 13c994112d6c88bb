// Package pricing compares an item's current price against what was paid
// for it in past purchases.
package pricing

import (
	"math"
	"time"

	"github.com/checklistia/checklistia/internal/match"
	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

// Comparison classifies the current price against the last paid price.
type Comparison string

const (
	ComparisonCheaper       Comparison = "cheaper"
	ComparisonMoreExpensive Comparison = "more_expensive"
	ComparisonSame          Comparison = "same"
	ComparisonNoHistory     Comparison = "no_history"
)

// HistoryEntry is one historic occurrence of an item, tied to the
// purchase it came from.
type HistoryEntry struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice string          `json:"display_price"`
	Details      string          `json:"details"`
	MarketName   string          `json:"market_name"`
	PurchasedAt  time.Time       `json:"purchased_at"`
}

// Lookup returns every historic line item whose name matches, newest
// first. Records are expected newest-first already (store ordering);
// within a record the item order is preserved.
func Lookup(name string, records []model.PurchaseRecord, m match.Matcher) []HistoryEntry {
	var entries []HistoryEntry
	for _, rec := range records {
		for _, item := range rec.Items {
			if m.Matches(item.Name, name) {
				entries = append(entries, HistoryEntry{
					Name:         item.Name,
					Price:        item.Price,
					DisplayPrice: model.FormatBRL(item.Price),
					Details:      item.Details,
					MarketName:   rec.MarketName,
					PurchasedAt:  rec.CreatedAt,
				})
			}
		}
	}
	return entries
}

// Compare classifies current against baseline (the most recent paid
// price). The percentage delta is rounded to the nearest integer and only
// meaningful when the baseline is positive; otherwise it is zero.
func Compare(current, baseline decimal.Decimal) (Comparison, int) {
	var delta int
	if baseline.IsPositive() {
		ratio, _ := current.Sub(baseline).Div(baseline).Mul(decimal.NewFromInt(100)).Float64()
		delta = int(math.Round(ratio))
	}

	switch current.Cmp(baseline) {
	case -1:
		return ComparisonCheaper, delta
	case 1:
		return ComparisonMoreExpensive, delta
	default:
		return ComparisonSame, delta
	}
}
