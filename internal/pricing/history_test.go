package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/match"
	"github.com/checklistia/checklistia/internal/model"
)

func record(market string, daysAgo int, items ...model.HistoricItem) model.PurchaseRecord {
	return model.PurchaseRecord{
		MarketName: market,
		Items:      items,
		CreatedAt:  time.Now().AddDate(0, 0, -daysAgo),
	}
}

func histItem(name, price string) model.HistoricItem {
	return model.HistoricItem{Name: name, Price: decimal.RequireFromString(price)}
}

func TestLookup(t *testing.T) {
	records := []model.PurchaseRecord{
		record("Mercado A", 1, histItem("Leite", "5.50"), histItem("Pão", "8.00")),
		record("Mercado B", 10, histItem("leite", "4.90")),
	}

	entries := Lookup("Leite", records, match.CaseInsensitive{})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MarketName != "Mercado A" {
		t.Errorf("entries[0].MarketName = %q, want Mercado A", entries[0].MarketName)
	}
	if got := entries[0].Price.String(); got != "5.5" {
		t.Errorf("entries[0].Price = %s, want 5.5", got)
	}
	if entries[0].DisplayPrice != "R$ 5,50" {
		t.Errorf("entries[0].DisplayPrice = %q", entries[0].DisplayPrice)
	}
	if entries[1].MarketName != "Mercado B" {
		t.Errorf("entries[1].MarketName = %q, want Mercado B", entries[1].MarketName)
	}
}

func TestLookupNoMatches(t *testing.T) {
	records := []model.PurchaseRecord{
		record("Mercado A", 1, histItem("Leite", "5.50")),
	}

	if entries := Lookup("Arroz", records, match.CaseInsensitive{}); len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		current  string
		baseline string
		want     Comparison
		delta    int
	}{
		{"4.00", "5.00", ComparisonCheaper, -20},
		{"6.00", "5.00", ComparisonMoreExpensive, 20},
		{"5.00", "5.00", ComparisonSame, 0},
		{"5.05", "5.00", ComparisonMoreExpensive, 1},
	}

	for _, tt := range tests {
		got, delta := Compare(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.baseline))
		if got != tt.want || delta != tt.delta {
			t.Errorf("Compare(%s, %s) = %s/%d, want %s/%d", tt.current, tt.baseline, got, delta, tt.want, tt.delta)
		}
	}
}

func TestCompareZeroBaseline(t *testing.T) {
	got, delta := Compare(decimal.NewFromInt(5), decimal.Zero)
	if got != ComparisonMoreExpensive {
		t.Errorf("comparison = %s, want more_expensive", got)
	}
	if delta != 0 {
		t.Errorf("delta = %d, want 0 for zero baseline", delta)
	}
}
