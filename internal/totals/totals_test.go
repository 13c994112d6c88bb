package totals

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/model"
)

func priced(price string, purchased bool) model.ShoppingItem {
	return model.ShoppingItem{
		CalculatedPrice: decimal.RequireFromString(price),
		IsPurchased:     purchased,
	}
}

func TestSummarizeTotals(t *testing.T) {
	items := []model.ShoppingItem{
		priced("10.50", true),
		priced("5.00", false),
		priced("2.25", true),
	}

	s := Summarize(items, nil)
	if got := s.PurchasedTotal.String(); got != "12.75" {
		t.Errorf("purchased total = %s, want 12.75", got)
	}
	if got := s.ListTotal.String(); got != "17.75" {
		t.Errorf("list total = %s, want 17.75", got)
	}
	if s.DisplayPurchasedTotal != "R$ 12,75" {
		t.Errorf("display purchased = %q", s.DisplayPurchasedTotal)
	}
}

func TestSummarizeEmptyList(t *testing.T) {
	s := Summarize(nil, nil)
	if !s.PurchasedTotal.IsZero() || !s.ListTotal.IsZero() {
		t.Errorf("empty list totals = %s / %s, want zero", s.PurchasedTotal, s.ListTotal)
	}
	if s.HasBudget {
		t.Error("empty list should have no budget")
	}
}

func TestSummarizeNegativePricesTreatedAsZero(t *testing.T) {
	items := []model.ShoppingItem{
		priced("-3.00", true),
		priced("4.00", true),
	}

	s := Summarize(items, nil)
	if got := s.PurchasedTotal.String(); got != "4" {
		t.Errorf("purchased total = %s, want 4", got)
	}
}

func TestSummarizeNoBudget(t *testing.T) {
	items := []model.ShoppingItem{priced("50.00", true)}

	s := Summarize(items, nil)
	if s.HasBudget {
		t.Error("HasBudget = true, want false")
	}
	if s.Progress != 0 {
		t.Errorf("progress = %f, want 0", s.Progress)
	}
	if s.Severity != SeverityNormal {
		t.Errorf("severity = %s, want normal", s.Severity)
	}

	zero := decimal.Zero
	if s := Summarize(items, &zero); s.HasBudget {
		t.Error("zero budget should behave like no budget")
	}
}

func TestSummarizeSeverityBands(t *testing.T) {
	budget := decimal.NewFromInt(100)

	tests := []struct {
		purchased string
		progress  float64
		severity  Severity
		overshoot bool
	}{
		{"50.00", 50, SeverityNormal, false},
		{"79.99", 79.99, SeverityNormal, false},
		{"80.00", 80, SeverityWarning, false},
		{"94.99", 94.99, SeverityWarning, false},
		{"95.00", 95, SeverityDanger, false},
		{"100.00", 100, SeverityDanger, false},
		{"120.00", 100, SeverityDanger, true},
	}

	for _, tt := range tests {
		s := Summarize([]model.ShoppingItem{priced(tt.purchased, true)}, &budget)
		if s.Progress != tt.progress {
			t.Errorf("purchased %s: progress = %f, want %f", tt.purchased, s.Progress, tt.progress)
		}
		if s.Severity != tt.severity {
			t.Errorf("purchased %s: severity = %s, want %s", tt.purchased, s.Severity, tt.severity)
		}
		if s.Overshoot != tt.overshoot {
			t.Errorf("purchased %s: overshoot = %v, want %v", tt.purchased, s.Overshoot, tt.overshoot)
		}
	}
}

func TestSummarizeUnpurchasedDoesNotConsumeBudget(t *testing.T) {
	budget := decimal.NewFromInt(100)
	items := []model.ShoppingItem{
		priced("90.00", false),
		priced("10.00", true),
	}

	s := Summarize(items, &budget)
	if s.Progress != 10 {
		t.Errorf("progress = %f, want 10", s.Progress)
	}
	if s.Severity != SeverityNormal {
		t.Errorf("severity = %s, want normal", s.Severity)
	}
}
