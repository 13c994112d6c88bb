package totals

import (
	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

// Severity classifies budget consumption for presentation.
type Severity string

const (
	SeverityNormal  Severity = "normal"  // < 80%
	SeverityWarning Severity = "warning" // 80–95%
	SeverityDanger  Severity = "danger"  // >= 95%
)

// Summary holds the derived totals for a list.
type Summary struct {
	PurchasedTotal        decimal.Decimal `json:"purchased_total"`
	ListTotal             decimal.Decimal `json:"list_total"`
	DisplayPurchasedTotal string          `json:"display_purchased_total"`
	DisplayListTotal      string          `json:"display_list_total"`
	Progress              float64         `json:"progress"`
	Severity              Severity        `json:"severity"`
	Overshoot             bool            `json:"overshoot"`
	HasBudget             bool            `json:"has_budget"`
}

// Summarize derives purchased and list totals from items and, when a
// positive budget is set, the clamped budget progress. A nil or
// non-positive budget means "no budget": progress is 0 and the client
// hides the bar. Negative item prices are treated as zero.
func Summarize(items []model.ShoppingItem, budget *decimal.Decimal) Summary {
	purchased := decimal.Zero
	total := decimal.Zero

	for _, item := range items {
		price := item.CalculatedPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		total = total.Add(price)
		if item.IsPurchased {
			purchased = purchased.Add(price)
		}
	}

	s := Summary{
		PurchasedTotal:        purchased,
		ListTotal:             total,
		DisplayPurchasedTotal: model.FormatBRL(purchased),
		DisplayListTotal:      model.FormatBRL(total),
		Severity:              SeverityNormal,
	}

	if budget == nil || !budget.IsPositive() {
		return s
	}
	s.HasBudget = true

	raw, _ := purchased.Div(*budget).Mul(decimal.NewFromInt(100)).Float64()
	s.Overshoot = raw > 100
	if raw > 100 {
		raw = 100
	}
	s.Progress = raw

	switch {
	case raw >= 95:
		s.Severity = SeverityDanger
	case raw >= 80:
		s.Severity = SeverityWarning
	}
	return s
}
