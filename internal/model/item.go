package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingItem is one line in a shopping list. A price of zero means the
// price has not been entered yet; such items cannot be marked purchased.
type ShoppingItem struct {
	ID              int64           `json:"id"`
	ListID          int64           `json:"list_id"`
	Name            string          `json:"name"`
	CalculatedPrice decimal.Decimal `json:"calculated_price"`
	DisplayPrice    string          `json:"display_price"`
	Details         string          `json:"details"`
	IsPurchased     bool            `json:"is_purchased"`
	RecipeName      string          `json:"recipe_name,omitempty"`
	ResponsibleID   *int64          `json:"responsible_id,omitempty"`
	ResponsibleName string          `json:"responsible_name,omitempty"`
	CreatorID       *int64          `json:"creator_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// HasPrice reports whether a price has been entered for the item.
func (i *ShoppingItem) HasPrice() bool {
	return i.CalculatedPrice.IsPositive()
}

// FormatBRL renders an amount as a Brazilian Real display string,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed[:len(fixed)-3]
	decPart := fixed[len(fixed)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
