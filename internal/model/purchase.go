package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord is an immutable snapshot taken when a list is finalized.
type PurchaseRecord struct {
	ID         int64           `json:"id"`
	ListID     int64           `json:"list_id"`
	UserID     int64           `json:"user_id"`
	MarketName string          `json:"market_name"`
	Total      decimal.Decimal `json:"total"`
	Items      []HistoricItem  `json:"items,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// HistoricItem is a lightweight line item inside a purchase record.
type HistoricItem struct {
	ID         int64           `json:"id"`
	PurchaseID int64           `json:"purchase_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Details    string          `json:"details"`
}
