package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a curated market deal shown in the offers feed.
type Offer struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Market      string          `json:"market"`
	Price       decimal.Decimal `json:"price"`
	ValidUntil  *time.Time      `json:"valid_until,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
