package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Share exposes a snapshot of a list through an opaque token. The items
// are captured at creation time, so a link keeps resolving even after
// the source list is finalized or discarded.
type Share struct {
	ID         int64        `json:"id"`
	Token      string       `json:"token"`
	ListID     int64        `json:"list_id"`
	MarketName string       `json:"market_name"`
	AuthorName string       `json:"author_name"`
	Items      []SharedItem `json:"items,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// SharedItem is one captured line inside a share.
type SharedItem struct {
	ID         int64           `json:"id"`
	ShareID    int64           `json:"share_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Details    string          `json:"details"`
	RecipeName string          `json:"recipe_name"`
}
