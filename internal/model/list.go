package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingList is the active list a user (and anyone it is shared with)
// works on. Budget is the optional spending ceiling; nil means no budget.
type ShoppingList struct {
	ID        int64            `json:"id"`
	OwnerID   int64            `json:"owner_id"`
	Name      string           `json:"name"`
	Budget    *decimal.Decimal `json:"budget,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ListMember grants a user access to a list they do not own.
type ListMember struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
