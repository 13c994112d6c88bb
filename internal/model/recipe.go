package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a catalog entry, either admin-curated or AI-synthesized.
type Recipe struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Instructions []string           `json:"instructions"`
	PrepTime     string             `json:"prep_time"`
	Difficulty   string             `json:"difficulty"`
	CostTier     string             `json:"cost_tier"`
	Tags         []string           `json:"tags"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
	CreatedBy    *int64             `json:"created_by,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// RecipeIngredient pairs a simplified shopping name with the detailed
// form used in the recipe text.
type RecipeIngredient struct {
	ID             int64           `json:"id"`
	RecipeID       int64           `json:"recipe_id"`
	SimpleName     string          `json:"simple_name"`
	DetailedName   string          `json:"detailed_name"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
}
