package ai

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseError reports a generative response that does not match the
// expected schema. Responses are parsed fail-closed: a missing required
// field is an error, never a partially populated object.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("generative response schema: %s: %s", e.Field, e.Reason)
}

// RecipeDraft is a synthesized recipe before it is persisted to the
// catalog or expanded into a list.
type RecipeDraft struct {
	Name         string            `json:"name"`
	Ingredients  []IngredientDraft `json:"ingredients"`
	Instructions []string          `json:"instructions"`
	PrepTime     string            `json:"prep_time"`
	Difficulty   string            `json:"difficulty"`
	CostTier     string            `json:"cost_tier"`
	Tags         []string          `json:"tags"`
}

// IngredientDraft pairs the simplified shopping name with the detailed
// form used in the recipe text.
type IngredientDraft struct {
	SimpleName     string          `json:"simple_name"`
	DetailedName   string          `json:"detailed_name"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
}

func parseRecipe(data []byte) (*RecipeDraft, error) {
	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, &ParseError{Field: "recipe", Reason: err.Error()}
	}
	if err := validateRecipe(&draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func parseRecipeList(data []byte) ([]RecipeDraft, error) {
	var drafts []RecipeDraft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, &ParseError{Field: "recipes", Reason: err.Error()}
	}
	if len(drafts) == 0 {
		return nil, &ParseError{Field: "recipes", Reason: "empty array"}
	}
	for i := range drafts {
		if err := validateRecipe(&drafts[i]); err != nil {
			return nil, err
		}
	}
	return drafts, nil
}

func validateRecipe(draft *RecipeDraft) error {
	if draft.Name == "" {
		return &ParseError{Field: "name", Reason: "missing"}
	}
	if len(draft.Ingredients) == 0 {
		return &ParseError{Field: "ingredients", Reason: "empty"}
	}
	for i, ing := range draft.Ingredients {
		if ing.SimpleName == "" {
			return &ParseError{Field: fmt.Sprintf("ingredients[%d].simple_name", i), Reason: "missing"}
		}
	}
	if len(draft.Instructions) == 0 {
		return &ParseError{Field: "instructions", Reason: "empty"}
	}
	return nil
}

type categoryAssignment struct {
	ItemName string `json:"item_name"`
	Category string `json:"category"`
}

func parseCategories(data []byte) ([]categoryAssignment, error) {
	var assignments []categoryAssignment
	if err := json.Unmarshal(data, &assignments); err != nil {
		return nil, &ParseError{Field: "categories", Reason: err.Error()}
	}
	for i, a := range assignments {
		if a.ItemName == "" {
			return nil, &ParseError{Field: fmt.Sprintf("categories[%d].item_name", i), Reason: "missing"}
		}
	}
	return assignments, nil
}
