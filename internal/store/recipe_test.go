package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/model"
)

func fixtureRecipe(userID int64) *model.Recipe {
	return &model.Recipe{
		Name:         "Bolo de Cenoura",
		Instructions: []string{"Bata as cenouras", "Asse por 40 minutos"},
		PrepTime:     "50 minutos",
		Difficulty:   "fácil",
		CostTier:     "barato",
		Tags:         []string{"doce"},
		Ingredients: []model.RecipeIngredient{
			{SimpleName: "Cenoura", DetailedName: "3 cenouras médias", EstimatedPrice: decimal.RequireFromString("4.50")},
			{SimpleName: "Farinha", DetailedName: "2 xícaras de farinha", EstimatedPrice: decimal.RequireFromString("6.00")},
		},
		CreatedBy: &userID,
	}
}

func TestRecipeCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	user, _ := fixtureUserAndList(t, db)
	rs := NewRecipeStore(db)

	created, err := rs.Create(fixtureRecipe(user.ID))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	recipe, err := rs.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if recipe == nil {
		t.Fatal("expected recipe, got nil")
	}
	if recipe.Name != "Bolo de Cenoura" {
		t.Errorf("name = %q", recipe.Name)
	}
	if len(recipe.Instructions) != 2 {
		t.Errorf("instructions = %d, want 2", len(recipe.Instructions))
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("ingredients = %d, want 2", len(recipe.Ingredients))
	}
	if got := recipe.Ingredients[0].EstimatedPrice.String(); got != "4.5" {
		t.Errorf("ingredient price = %s, want 4.5", got)
	}
	if len(recipe.Tags) != 1 || recipe.Tags[0] != "doce" {
		t.Errorf("tags = %v", recipe.Tags)
	}
}

func TestRecipeListOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	user, _ := fixtureUserAndList(t, db)
	rs := NewRecipeStore(db)

	first := fixtureRecipe(user.ID)
	first.Name = "Feijoada"
	second := fixtureRecipe(user.ID)
	second.Name = "Arroz Carreteiro"

	rs.Create(first)
	rs.Create(second)

	recipes, err := rs.List()
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("recipes = %d, want 2", len(recipes))
	}
	if recipes[0].Name != "Arroz Carreteiro" || recipes[1].Name != "Feijoada" {
		t.Errorf("order = [%q, %q], want alphabetical", recipes[0].Name, recipes[1].Name)
	}
	// The list view omits ingredients.
	if len(recipes[0].Ingredients) != 0 {
		t.Errorf("list view ingredients = %d, want 0", len(recipes[0].Ingredients))
	}
}

func TestRecipeDelete(t *testing.T) {
	db := setupTestDB(t)
	user, _ := fixtureUserAndList(t, db)
	rs := NewRecipeStore(db)

	created, _ := rs.Create(fixtureRecipe(user.ID))
	if err := rs.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := rs.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
