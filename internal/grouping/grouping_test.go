package grouping

import (
	"testing"

	"github.com/checklistia/checklistia/internal/model"
)

func item(id int64, name, recipe, responsible string, purchased bool) model.ShoppingItem {
	return model.ShoppingItem{
		ID:              id,
		Name:            name,
		RecipeName:      recipe,
		ResponsibleName: responsible,
		IsPurchased:     purchased,
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []string{"recipe", "aisle", "responsible"} {
		if !ValidMode(m) {
			t.Errorf("ValidMode(%q) = false, want true", m)
		}
	}
	for _, m := range []string{"", "market", "Recipe"} {
		if ValidMode(m) {
			t.Errorf("ValidMode(%q) = true, want false", m)
		}
	}
}

func TestGroupItemsEmptyInput(t *testing.T) {
	groups := GroupItems(nil, ModeRecipe, nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestGroupItemsRecipeMode(t *testing.T) {
	items := []model.ShoppingItem{
		item(1, "Arroz", "Feijoada", "", false),
		item(2, "Leite", "", "", false),
		item(3, "Feijão", "Feijoada", "", false),
		item(4, "Farinha", "Bolo de Cenoura", "", false),
	}

	groups := GroupItems(items, ModeRecipe, nil)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	// Sorted lexicographically by label.
	wantLabels := []string{"Outros Itens", "Receita: Bolo de Cenoura", "Receita: Feijoada"}
	for i, want := range wantLabels {
		if groups[i].Label != want {
			t.Errorf("group[%d].Label = %q, want %q", i, groups[i].Label, want)
		}
	}

	for _, g := range groups {
		if g.Label == "Receita: Feijoada" && len(g.Items) != 2 {
			t.Errorf("Feijoada group has %d items, want 2", len(g.Items))
		}
	}
}

func TestGroupItemsEveryItemInExactlyOneGroup(t *testing.T) {
	items := []model.ShoppingItem{
		item(1, "Arroz", "Feijoada", "Ana", false),
		item(2, "Leite", "", "", true),
		item(3, "Detergente", "", "Bruno", false),
	}

	for _, mode := range []Mode{ModeRecipe, ModeAisle, ModeResponsible} {
		groups := GroupItems(items, mode, map[int64]string{1: "Mercearia"})
		seen := make(map[int64]int)
		for _, g := range groups {
			for _, it := range g.Items {
				seen[it.ID]++
			}
		}
		if len(seen) != len(items) {
			t.Errorf("mode %s: %d distinct items grouped, want %d", mode, len(seen), len(items))
		}
		for id, n := range seen {
			if n != 1 {
				t.Errorf("mode %s: item %d appears %d times", mode, id, n)
			}
		}
	}
}

func TestGroupItemsAisleMode(t *testing.T) {
	items := []model.ShoppingItem{
		item(1, "Leite", "", "", false),
		item(2, "Coisa Estranha", "", "", false),
		item(3, "Detergente", "", "", false),
	}
	aisles := map[int64]string{
		1: "Laticínios",
		2: "Outros",
		3: "Limpeza",
	}

	groups := GroupItems(items, ModeAisle, aisles)
	wantLabels := []string{"Laticínios", "Limpeza", "❓ Outros"}
	if len(groups) != len(wantLabels) {
		t.Fatalf("expected %d groups, got %d", len(wantLabels), len(groups))
	}
	for i, want := range wantLabels {
		if groups[i].Label != want {
			t.Errorf("group[%d].Label = %q, want %q", i, groups[i].Label, want)
		}
	}
}

func TestGroupItemsAisleModeMissingAssignment(t *testing.T) {
	items := []model.ShoppingItem{item(7, "Novidade", "", "", false)}

	groups := GroupItems(items, ModeAisle, nil)
	if len(groups) != 1 || groups[0].Label != LabelNoAisle {
		t.Fatalf("expected single %q group, got %+v", LabelNoAisle, groups)
	}
}

func TestGroupItemsResponsibleMode(t *testing.T) {
	items := []model.ShoppingItem{
		item(1, "Arroz", "", "Ana", false),
		item(2, "Leite", "", "", false),
	}

	groups := GroupItems(items, ModeResponsible, nil)
	wantLabels := []string{"Não Atribuído", "Responsável: Ana"}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for i, want := range wantLabels {
		if groups[i].Label != want {
			t.Errorf("group[%d].Label = %q, want %q", i, groups[i].Label, want)
		}
	}
}

func TestGroupItemsPurchasedSortLast(t *testing.T) {
	items := []model.ShoppingItem{
		item(1, "Arroz", "", "", true),
		item(2, "Leite", "", "", false),
		item(3, "Feijão", "", "", true),
		item(4, "Café", "", "", false),
	}

	groups := GroupItems(items, ModeRecipe, nil)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	wantOrder := []int64{2, 4, 1, 3}
	for i, want := range wantOrder {
		if groups[0].Items[i].ID != want {
			t.Errorf("items[%d].ID = %d, want %d", i, groups[0].Items[i].ID, want)
		}
	}
}
