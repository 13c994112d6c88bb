package store

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestItemCreate(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	item, err := is.Create(list.ID, "Leite", decimal.RequireFromString("5.50"), "integral", "", nil, "", &user.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected non-zero id")
	}
	if item.Name != "Leite" {
		t.Errorf("name = %q, want Leite", item.Name)
	}
	if got := item.CalculatedPrice.String(); got != "5.5" {
		t.Errorf("price = %s, want 5.5", got)
	}
	if item.DisplayPrice != "R$ 5,50" {
		t.Errorf("display price = %q", item.DisplayPrice)
	}
	if item.IsPurchased {
		t.Error("new item must not be purchased")
	}
	if item.CreatorID == nil || *item.CreatorID != user.ID {
		t.Errorf("creator_id = %v, want %d", item.CreatorID, user.ID)
	}
}

func TestItemCreateZeroPrice(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	item, err := is.Create(list.ID, "Farinha", decimal.Zero, "", "", nil, "", &user.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.HasPrice() {
		t.Error("zero-price item should report no price")
	}
}

func TestItemListByListInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	names := []string{"Leite", "Arroz", "Feijão"}
	for _, n := range names {
		if _, err := is.Create(list.ID, n, decimal.Zero, "", "", nil, "", &user.ID); err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
	}

	items, err := is.ListByList(list.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != len(names) {
		t.Fatalf("got %d items, want %d", len(items), len(names))
	}
	for i, n := range names {
		if items[i].Name != n {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, n)
		}
	}
}

func TestItemUpdate(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	item, _ := is.Create(list.ID, "Leite", decimal.Zero, "", "", nil, "", &user.ID)

	updated, err := is.Update(item.ID, "Leite Integral", decimal.RequireFromString("6.20"), "caixa", "Bolo", &user.ID, "Ana")
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Name != "Leite Integral" {
		t.Errorf("name = %q", updated.Name)
	}
	if got := updated.CalculatedPrice.String(); got != "6.2" {
		t.Errorf("price = %s, want 6.2", got)
	}
	if updated.RecipeName != "Bolo" {
		t.Errorf("recipe = %q, want Bolo", updated.RecipeName)
	}
	if updated.ResponsibleName != "Ana" {
		t.Errorf("responsible = %q, want Ana", updated.ResponsibleName)
	}
}

func TestItemTogglePurchased(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	item, _ := is.Create(list.ID, "Leite", decimal.RequireFromString("5.50"), "", "", nil, "", &user.ID)

	toggled, err := is.TogglePurchased(item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.IsPurchased {
		t.Error("expected purchased after first toggle")
	}

	toggled, err = is.TogglePurchased(item.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if toggled.IsPurchased {
		t.Error("expected unpurchased after second toggle")
	}
}

func TestItemDelete(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	item, _ := is.Create(list.ID, "Leite", decimal.Zero, "", "", nil, "", &user.ID)
	if err := is.Delete(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := is.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestItemDeleteByRecipe(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	is.Create(list.ID, "Cenoura", decimal.Zero, "", "Bolo de Cenoura", nil, "", &user.ID)
	is.Create(list.ID, "Farinha", decimal.Zero, "", "Bolo de Cenoura", nil, "", &user.ID)
	is.Create(list.ID, "Leite", decimal.Zero, "", "", nil, "", &user.ID)

	n, err := is.DeleteByRecipe(list.ID, "Bolo de Cenoura")
	if err != nil {
		t.Fatalf("delete by recipe: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	items, _ := is.ListByList(list.ID)
	if len(items) != 1 || items[0].Name != "Leite" {
		t.Errorf("remaining items = %+v, want only Leite", items)
	}
}

func TestItemClear(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)

	is.Create(list.ID, "Leite", decimal.Zero, "", "", nil, "", &user.ID)
	is.Create(list.ID, "Arroz", decimal.Zero, "", "", nil, "", &user.ID)

	n, err := is.Clear(list.ID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared = %d, want 2", n)
	}

	items, _ := is.ListByList(list.ID)
	if len(items) != 0 {
		t.Errorf("items after clear = %d, want 0", len(items))
	}
}
