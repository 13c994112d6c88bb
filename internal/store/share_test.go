package store

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestShareCreate(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)
	ss := NewShareStore(db)

	is.Create(list.ID, "Leite", decimal.RequireFromString("5.50"), "", "", nil, "", &user.ID)
	items, _ := is.ListByList(list.ID)

	share, err := ss.Create(list.ID, "Mercado Central", "Ana", items)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}
	if share.Token == "" {
		t.Error("expected non-empty token")
	}
	if share.ListID != list.ID {
		t.Errorf("list_id = %d, want %d", share.ListID, list.ID)
	}
	if share.AuthorName != "Ana" {
		t.Errorf("author = %q, want Ana", share.AuthorName)
	}
	if len(share.Items) != 1 {
		t.Fatalf("captured items = %d, want 1", len(share.Items))
	}
	if share.Items[0].Name != "Leite" {
		t.Errorf("item name = %q, want Leite", share.Items[0].Name)
	}
	if got := share.Items[0].Price.String(); got != "5.5" {
		t.Errorf("item price = %s, want 5.5", got)
	}
}

func TestShareTokensAreUnique(t *testing.T) {
	db := setupTestDB(t)
	_, list := fixtureUserAndList(t, db)
	ss := NewShareStore(db)

	a, _ := ss.Create(list.ID, "Mercado A", "Ana", nil)
	b, _ := ss.Create(list.ID, "Mercado B", "Ana", nil)
	if a.Token == b.Token {
		t.Error("two shares got the same token")
	}
}

func TestShareGetByToken(t *testing.T) {
	db := setupTestDB(t)
	_, list := fixtureUserAndList(t, db)
	ss := NewShareStore(db)

	created, _ := ss.Create(list.ID, "Mercado Central", "Ana", nil)

	share, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if share == nil || share.ID != created.ID {
		t.Fatalf("share = %+v, want id %d", share, created.ID)
	}

	missing, err := ss.GetByToken("no-such-token")
	if err != nil {
		t.Fatalf("get missing token: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestShareSurvivesListClear(t *testing.T) {
	db := setupTestDB(t)
	user, list := fixtureUserAndList(t, db)
	is := NewItemStore(db)
	ss := NewShareStore(db)

	is.Create(list.ID, "Café", decimal.RequireFromString("18.90"), "moído", "", nil, "", &user.ID)
	items, _ := is.ListByList(list.ID)

	created, err := ss.Create(list.ID, "Mercado Central", "Ana", items)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	// Finalizing or discarding a purchase clears the source list.
	if _, err := is.Clear(list.ID); err != nil {
		t.Fatalf("clear list: %v", err)
	}

	share, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if len(share.Items) != 1 {
		t.Fatalf("captured items after clear = %d, want 1", len(share.Items))
	}
	if share.Items[0].Name != "Café" {
		t.Errorf("item name = %q, want Café", share.Items[0].Name)
	}
	if share.Items[0].Details != "moído" {
		t.Errorf("item details = %q, want moído", share.Items[0].Details)
	}
}

func TestShareDelete(t *testing.T) {
	db := setupTestDB(t)
	_, list := fixtureUserAndList(t, db)
	ss := NewShareStore(db)

	created, _ := ss.Create(list.ID, "Mercado Central", "Ana", nil)
	if err := ss.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	share, _ := ss.GetByToken(created.Token)
	if share != nil {
		t.Error("expected nil after delete")
	}
}
