package store

import (
	"database/sql"
	"testing"

	"github.com/checklistia/checklistia/internal/database"
	"github.com/checklistia/checklistia/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixtureUserAndList creates a user with their own list and returns both.
func fixtureUserAndList(t *testing.T, db *sql.DB) (*model.User, *model.ShoppingList) {
	t.Helper()
	user, err := NewUserStore(db).Create("ana@example.com", "Ana", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	list, err := NewListStore(db).Create(user.ID, "Minha Lista")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	return user, list
}
