package store

import (
	"testing"

	"github.com/checklistia/checklistia/internal/model"
)

func setupSessionTest(t *testing.T) (*SessionStore, *model.User) {
	t.Helper()
	db := setupTestDB(t)
	user, _ := fixtureUserAndList(t, db)
	return NewSessionStore(db), user
}

func TestSessionCreate(t *testing.T) {
	ss, user := setupSessionTest(t)

	sess, err := ss.Create(user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 { // 32 bytes hex-encoded
		t.Errorf("token length = %d, want 64", len(sess.Token))
	}
	if sess.UserID != user.ID {
		t.Errorf("user_id = %d, want %d", sess.UserID, user.ID)
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Error("expiry must be in the future")
	}
}

func TestSessionGetByToken(t *testing.T) {
	ss, user := setupSessionTest(t)

	created, _ := ss.Create(user.ID)
	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.ID != created.ID {
		t.Errorf("id = %d, want %d", sess.ID, created.ID)
	}
}

func TestSessionGetByTokenNotFound(t *testing.T) {
	ss, _ := setupSessionTest(t)

	sess, err := ss.GetByToken("nonexistent")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for nonexistent token")
	}
}

func TestSessionDelete(t *testing.T) {
	ss, user := setupSessionTest(t)

	created, _ := ss.Create(user.ID)
	if err := ss.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sess, _ := ss.GetByToken(created.Token)
	if sess != nil {
		t.Error("expected nil after delete")
	}
}
