package auth

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{
		UserID:    7,
		ListID:    3,
		Role:      "admin",
		SessionID: 11,
	})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context")
	}
	if ac.UserID != 7 || ac.ListID != 3 || ac.SessionID != 11 {
		t.Errorf("auth context = %+v", ac)
	}

	if UserID(ctx) != 7 {
		t.Errorf("UserID = %d, want 7", UserID(ctx))
	}
	if ListID(ctx) != 3 {
		t.Errorf("ListID = %d, want 3", ListID(ctx))
	}
	if !IsAdmin(ctx) {
		t.Error("IsAdmin = false, want true")
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no auth context")
	}
	if UserID(ctx) != 0 || ListID(ctx) != 0 {
		t.Error("expected zero ids on empty context")
	}
	if IsAdmin(ctx) {
		t.Error("IsAdmin on empty context = true")
	}
}
