package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/model"
)

func TestListSetBudget(t *testing.T) {
	db := setupTestDB(t)
	_, list := fixtureUserAndList(t, db)
	ls := NewListStore(db)

	budget := decimal.RequireFromString("350.00")
	updated, err := ls.SetBudget(list.ID, &budget)
	if err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if updated.Budget == nil || updated.Budget.String() != "350" {
		t.Errorf("budget = %v, want 350", updated.Budget)
	}

	// Clearing.
	updated, err = ls.SetBudget(list.ID, nil)
	if err != nil {
		t.Fatalf("clear budget: %v", err)
	}
	if updated.Budget != nil {
		t.Errorf("budget = %v, want nil", updated.Budget)
	}
}

func TestListGetActiveForUserCreatesOnFirstUse(t *testing.T) {
	db := setupTestDB(t)
	ls := NewListStore(db)

	user, err := NewUserStore(db).Create("bruno@example.com", "Bruno", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	list, err := ls.GetActiveForUser(user.ID)
	if err != nil {
		t.Fatalf("get active list: %v", err)
	}
	if list == nil || list.Name != "Minha Lista" {
		t.Fatalf("list = %+v, want default list", list)
	}

	again, err := ls.GetActiveForUser(user.ID)
	if err != nil {
		t.Fatalf("get active list again: %v", err)
	}
	if again.ID != list.ID {
		t.Errorf("second call created a new list: %d != %d", again.ID, list.ID)
	}
}

func TestListMembers(t *testing.T) {
	db := setupTestDB(t)
	owner, list := fixtureUserAndList(t, db)
	ls := NewListStore(db)

	guest, err := NewUserStore(db).Create("carla@example.com", "Carla", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	if _, err := ls.AddMember(list.ID, guest.ID, "member"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	for _, id := range []int64{owner.ID, guest.ID} {
		ok, err := ls.CanAccess(list.ID, id)
		if err != nil {
			t.Fatalf("can access: %v", err)
		}
		if !ok {
			t.Errorf("user %d should have access", id)
		}
	}

	ids, err := ls.MemberUserIDs(list.ID)
	if err != nil {
		t.Fatalf("member ids: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("member ids = %v, want owner and guest", ids)
	}

	if err := ls.RemoveMember(list.ID, guest.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	ok, _ := ls.CanAccess(list.ID, guest.ID)
	if ok {
		t.Error("guest should lose access after removal")
	}
}
