package push

import (
	"context"
	"log/slog"
	"testing"

	"github.com/checklistia/checklistia/internal/database"
	"github.com/checklistia/checklistia/internal/model"
	"github.com/checklistia/checklistia/internal/store"
)

type fakeSender struct {
	sent    []string
	expired map[string]bool
}

func (f *fakeSender) Send(ctx context.Context, sub *model.PushSubscription, payload Payload) error {
	if f.expired[sub.Endpoint] {
		return ErrExpired
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

func setupNotifierTest(t *testing.T) (*fakeSender, *Notifier, *store.PushStore, *store.ListStore, *model.User, *model.User, *model.ShoppingList) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userStore := store.NewUserStore(db)
	listStore := store.NewListStore(db)
	pushStore := store.NewPushStore(db)

	ana, err := userStore.Create("ana@example.com", "Ana", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	bia, err := userStore.Create("bia@example.com", "Bia", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	list, err := listStore.Create(ana.ID, "Minha Lista")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := listStore.AddMember(list.ID, bia.ID, "member"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	fake := &fakeSender{expired: map[string]bool{}}
	n := NewNotifier(nil, pushStore, listStore, slog.Default())
	n.svc = fake
	return fake, n, pushStore, listStore, ana, bia, list
}

func TestNotifierSkipsActor(t *testing.T) {
	fake, n, pushStore, _, ana, bia, list := setupNotifierTest(t)

	pushStore.CreateSubscription(ana.ID, "https://push/ana", "p256dh", "auth", "")
	pushStore.CreateSubscription(bia.ID, "https://push/bia", "p256dh", "auth", "")

	n.NotifyListMembers(list.ID, ana.ID, Payload{Title: "Compra finalizada"})

	if len(fake.sent) != 1 || fake.sent[0] != "https://push/bia" {
		t.Errorf("sent = %v, want only bia's endpoint", fake.sent)
	}
}

func TestNotifierPrunesExpiredSubscriptions(t *testing.T) {
	fake, n, pushStore, _, ana, bia, list := setupNotifierTest(t)

	pushStore.CreateSubscription(bia.ID, "https://push/bia-old", "p256dh", "auth", "")
	pushStore.CreateSubscription(bia.ID, "https://push/bia-new", "p256dh", "auth", "")
	fake.expired["https://push/bia-old"] = true

	n.NotifyListMembers(list.ID, ana.ID, Payload{Title: "Compra finalizada"})

	subs, err := pushStore.ListByUser(bia.ID)
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("subscriptions after prune = %d, want 1", len(subs))
	}
	if subs[0].Endpoint != "https://push/bia-new" {
		t.Errorf("surviving endpoint = %q, want the new one", subs[0].Endpoint)
	}
	if len(fake.sent) != 1 || fake.sent[0] != "https://push/bia-new" {
		t.Errorf("sent = %v, want only the live endpoint", fake.sent)
	}
}
