package push

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/checklistia/checklistia/internal/model"
	"github.com/checklistia/checklistia/internal/store"
)

type sender interface {
	Send(ctx context.Context, sub *model.PushSubscription, payload Payload) error
}

// Notifier fans a notification out to every subscribed device of a
// list's members, pruning subscriptions the push service reports gone.
// Callers run it off the request path; failures only ever log.
type Notifier struct {
	svc       sender
	pushStore *store.PushStore
	listStore *store.ListStore
	logger    *slog.Logger
}

func NewNotifier(svc *Service, ps *store.PushStore, ls *store.ListStore, logger *slog.Logger) *Notifier {
	return &Notifier{
		svc:       svc,
		pushStore: ps,
		listStore: ls,
		logger:    logger,
	}
}

// NotifyListMembers sends the payload to every member of the list except
// the acting user (who triggered the event and needs no notification).
// Failures are logged and never bubble up to the request path.
func (n *Notifier) NotifyListMembers(listID, actorID int64, payload Payload) {
	memberIDs, err := n.listStore.MemberUserIDs(listID)
	if err != nil {
		n.logger.Warn("push: list members", "error", err, "list_id", listID)
		return
	}

	var recipients []int64
	for _, id := range memberIDs {
		if id != actorID {
			recipients = append(recipients, id)
		}
	}
	if len(recipients) == 0 {
		return
	}

	subs, err := n.pushStore.ListByUsers(recipients)
	if err != nil {
		n.logger.Warn("push: list subscriptions", "error", err, "list_id", listID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := range subs {
		err := n.svc.Send(ctx, &subs[i], payload)
		if errors.Is(err, ErrExpired) {
			if err := n.pushStore.DeleteByEndpoint(subs[i].Endpoint); err != nil {
				n.logger.Warn("push: prune expired subscription", "error", err)
			}
			continue
		}
		if err != nil {
			n.logger.Warn("push: send", "error", err, "subscription_id", subs[i].ID)
		}
	}
}
