package aisle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/checklistia/checklistia/internal/model"
)

// Categorizer buckets a batch of item names into the aisle taxonomy.
// Implemented by the generative-AI client; nil means offline-only.
type Categorizer interface {
	CategorizeItems(ctx context.Context, names []string) (map[string]string, error)
}

// Assigner holds the side map from item id to aisle category. Assignments
// are ephemeral: they are never written to the item itself and are dropped
// when the item leaves the list.
type Assigner struct {
	mu          sync.RWMutex
	assignments map[int64]string
	categorizer Categorizer
	logger      *slog.Logger
}

func NewAssigner(c Categorizer, logger *slog.Logger) *Assigner {
	return &Assigner{
		assignments: make(map[int64]string),
		categorizer: c,
		logger:      logger,
	}
}

// Snapshot returns a copy of the current assignments for the given items.
func (a *Assigner) Snapshot(items []model.ShoppingItem) map[int64]string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[int64]string, len(items))
	for _, item := range items {
		if cat, ok := a.assignments[item.ID]; ok {
			out[item.ID] = cat
		}
	}
	return out
}

// Assign categorizes every item that has no assignment yet and caches the
// result. The generative categorizer is tried first for the whole batch;
// on failure (or when none is configured) the keyword fallback runs per
// item. The returned map covers all given items.
func (a *Assigner) Assign(ctx context.Context, items []model.ShoppingItem) map[int64]string {
	a.mu.RLock()
	var pending []model.ShoppingItem
	for _, item := range items {
		if _, ok := a.assignments[item.ID]; !ok {
			pending = append(pending, item)
		}
	}
	a.mu.RUnlock()

	if len(pending) > 0 {
		byName := a.categorizeBatch(ctx, pending)

		a.mu.Lock()
		for _, item := range pending {
			cat := byName[item.Name]
			if !Valid(cat) {
				cat = Outros
			}
			a.assignments[item.ID] = cat
		}
		a.mu.Unlock()
	}

	return a.Snapshot(items)
}

// Forget drops the assignment for an item (called on delete and on edits
// that rename the item, since the category was derived from the old name).
func (a *Assigner) Forget(itemID int64) {
	a.mu.Lock()
	delete(a.assignments, itemID)
	a.mu.Unlock()
}

// ForgetList drops assignments for all given item ids (list cleared).
func (a *Assigner) ForgetList(itemIDs []int64) {
	a.mu.Lock()
	for _, id := range itemIDs {
		delete(a.assignments, id)
	}
	a.mu.Unlock()
}

func (a *Assigner) categorizeBatch(ctx context.Context, items []model.ShoppingItem) map[string]string {
	if a.categorizer != nil {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		byName, err := a.categorizer.CategorizeItems(ctx, names)
		if err == nil {
			return byName
		}
		a.logger.Warn("generative categorization failed, using keyword fallback", "error", err, "items", len(items))
	}

	byName := make(map[string]string, len(items))
	for _, item := range items {
		byName[item.Name] = Categorize(item.Name)
	}
	return byName
}
