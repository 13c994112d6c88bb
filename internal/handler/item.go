package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/aisle"
	"github.com/checklistia/checklistia/internal/auth"
	"github.com/checklistia/checklistia/internal/grouping"
	"github.com/checklistia/checklistia/internal/match"
	"github.com/checklistia/checklistia/internal/model"
	"github.com/checklistia/checklistia/internal/pricing"
	"github.com/checklistia/checklistia/internal/store"
	"github.com/checklistia/checklistia/internal/websocket"
)

type ItemHandler struct {
	itemStore     *store.ItemStore
	listStore     *store.ListStore
	purchaseStore *store.PurchaseStore
	userStore     *store.UserStore
	assigner      *aisle.Assigner
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewItemHandler(is *store.ItemStore, ls *store.ListStore, ps *store.PurchaseStore, us *store.UserStore, assigner *aisle.Assigner, hub *websocket.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemStore:     is,
		listStore:     ls,
		purchaseStore: ps,
		userStore:     us,
		assigner:      assigner,
		hub:           hub,
		logger:        logger,
	}
}

type itemRequest struct {
	Name           string `json:"name"`
	Price          string `json:"price"`
	Details        string `json:"details"`
	RecipeName     string `json:"recipe_name"`
	ResponsibleID  *int64 `json:"responsible_id"`
	AllowDuplicate bool   `json:"allow_duplicate"`
}

// parsePrice accepts an empty string as "no price yet" and rejects
// negative values. Stored prices are never negative.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	// Accept "12,50" as well as "12.50".
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegativePrice
	}
	return d, nil
}

type priceError string

func (e priceError) Error() string { return string(e) }

const errNegativePrice = priceError("price cannot be negative")

// List returns the active list's items in insertion order.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.ListByList(auth.ListID(r.Context()))
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	listID := auth.ListID(r.Context())
	userID := auth.UserID(r.Context())

	if !req.AllowDuplicate {
		existing, err := h.itemStore.ListByList(listID)
		if err != nil {
			h.logger.Error("duplicate check", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create item")
			return
		}
		if dup := match.FindDuplicate(existing, req.Name, match.CaseInsensitive{}); dup != nil {
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":         "duplicate_item",
				"message":       "item already on the list",
				"existing_item": dup,
			})
			return
		}
	}

	responsibleName, ok := h.resolveResponsible(w, req.ResponsibleID)
	if !ok {
		return
	}

	item, err := h.itemStore.Create(listID, req.Name, price, req.Details, req.RecipeName, req.ResponsibleID, responsibleName, &userID)
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.hub.Broadcast(websocket.NewMessage("item", "created", item.ID, listID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	responsibleName, ok := h.resolveResponsible(w, req.ResponsibleID)
	if !ok {
		return
	}

	updated, err := h.itemStore.Update(item.ID, req.Name, price, req.Details, req.RecipeName, req.ResponsibleID, responsibleName)
	if err != nil {
		h.logger.Error("update item", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	// The name may have changed, so any cached aisle for this item is stale.
	h.assigner.Forget(item.ID)

	h.hub.Broadcast(websocket.NewMessage("item", "updated", item.ID, item.ListID, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	if err := h.itemStore.Delete(item.ID); err != nil {
		h.logger.Error("delete item", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.assigner.Forget(item.ID)
	h.hub.Broadcast(websocket.NewMessage("item", "deleted", item.ID, item.ListID, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Toggle flips an item's purchased flag. Items without a price cannot be
// marked purchased; unmarking is always allowed.
func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	if !item.IsPurchased && !item.HasPrice() {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   "price_required",
			"message": "informe o preço antes de marcar como comprado",
		})
		return
	}

	updated, err := h.itemStore.TogglePurchased(item.ID)
	if err != nil {
		h.logger.Error("toggle item", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle item")
		return
	}

	h.hub.Broadcast(websocket.NewMessage("item", "toggled", item.ID, item.ListID, map[string]any{
		"is_purchased": updated.IsPurchased,
	}))
	writeJSON(w, http.StatusOK, updated)
}

type importRequest struct {
	Items          []itemRequest `json:"items"`
	RecipeName     string        `json:"recipe_name"`
	SkipDuplicates bool          `json:"skip_duplicates"`
}

type importResponse struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Names   []string `json:"skipped_names,omitempty"`
}

// Import adds a batch of items in one request. With skip_duplicates set,
// names already on the list are counted and skipped instead of rejected.
func (h *ItemHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "no items to import")
		return
	}

	listID := auth.ListID(r.Context())
	userID := auth.UserID(r.Context())

	existing, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("import list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to import items")
		return
	}

	var resp importResponse
	matcher := match.CaseInsensitive{}
	for _, in := range req.Items {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		if req.SkipDuplicates {
			if dup := match.FindDuplicate(existing, name, matcher); dup != nil {
				resp.Skipped++
				resp.Names = append(resp.Names, name)
				continue
			}
		}

		price, err := parsePrice(in.Price)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid price for "+name)
			return
		}

		recipeName := in.RecipeName
		if recipeName == "" {
			recipeName = req.RecipeName
		}

		item, err := h.itemStore.Create(listID, name, price, in.Details, recipeName, nil, "", &userID)
		if err != nil {
			h.logger.Error("import item", "name", name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to import items")
			return
		}
		existing = append(existing, *item)
		resp.Added++
	}

	if resp.Added > 0 {
		h.hub.Broadcast(websocket.NewMessage("item", "imported", 0, listID, map[string]any{
			"added": resp.Added,
		}))
	}
	writeJSON(w, http.StatusOK, resp)
}

type deleteRecipeRequest struct {
	RecipeName string `json:"recipe_name"`
}

// DeleteRecipeGroup removes every item tagged with the given recipe name.
func (h *ItemHandler) DeleteRecipeGroup(w http.ResponseWriter, r *http.Request) {
	var req deleteRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.RecipeName) == "" {
		writeError(w, http.StatusBadRequest, "recipe_name is required")
		return
	}

	listID := auth.ListID(r.Context())

	items, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("delete recipe group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe items")
		return
	}
	var ids []int64
	for _, it := range items {
		if it.RecipeName == req.RecipeName {
			ids = append(ids, it.ID)
		}
	}

	deleted, err := h.itemStore.DeleteByRecipe(listID, req.RecipeName)
	if err != nil {
		h.logger.Error("delete recipe group", "recipe", req.RecipeName, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe items")
		return
	}

	h.assigner.ForgetList(ids)
	if deleted > 0 {
		h.hub.Broadcast(websocket.NewMessage("item", "recipe_deleted", 0, listID, map[string]any{
			"recipe_name": req.RecipeName,
			"deleted":     deleted,
		}))
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// Groups returns the list bucketed under the requested mode. Aisle mode
// runs categorization for items not yet assigned; the other modes only
// read tags already on the items.
func (h *ItemHandler) Groups(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = string(grouping.ModeRecipe)
	}
	if !grouping.ValidMode(mode) {
		writeError(w, http.StatusBadRequest, "invalid grouping mode")
		return
	}

	items, err := h.itemStore.ListByList(auth.ListID(r.Context()))
	if err != nil {
		h.logger.Error("group items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to group items")
		return
	}

	var aisles map[int64]string
	if grouping.Mode(mode) == grouping.ModeAisle {
		aisles = h.assigner.Assign(r.Context(), items)
	}

	groups := grouping.GroupItems(items, grouping.Mode(mode), aisles)
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":   mode,
		"groups": groups,
	})
}

// History returns past purchase prices for an item's name, newest first,
// with a comparison of the current price against the most recent record.
func (h *ItemHandler) History(w http.ResponseWriter, r *http.Request) {
	item, ok := h.ownedItem(w, r)
	if !ok {
		return
	}

	records, err := h.purchaseStore.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("price history", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load price history")
		return
	}

	entries := pricing.Lookup(item.Name, records, match.CaseInsensitive{})

	// No comparison without both sides: a history and an entered price.
	comparison := pricing.ComparisonNoHistory
	deltaPct := 0
	if len(entries) > 0 && item.HasPrice() {
		comparison, deltaPct = pricing.Compare(item.CalculatedPrice, entries[0].Price)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries":    entries,
		"comparison": comparison,
		"delta_pct":  deltaPct,
	})
}

// ownedItem loads the path item and enforces that it belongs to the
// caller's active list. Access denials are logged, never silent.
func (h *ItemHandler) ownedItem(w http.ResponseWriter, r *http.Request) (*model.ShoppingItem, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return nil, false
	}

	item, err := h.itemStore.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load item")
		return nil, false
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return nil, false
	}

	if item.ListID != auth.ListID(r.Context()) {
		h.logger.Warn("item access denied",
			"item_id", id,
			"user_id", auth.UserID(r.Context()),
			"item_list_id", item.ListID)
		writeError(w, http.StatusForbidden, "item belongs to another list")
		return nil, false
	}
	return item, true
}

// resolveResponsible looks up the display name for an assignee, if any.
// Reports false after writing an error response.
func (h *ItemHandler) resolveResponsible(w http.ResponseWriter, id *int64) (string, bool) {
	if id == nil {
		return "", true
	}
	u, err := h.userStore.GetByID(*id)
	if err != nil {
		h.logger.Error("resolve responsible", "id", *id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve responsible")
		return "", false
	}
	if u == nil {
		writeError(w, http.StatusBadRequest, "responsible user not found")
		return "", false
	}
	return u.Name, true
}
