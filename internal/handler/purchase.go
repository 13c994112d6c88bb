package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/checklistia/checklistia/internal/aisle"
	"github.com/checklistia/checklistia/internal/auth"
	"github.com/checklistia/checklistia/internal/model"
	"github.com/checklistia/checklistia/internal/push"
	"github.com/checklistia/checklistia/internal/store"
	"github.com/checklistia/checklistia/internal/websocket"
)

type PurchaseHandler struct {
	purchaseStore *store.PurchaseStore
	itemStore     *store.ItemStore
	userStore     *store.UserStore
	assigner      *aisle.Assigner
	hub           *websocket.Hub
	notifier      *push.Notifier
	logger        *slog.Logger
}

func NewPurchaseHandler(ps *store.PurchaseStore, is *store.ItemStore, us *store.UserStore, assigner *aisle.Assigner, hub *websocket.Hub, notifier *push.Notifier, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseStore: ps,
		itemStore:     is,
		userStore:     us,
		assigner:      assigner,
		hub:           hub,
		notifier:      notifier,
		logger:        logger,
	}
}

type finalizeRequest struct {
	MarketName string `json:"market_name"`
}

// Finalize snapshots the active list into a purchase record, then clears
// the list. Only purchased items make it into the snapshot total; every
// line is recorded so later price lookups see unpurchased entries too.
func (h *PurchaseHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.MarketName = strings.TrimSpace(req.MarketName)
	if req.MarketName == "" {
		writeError(w, http.StatusBadRequest, "market_name is required")
		return
	}

	listID := auth.ListID(r.Context())
	userID := auth.UserID(r.Context())

	items, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("finalize list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to finalize list")
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "list is empty")
		return
	}

	record, err := h.purchaseStore.Create(listID, userID, req.MarketName, items)
	if err != nil {
		h.logger.Error("create purchase", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to finalize list")
		return
	}

	if _, err := h.itemStore.Clear(listID); err != nil {
		h.logger.Error("clear list after finalize", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear list")
		return
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	h.assigner.ForgetList(ids)

	h.hub.Broadcast(websocket.NewMessage("purchase", "finalized", record.ID, listID, nil))

	if h.notifier != nil {
		// Webpush sends are HTTP calls; keep them off the request path.
		go h.notifier.NotifyListMembers(listID, userID, push.Payload{
			Title: "Compra finalizada",
			Body:  "Lista finalizada em " + req.MarketName + " por " + model.FormatBRL(record.Total),
			Tag:   model.NotifTypeListFinalized,
		})
	}

	writeJSON(w, http.StatusCreated, record)
}

// Discard clears the active list without writing a purchase record.
func (h *PurchaseHandler) Discard(w http.ResponseWriter, r *http.Request) {
	listID := auth.ListID(r.Context())

	items, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("discard list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to discard list")
		return
	}

	cleared, err := h.itemStore.Clear(listID)
	if err != nil {
		h.logger.Error("discard list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to discard list")
		return
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	h.assigner.ForgetList(ids)

	h.hub.Broadcast(websocket.NewMessage("list", "cleared", listID, listID, nil))
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": cleared})
}

// List returns the caller's purchase records, newest first, with items.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.purchaseStore.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list purchases", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list purchases")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedPurchase(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedPurchase(w, r)
	if !ok {
		return
	}

	if err := h.purchaseStore.Delete(record.ID); err != nil {
		h.logger.Error("delete purchase", "id", record.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete purchase")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type repeatResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Repeat copies a past purchase's lines back onto the active list as
// unpurchased items, skipping names already present.
func (h *PurchaseHandler) Repeat(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedPurchase(w, r)
	if !ok {
		return
	}

	listID := auth.ListID(r.Context())
	userID := auth.UserID(r.Context())

	existing, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("repeat purchase", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to repeat purchase")
		return
	}

	present := make(map[string]bool, len(existing))
	for _, it := range existing {
		present[strings.ToLower(strings.TrimSpace(it.Name))] = true
	}

	var resp repeatResponse
	for _, line := range record.Items {
		key := strings.ToLower(strings.TrimSpace(line.Name))
		if present[key] {
			resp.Skipped++
			continue
		}
		if _, err := h.itemStore.Create(listID, line.Name, line.Price, line.Details, "", nil, "", &userID); err != nil {
			h.logger.Error("repeat purchase item", "name", line.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to repeat purchase")
			return
		}
		present[key] = true
		resp.Added++
	}

	if resp.Added > 0 {
		h.hub.Broadcast(websocket.NewMessage("item", "imported", 0, listID, map[string]any{
			"added": resp.Added,
		}))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PurchaseHandler) ownedPurchase(w http.ResponseWriter, r *http.Request) (*model.PurchaseRecord, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid purchase ID")
		return nil, false
	}

	record, err := h.purchaseStore.GetByID(id)
	if err != nil {
		h.logger.Error("get purchase", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load purchase")
		return nil, false
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "purchase not found")
		return nil, false
	}

	if record.UserID != auth.UserID(r.Context()) {
		h.logger.Warn("purchase access denied",
			"purchase_id", id,
			"user_id", auth.UserID(r.Context()),
			"owner_id", record.UserID)
		writeError(w, http.StatusForbidden, "purchase belongs to another user")
		return nil, false
	}
	return record, true
}
