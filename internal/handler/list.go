package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/auth"
	"github.com/checklistia/checklistia/internal/store"
	"github.com/checklistia/checklistia/internal/totals"
	"github.com/checklistia/checklistia/internal/websocket"
)

type ListHandler struct {
	listStore *store.ListStore
	itemStore *store.ItemStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewListHandler(ls *store.ListStore, is *store.ItemStore, hub *websocket.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		listStore: ls,
		itemStore: is,
		hub:       hub,
		logger:    logger,
	}
}

// Get returns the active list together with its derived totals.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	listID := auth.ListID(r.Context())

	list, err := h.listStore.GetByID(listID)
	if err != nil || list == nil {
		h.logger.Error("get list", "id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load list")
		return
	}

	items, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("get list items", "id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load list")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"list":   list,
		"items":  items,
		"totals": totals.Summarize(items, list.Budget),
	})
}

// Totals returns only the derived totals, for clients that poll cheaply.
func (h *ListHandler) Totals(w http.ResponseWriter, r *http.Request) {
	listID := auth.ListID(r.Context())

	list, err := h.listStore.GetByID(listID)
	if err != nil || list == nil {
		h.logger.Error("get list", "id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load totals")
		return
	}

	items, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("get list items", "id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load totals")
		return
	}

	writeJSON(w, http.StatusOK, totals.Summarize(items, list.Budget))
}

type budgetRequest struct {
	Budget string `json:"budget"`
}

// SetBudget sets or clears the list's budget. An empty budget clears it.
func (h *ListHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	listID := auth.ListID(r.Context())

	var budget *decimal.Decimal
	if s := strings.TrimSpace(req.Budget); s != "" {
		s = strings.ReplaceAll(s, ",", ".")
		d, err := decimal.NewFromString(s)
		if err != nil || !d.IsPositive() {
			writeError(w, http.StatusBadRequest, "budget must be a positive amount")
			return
		}
		budget = &d
	}

	list, err := h.listStore.SetBudget(listID, budget)
	if err != nil {
		h.logger.Error("set budget", "id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set budget")
		return
	}

	h.hub.Broadcast(websocket.NewMessage("list", "budget_updated", listID, listID, nil))
	writeJSON(w, http.StatusOK, list)
}
