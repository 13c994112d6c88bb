package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/checklistia/checklistia/internal/store"
)

type OfferHandler struct {
	offerStore *store.OfferStore
	logger     *slog.Logger
}

func NewOfferHandler(os *store.OfferStore, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{offerStore: os, logger: logger}
}

// List returns offers that have not expired, newest first.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offerStore.ListActive()
	if err != nil {
		h.logger.Error("list offers", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list offers")
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

type offerRequest struct {
	ProductName string `json:"product_name"`
	Market      string `json:"market"`
	Price       string `json:"price"`
	ValidUntil  string `json:"valid_until"`
}

func (h *OfferHandler) parseOffer(w http.ResponseWriter, r *http.Request) (*offerRequest, bool) {
	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Market = strings.TrimSpace(req.Market)
	if req.ProductName == "" || req.Market == "" {
		writeError(w, http.StatusBadRequest, "product_name and market are required")
		return nil, false
	}
	return &req, true
}

func parseValidUntil(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create adds an offer to the feed. Admin only.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseOffer(w, r)
	if !ok {
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil || !price.IsPositive() {
		writeError(w, http.StatusBadRequest, "price must be a positive amount")
		return
	}

	validUntil, err := parseValidUntil(req.ValidUntil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "valid_until must be RFC 3339")
		return
	}

	offer, err := h.offerStore.Create(req.ProductName, req.Market, price, validUntil)
	if err != nil {
		h.logger.Error("create offer", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create offer")
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// Update replaces an offer. Admin only.
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offer ID")
		return
	}

	req, ok := h.parseOffer(w, r)
	if !ok {
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil || !price.IsPositive() {
		writeError(w, http.StatusBadRequest, "price must be a positive amount")
		return
	}

	validUntil, err := parseValidUntil(req.ValidUntil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "valid_until must be RFC 3339")
		return
	}

	offer, err := h.offerStore.Update(id, req.ProductName, req.Market, price, validUntil)
	if err != nil {
		h.logger.Error("update offer", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update offer")
		return
	}
	if offer == nil {
		writeError(w, http.StatusNotFound, "offer not found")
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// Delete removes an offer. Admin only.
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offer ID")
		return
	}

	if err := h.offerStore.Delete(id); err != nil {
		h.logger.Error("delete offer", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete offer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
