package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/checklistia/checklistia/internal/auth"
	"github.com/checklistia/checklistia/internal/match"
	"github.com/checklistia/checklistia/internal/model"
	"github.com/checklistia/checklistia/internal/push"
	"github.com/checklistia/checklistia/internal/store"
	"github.com/checklistia/checklistia/internal/websocket"
)

type ShareHandler struct {
	shareStore *store.ShareStore
	itemStore  *store.ItemStore
	userStore  *store.UserStore
	hub        *websocket.Hub
	notifier   *push.Notifier
	logger     *slog.Logger
}

func NewShareHandler(ss *store.ShareStore, is *store.ItemStore, us *store.UserStore, hub *websocket.Hub, notifier *push.Notifier, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareStore: ss,
		itemStore:  is,
		userStore:  us,
		hub:        hub,
		notifier:   notifier,
		logger:     logger,
	}
}

type createShareRequest struct {
	MarketName string `json:"market_name"`
}

// Create publishes a snapshot of the caller's active list under an
// opaque token. Later edits or a finalize do not touch the share.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := h.userStore.GetByID(auth.UserID(r.Context()))
	if err != nil || user == nil {
		h.logger.Error("share author lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create share")
		return
	}

	listID := auth.ListID(r.Context())
	items, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("share list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create share")
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "list is empty")
		return
	}

	share, err := h.shareStore.Create(listID, strings.TrimSpace(req.MarketName), user.Name, items)
	if err != nil {
		h.logger.Error("create share", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create share")
		return
	}
	writeJSON(w, http.StatusCreated, share)
}

// Get resolves a share token to the items captured at creation time.
// Public: the token is the only credential.
func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	share, ok := h.lookup(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"market_name": share.MarketName,
		"author_name": share.AuthorName,
		"created_at":  share.CreatedAt,
		"items":       share.Items,
	})
}

type mergeResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Merge copies a share's captured items into the caller's active list,
// skipping names already present. The shared items arrive unpurchased.
func (h *ShareHandler) Merge(w http.ResponseWriter, r *http.Request) {
	share, ok := h.lookup(w, r)
	if !ok {
		return
	}

	listID := auth.ListID(r.Context())
	userID := auth.UserID(r.Context())

	if share.ListID == listID {
		writeError(w, http.StatusConflict, "cannot merge a list into itself")
		return
	}

	existing, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("merge share", "token", share.Token, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to merge share")
		return
	}

	var resp mergeResponse
	matcher := match.CaseInsensitive{}
	for _, it := range share.Items {
		if dup := match.FindDuplicate(existing, it.Name, matcher); dup != nil {
			resp.Skipped++
			continue
		}
		created, err := h.itemStore.Create(listID, it.Name, it.Price, it.Details, it.RecipeName, nil, "", &userID)
		if err != nil {
			h.logger.Error("merge share item", "name", it.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to merge share")
			return
		}
		existing = append(existing, *created)
		resp.Added++
	}

	if resp.Added > 0 {
		h.hub.Broadcast(websocket.NewMessage("item", "imported", 0, listID, map[string]any{
			"added": resp.Added,
		}))
	}

	if h.notifier != nil && resp.Added > 0 {
		// Webpush sends are HTTP calls; keep them off the request path.
		go h.notifier.NotifyListMembers(share.ListID, userID, push.Payload{
			Title: "Lista importada",
			Body:  "Sua lista compartilhada foi importada por outro usuário",
			Tag:   model.NotifTypeShareMerged,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete revokes a share. Only the owning list's user may revoke it.
func (h *ShareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	share, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if share.ListID != auth.ListID(r.Context()) {
		h.logger.Warn("share revoke denied",
			"token", share.Token,
			"user_id", auth.UserID(r.Context()),
			"share_list_id", share.ListID)
		writeError(w, http.StatusForbidden, "share belongs to another list")
		return
	}

	if err := h.shareStore.Delete(share.ID); err != nil {
		h.logger.Error("delete share", "id", share.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete share")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShareHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Share, bool) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing share token")
		return nil, false
	}

	share, err := h.shareStore.GetByToken(token)
	if err != nil {
		h.logger.Error("get share", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load share")
		return nil, false
	}
	if share == nil {
		writeError(w, http.StatusNotFound, "share not found")
		return nil, false
	}
	return share, true
}
