package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/checklistia/checklistia/internal/backup"
	"github.com/checklistia/checklistia/internal/store"
)

// BackupHandler exposes the backup manager to admins. All routes sit
// behind the admin middleware.
type BackupHandler struct {
	manager       *backup.Manager
	backupStore   *store.BackupStore
	settingsStore *store.SettingsStore
	logger        *slog.Logger
}

func NewBackupHandler(m *backup.Manager, bs *store.BackupStore, ss *store.SettingsStore, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{manager: m, backupStore: bs, settingsStore: ss, logger: logger}
}

func (h *BackupHandler) configured(w http.ResponseWriter) bool {
	if h.manager == nil {
		writeError(w, http.StatusServiceUnavailable, "backups are not configured")
		return false
	}
	return true
}

func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	writeJSON(w, http.StatusOK, h.manager.Status())
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	backups, err := h.backupStore.List(limit)
	if err != nil {
		h.logger.Error("list backups", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	writeJSON(w, http.StatusOK, backups)
}

func (h *BackupHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	id, err := h.manager.RunNow(r.Context())
	if err != nil {
		h.logger.Error("run backup", "error", err)
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}

	record, err := h.backupStore.GetByID(id)
	if err != nil || record == nil {
		h.logger.Error("load backup record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "backup record missing")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *BackupHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.GetBackupSettings()
	if err != nil {
		h.logger.Error("load backup settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

type backupSettingsRequest struct {
	Enabled       *bool `json:"enabled"`
	ScheduleHour  *int  `json:"schedule_hour"`
	RetentionDays *int  `json:"retention_days"`
}

// UpdateSettings changes the backup schedule. Only the fields present
// in the request are touched.
func (h *BackupHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req backupSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.ScheduleHour != nil && (*req.ScheduleHour < 0 || *req.ScheduleHour > 23) {
		writeError(w, http.StatusBadRequest, "schedule_hour must be between 0 and 23")
		return
	}
	if req.RetentionDays != nil && *req.RetentionDays <= 0 {
		writeError(w, http.StatusBadRequest, "retention_days must be positive")
		return
	}

	updates := map[string]string{}
	if req.Enabled != nil {
		updates["backup_enabled"] = strconv.FormatBool(*req.Enabled)
	}
	if req.ScheduleHour != nil {
		updates["backup_schedule_hour"] = strconv.Itoa(*req.ScheduleHour)
	}
	if req.RetentionDays != nil {
		updates["backup_retention_days"] = strconv.Itoa(*req.RetentionDays)
	}

	for key, value := range updates {
		if err := h.settingsStore.Set(key, value); err != nil {
			h.logger.Error("save backup setting", "key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	h.GetSettings(w, r)
}

// Download streams the encrypted archive for offline safekeeping.
func (h *BackupHandler) Download(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid backup ID")
		return
	}

	body, size, err := h.manager.Download(r.Context(), id)
	if err != nil {
		h.logger.Error("download backup", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to download backup")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("stream backup", "id", id, "error", err)
	}
}
