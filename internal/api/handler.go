package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/settings"
)

// Scanner runs one scan. *pipeline.Scanner implements it.
type Scanner interface {
	Scan(ctx context.Context, userID, url string) *model.ScanReport
}

// Handler manages API endpoints.
type Handler struct {
	scanner Scanner
	store   settings.Store
	logger  *slog.Logger
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "pagescan",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ScanRequest represents a page scan request.
type ScanRequest struct {
	URL    string `json:"url"`
	UserID string `json:"user_id"`
}

// ScanResponse carries the outgoing segments of one scan. Success is false
// when the fetch failed; Segments then hold the single error segment.
type ScanResponse struct {
	Success  bool                    `json:"success"`
	URL      string                  `json:"url"`
	FinalURL string                  `json:"final_url,omitempty"`
	Segments []model.Segment         `json:"segments"`
	Result   *model.ExtractionResult `json:"result,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody)
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	req.UserID = strings.TrimSpace(req.UserID)
	switch {
	case req.URL == "":
		writeError(w, h.logger, http.StatusBadRequest, errCodeValidation, ErrURLRequired)
		return
	case req.UserID == "":
		writeError(w, h.logger, http.StatusBadRequest, errCodeValidation, ErrUserIDRequired)
		return
	}

	scan := h.scanner.Scan(r.Context(), req.UserID, req.URL)

	writeJSON(w, h.logger, http.StatusOK, ScanResponse{
		Success:  !scan.Failed(),
		URL:      scan.URL,
		FinalURL: scan.FinalURL,
		Segments: scan.Segments,
		Result:   scan.Result,
		Error:    scan.ErrorMessage,
	})
}

// SettingsResponse is the settings of one user.
type SettingsResponse struct {
	UserID   string         `json:"user_id"`
	Settings model.Settings `json:"settings"`
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	current, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SettingsResponse{UserID: userID, Settings: current})
}

func (h *Handler) handleToggleSetting(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	field, err := model.ParseSettingField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, errCodeValidation, err)
		return
	}

	updated, err := h.store.Toggle(r.Context(), userID, field)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SettingsResponse{UserID: userID, Settings: updated})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, settings.ErrEmptyUserID) {
		writeError(w, h.logger, http.StatusBadRequest, errCodeValidation, err)
		return
	}
	h.logger.Error("settings store failed", "error", err)
	writeError(w, h.logger, http.StatusInternalServerError, errCodeInternal, errors.New("settings unavailable"))
}
