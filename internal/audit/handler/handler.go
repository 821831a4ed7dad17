package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rently/internal/audit"
	dErrors "rently/pkg/domain-errors"
	"rently/pkg/platform/httputil"
	"rently/pkg/requestcontext"
)

// Handler exposes the audit trail. An applicant may only read their own trail.
type Handler struct {
	publisher *audit.Publisher
	logger    *slog.Logger
}

func New(publisher *audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{publisher: publisher, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/applicants/{applicantID}/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := requestcontext.UserID(ctx)
	if callerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	applicantID := chi.URLParam(r, "applicantID")
	if applicantID != callerID {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "audit trail belongs to another applicant"))
		return
	}

	events, err := h.publisher.List(ctx, applicantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit trail lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"applicant_id", applicantID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load audit trail"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}
