package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rently/internal/application"
	dErrors "rently/pkg/domain-errors"
	"rently/pkg/platform/httputil"
	"rently/pkg/requestcontext"
)

// Handler wires application endpoints to the application service.
type Handler struct {
	service *application.Service
	logger  *slog.Logger
}

func New(service *application.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts application endpoints on the router. The router is expected
// to already carry the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.handleSubmit)
	r.Get("/applications/{applicationID}", h.handleGet)
	r.Get("/listings/{listingID}/applications", h.handleListForListing)
	r.Post("/applications/{applicationID}/decision", h.handleDecide)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	applicantID := requestcontext.UserID(ctx)
	if applicantID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[application.SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app, err := h.service.Submit(ctx, applicantID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "application submission failed",
			"request_id", requestID,
			"applicant_id", applicantID,
			"listing_id", req.ListingID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, app)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := requestcontext.UserID(ctx)
	if callerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	app, err := h.service.Get(ctx, callerID, chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) handleListForListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sellerID := requestcontext.UserID(ctx)
	if sellerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	apps, err := h.service.ListForListing(ctx, sellerID, chi.URLParam(r, "listingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if apps == nil {
		apps = []*application.Application{}
	}
	httputil.WriteJSON(w, http.StatusOK, apps)
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sellerID := requestcontext.UserID(ctx)
	if sellerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[decisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var approve bool
	switch req.Decision {
	case string(application.StatusApproved):
		approve = true
	case string(application.StatusDeclined):
		approve = false
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "decision must be approved or declined"))
		return
	}

	app, err := h.service.Decide(ctx, sellerID, chi.URLParam(r, "applicationID"), approve)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, app)
}
