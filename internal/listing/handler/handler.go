package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rently/internal/listing"
	"rently/internal/screening/models"
	dErrors "rently/pkg/domain-errors"
	"rently/pkg/platform/httputil"
	"rently/pkg/requestcontext"
)

// Handler wires listing endpoints to the listing service.
type Handler struct {
	service *listing.Service
	logger  *slog.Logger
}

// New constructs a listing handler with its dependencies.
func New(service *listing.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts listing endpoints on the router. The router is expected to
// already carry the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/listings", h.handleCreate)
	r.Get("/listings/{listingID}", h.handleGet)
	r.Get("/listings", h.handleListMine)
	r.Put("/listings/{listingID}/criteria", h.handleUpdateCriteria)
}

type createListingRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Address        string `json:"address"`
	PriceCents     int64  `json:"price_cents"`
	MinCreditScore int    `json:"min_credit_score"`
	NoEvictions    bool   `json:"no_evictions"`
	NoBankruptcy   bool   `json:"no_bankruptcy"`
	NoCriminal     bool   `json:"no_criminal"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sellerID := requestcontext.UserID(ctx)
	if sellerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[createListingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, sellerID, listing.Listing{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		PriceCents:  req.PriceCents,
		Criteria: models.ScreeningCriteria{
			MinCreditScore: req.MinCreditScore,
			NoEvictions:    req.NoEvictions,
			NoBankruptcy:   req.NoBankruptcy,
			NoCriminal:     req.NoCriminal,
		},
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "listing creation failed",
			"request_id", requestID,
			"seller_id", sellerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l, err := h.service.Get(ctx, chi.URLParam(r, "listingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sellerID := requestcontext.UserID(ctx)
	if sellerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	listings, err := h.service.ListBySeller(ctx, sellerID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list listings"))
		return
	}
	if listings == nil {
		listings = []*listing.Listing{}
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func (h *Handler) handleUpdateCriteria(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sellerID := requestcontext.UserID(ctx)
	if sellerID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[listing.ScreeningCriteriaUpdate](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.UpdateCriteria(ctx, sellerID, chi.URLParam(r, "listingID"), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}
