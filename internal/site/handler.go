// AngelaMos | 2026
// handler.go

package site

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/job"
	"github.com/carterperez-dev/site-atlas/internal/store"
)

type JobCreator interface {
	Create(ctx context.Context, siteID string, in job.CreateInput) (*store.Job, error)
}

type Handler struct {
	service   *Service
	jobs      JobCreator
	validator *validator.Validate
}

func NewHandler(service *Service, jobs JobCreator) *Handler {
	return &Handler{
		service:   service,
		jobs:      jobs,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /sites. search serves GET /sites.
func (h *Handler) RegisterRoutes(r chi.Router, search http.HandlerFunc) {
	r.Route("/sites", func(r chi.Router) {
		r.Get("/", search)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/jobs", h.CreateJob)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	h.create(w, r, req)
}

// CreateForCustomer serves the nested customer route, taking the owner
// from the path.
func (h *Handler) CreateForCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}
	req.CustomerID = id

	h.create(w, r, req)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req CreateRequest) {
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := core.ParseID(req.CustomerID)
	if err != nil {
		core.BadRequest(w, "customer_id must be a valid id")
		return
	}
	req.CustomerID = id

	s, err := h.service.Create(r.Context(), req.Input())
	if err != nil {
		core.Fail(w, err, "customer")
		return
	}

	core.Created(w, ToResponse(s))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "site")
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	cascade, err := h.service.Delete(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "site")
		return
	}

	core.OK(w, cascade)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req job.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	j, err := h.jobs.Create(r.Context(), id, req.Input())
	if err != nil {
		core.Fail(w, err, "site")
		return
	}

	core.Created(w, job.ToResponse(j))
}
