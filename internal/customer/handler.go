// AngelaMos | 2026
// handler.go

package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /customers. createSite serves the nested
// POST /customers/{id}/sites route.
func (h *Handler) RegisterRoutes(r chi.Router, createSite http.HandlerFunc) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Rename)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/sites", h.withCustomerID(createSite))
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponses(customers))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	c, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		core.Fail(w, err, "customer")
		return
	}

	core.Created(w, ToResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "customer")
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	c, err := h.service.Rename(r.Context(), id, req.Name)
	if err != nil {
		core.Fail(w, err, "customer")
		return
	}

	core.OK(w, ToResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	cascade, err := h.service.Delete(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "customer")
		return
	}

	core.OK(w, cascade)
}

func (h *Handler) decodeName(
	w http.ResponseWriter,
	r *http.Request,
) (NameRequest, bool) {
	var req NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}

func (h *Handler) withCustomerID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := core.ParseID(chi.URLParam(r, "id")); err != nil {
			core.JSONError(w, err)
			return
		}
		next(w, r)
	}
}
