// AngelaMos | 2026
// handler.go

package job

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/categories", h.Categories)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	j, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "job")
		return
	}

	core.OK(w, ToResponse(j))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	cascade, err := h.service.Delete(r.Context(), id)
	if err != nil {
		core.Fail(w, err, "job")
		return
	}

	core.OK(w, cascade)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.service.Categories())
}
