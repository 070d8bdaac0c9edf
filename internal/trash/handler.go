// AngelaMos | 2026
// handler.go

package trash

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/lifecycle"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/deleted", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/{kind}/{id}/restore", h.Restore)
		r.Post("/{kind}/{id}/purge", h.Purge)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.ListDeleted(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDeletedListResponse(deleted))
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.Restore(r.Context(), kind, id); err != nil {
		core.Fail(w, err, kind.String())
		return
	}

	core.OK(w, TransitionResponse{Kind: kind, ID: id, State: lifecycle.Active})
}

func (h *Handler) Purge(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathTarget(w, r)
	if !ok {
		return
	}

	if err := h.service.Purge(r.Context(), kind, id); err != nil {
		core.Fail(w, err, kind.String())
		return
	}

	core.NoContent(w)
}

func pathTarget(
	w http.ResponseWriter,
	r *http.Request,
) (lifecycle.Kind, string, bool) {
	kind, err := lifecycle.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		core.JSONError(w, err)
		return "", "", false
	}

	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return "", "", false
	}

	return kind, id, true
}
