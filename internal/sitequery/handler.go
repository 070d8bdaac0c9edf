// AngelaMos | 2026
// handler.go

package sitequery

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

type Handler struct {
	service     *Service
	validator   *validator.Validate
	mapTilerKey string
}

func NewHandler(service *Service, mapTilerKey string) *Handler {
	return &Handler{
		service:     service,
		validator:   core.NewValidator(),
		mapTilerKey: mapTilerKey,
	}
}

// RegisterRoutes mounts the read routes. GET /sites is registered by the
// caller so it can share the /sites subtree with the site handler.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/nearby", h.Nearby)
	r.Get("/map", h.Map)
	r.Get("/map/config", h.MapConfig)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query(), h.service.DefaultRadiusKm())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	results, err := h.service.Search(r.Context(), filter)
	if err != nil {
		core.Fail(w, err, "site")
		return
	}

	core.OK(w, ToSiteResponses(results))
}

func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	var req NearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	results, err := h.service.Nearby(r.Context(), *req.Lat, *req.Lng, req.RadiusKm)
	if err != nil {
		core.Fail(w, err, "site")
		return
	}

	core.OK(w, ToSiteResponses(results))
}

func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	fc, err := h.service.MapFeatures(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(fc)
}

func (h *Handler) MapConfig(w http.ResponseWriter, r *http.Request) {
	core.OK(w, MapConfigResponse{
		MapTilerKey:     h.mapTilerKey,
		DefaultRadiusKm: h.service.DefaultRadiusKm(),
	})
}
