package http

import (
	"context"
	"net/http"

	"github.com/oguarni/web-2-sub000/internal/app"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

type AmenityAPI interface {
	Create(ctx context.Context, actor domain.Actor, in app.AmenityInput) (domain.Amenity, error)
	Update(ctx context.Context, actor domain.Actor, id int64, in app.AmenityInput) (domain.Amenity, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	List(ctx context.Context) ([]domain.Amenity, error)
}

type amenityHandler struct {
	svc AmenityAPI
}

type amenityRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *amenityHandler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}

	var req amenityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return
	}

	amenity, err := h.svc.Create(r.Context(), actor, app.AmenityInput{Name: req.Name, Description: req.Description})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, amenityResponse{ID: amenity.ID, Name: amenity.Name, Description: amenity.Description})
}

func (h *amenityHandler) list(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAmenityResponses(amenities))
}

func (h *amenityHandler) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid id")
		return
	}

	var req amenityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	amenity, err := h.svc.Update(r.Context(), actor, id, app.AmenityInput{Name: req.Name, Description: req.Description})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, amenityResponse{ID: amenity.ID, Name: amenity.Name, Description: amenity.Description})
}

func (h *amenityHandler) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
