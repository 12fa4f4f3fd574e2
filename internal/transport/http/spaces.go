package http

import (
	"context"
	"net/http"
	"time"

	"github.com/oguarni/web-2-sub000/internal/app"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

type SpaceAPI interface {
	Create(ctx context.Context, actor domain.Actor, in app.CreateSpaceInput) (domain.Space, error)
	Update(ctx context.Context, actor domain.Actor, id int64, in app.UpdateSpaceInput) (domain.Space, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	Get(ctx context.Context, actor domain.Actor, id int64) (domain.Space, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Space, error)
	SetAmenities(ctx context.Context, actor domain.Actor, spaceID int64, amenityIDs []int64) ([]domain.Amenity, error)
	Amenities(ctx context.Context, actor domain.Actor, spaceID int64) ([]domain.Amenity, error)
}

type spaceHandler struct {
	svc SpaceAPI
}

type spaceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
	Equipment string    `json:"equipment"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSpaceResponse(s domain.Space) spaceResponse {
	return spaceResponse{
		ID:        s.ID,
		Name:      s.Name,
		Capacity:  s.Capacity,
		Location:  s.Location,
		Equipment: s.Equipment,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type amenityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toAmenityResponses(in []domain.Amenity) []amenityResponse {
	out := make([]amenityResponse, 0, len(in))
	for _, a := range in {
		out = append(out, amenityResponse{ID: a.ID, Name: a.Name, Description: a.Description})
	}
	return out
}

type createSpaceRequest struct {
	Name      string `json:"name" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
	Location  string `json:"location" validate:"required"`
	Equipment string `json:"equipment"`
	Active    *bool  `json:"active"`
}

func (h *spaceHandler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}

	var req createSpaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return
	}

	space, err := h.svc.Create(r.Context(), actor, app.CreateSpaceInput{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Location:  req.Location,
		Equipment: req.Equipment,
		Active:    req.Active,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSpaceResponse(space))
}

func (h *spaceHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}

	spaces, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]spaceResponse, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, toSpaceResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *spaceHandler) get(w http.ResponseWriter, r *http.Request) {
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

	space, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpaceResponse(space))
}

type updateSpaceRequest struct {
	Name      *string `json:"name"`
	Capacity  *int    `json:"capacity"`
	Location  *string `json:"location"`
	Equipment *string `json:"equipment"`
	Active    *bool   `json:"active"`
}

func (h *spaceHandler) update(w http.ResponseWriter, r *http.Request) {
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

	var req updateSpaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	space, err := h.svc.Update(r.Context(), actor, id, app.UpdateSpaceInput{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Location:  req.Location,
		Equipment: req.Equipment,
		Active:    req.Active,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpaceResponse(space))
}

func (h *spaceHandler) delete(w http.ResponseWriter, r *http.Request) {
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

type setAmenitiesRequest struct {
	AmenityIDs []int64 `json:"amenityIds" validate:"required"`
}

func (h *spaceHandler) setAmenities(w http.ResponseWriter, r *http.Request) {
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

	var req setAmenitiesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	amenities, err := h.svc.SetAmenities(r.Context(), actor, id, req.AmenityIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAmenityResponses(amenities))
}

func (h *spaceHandler) amenities(w http.ResponseWriter, r *http.Request) {
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

	amenities, err := h.svc.Amenities(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAmenityResponses(amenities))
}
