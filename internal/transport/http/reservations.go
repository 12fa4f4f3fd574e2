package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/oguarni/web-2-sub000/internal/app"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

var validate = validator.New()

// ReservationAPI is the slice of the reservation service the handlers need.
type ReservationAPI interface {
	Create(ctx context.Context, actor domain.Actor, in app.CreateReservationInput) (domain.Reservation, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (domain.Reservation, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Reservation, error)
	Update(ctx context.Context, actor domain.Actor, id int64, in app.UpdateReservationInput) (domain.Reservation, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	ChangeStatus(ctx context.Context, actor domain.Actor, id int64, to domain.Status) (domain.Reservation, error)
	Cancel(ctx context.Context, actor domain.Actor, id int64) (domain.Reservation, error)
}

type reservationHandler struct {
	svc ReservationAPI
}

type reservationResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	SpaceID     int64     `json:"spaceId"`
	OwnerID     int64     `json:"ownerId"`
}

func toReservationResponse(res domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:          res.ID,
		Title:       res.Title,
		Description: res.Description,
		Start:       res.Start,
		End:         res.End,
		Status:      string(res.Status),
		SpaceID:     res.SpaceID,
		OwnerID:     res.OwnerID,
	}
}

func toReservationResponses(in []domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(in))
	for _, res := range in {
		out = append(out, toReservationResponse(res))
	}
	return out
}

type createReservationRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required"`
	SpaceID     int64     `json:"spaceId" validate:"required,gt=0"`
	// Accepted for wire compatibility and ignored: status is server-assigned.
	Status string `json:"status"`
}

func (h *reservationHandler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}

	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return
	}

	res, err := h.svc.Create(r.Context(), actor, app.CreateReservationInput{
		Title:       req.Title,
		Description: req.Description,
		SpaceID:     req.SpaceID,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(res))
}

func (h *reservationHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}

	reservations, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponses(reservations))
}

func (h *reservationHandler) get(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

type updateReservationRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	SpaceID     *int64     `json:"spaceId"`
	Status      *string    `json:"status"`
}

func (h *reservationHandler) update(w http.ResponseWriter, r *http.Request) {
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

	var req updateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	in := app.UpdateReservationInput{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		SpaceID:     req.SpaceID,
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		in.Status = &status
	}

	res, err := h.svc.Update(r.Context(), actor, id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (h *reservationHandler) delete(w http.ResponseWriter, r *http.Request) {
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

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *reservationHandler) changeStatus(w http.ResponseWriter, r *http.Request) {
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

	var req changeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	res, err := h.svc.ChangeStatus(r.Context(), actor, id, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (h *reservationHandler) cancel(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.svc.Cancel(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
