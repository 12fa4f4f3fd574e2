package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oguarni/web-2-sub000/internal/domain"
)

const (
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidID           = "invalid_id"
	codeTitleRequired       = "title_required"
	codeSpaceNameRequired   = "space_name_required"
	codeLocationRequired    = "location_required"
	codeAmenityNameRequired = "amenity_name_required"
	codeInvalidCapacity     = "invalid_capacity"
	codeInvalidRange        = "invalid_range"
	codeInvalidStatus       = "invalid_status"
	codeInvalidRole         = "invalid_role"
	codeDurationTooLong     = "duration_too_long"
	codeStartInPast         = "start_in_past"
	codeStartTooFarAhead    = "start_too_far_ahead"
	codeInvalidTransition   = "invalid_transition"
	codeCancelled           = "reservation_cancelled"
	codeSpaceNotFound       = "space_not_found"
	codeReservationNotFound = "reservation_not_found"
	codeAmenityNotFound     = "amenity_not_found"
	codeUserNotFound        = "user_not_found"
	codeForbidden           = "forbidden"
	codeSelfProtection      = "self_protection"
	codeConflict            = "conflict"
	codeDuplicateName       = "duplicate_name"
	codeSpaceInUse          = "space_in_use"
	codeUnauthorized        = "unauthorized"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// conflictResponse enumerates the overlapping reservations so the client can
// suggest alternate times.
type conflictResponse struct {
	Error     string                `json:"error"`
	Code      string                `json:"code"`
	Conflicts []reservationResponse `json:"conflicts"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

var errorCodes = map[error]struct {
	status int
	code   string
}{
	domain.ErrInvalidID:            {http.StatusBadRequest, codeInvalidID},
	domain.ErrTitleRequired:        {http.StatusBadRequest, codeTitleRequired},
	domain.ErrSpaceNameRequired:    {http.StatusBadRequest, codeSpaceNameRequired},
	domain.ErrLocationRequired:     {http.StatusBadRequest, codeLocationRequired},
	domain.ErrAmenityNameRequired:  {http.StatusBadRequest, codeAmenityNameRequired},
	domain.ErrInvalidCapacity:      {http.StatusBadRequest, codeInvalidCapacity},
	domain.ErrInvalidRange:         {http.StatusBadRequest, codeInvalidRange},
	domain.ErrInvalidStatus:        {http.StatusBadRequest, codeInvalidStatus},
	domain.ErrInvalidRole:          {http.StatusBadRequest, codeInvalidRole},
	domain.ErrDurationTooLong:      {http.StatusUnprocessableEntity, codeDurationTooLong},
	domain.ErrStartInPast:          {http.StatusUnprocessableEntity, codeStartInPast},
	domain.ErrStartTooFarAhead:     {http.StatusUnprocessableEntity, codeStartTooFarAhead},
	domain.ErrInvalidTransition:    {http.StatusUnprocessableEntity, codeInvalidTransition},
	domain.ErrReservationCancelled: {http.StatusUnprocessableEntity, codeCancelled},
	domain.ErrSpaceNotFound:        {http.StatusNotFound, codeSpaceNotFound},
	domain.ErrReservationNotFound:  {http.StatusNotFound, codeReservationNotFound},
	domain.ErrAmenityNotFound:      {http.StatusNotFound, codeAmenityNotFound},
	domain.ErrUserNotFound:         {http.StatusNotFound, codeUserNotFound},
	domain.ErrForbidden:            {http.StatusForbidden, codeForbidden},
	domain.ErrSelfProtection:       {http.StatusForbidden, codeSelfProtection},
	domain.ErrDuplicateName:        {http.StatusConflict, codeDuplicateName},
	domain.ErrSpaceInUse:           {http.StatusConflict, codeSpaceInUse},
}

// writeDomainError maps a service error onto the wire taxonomy. Unknown errors
// become opaque 500s.
func writeDomainError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, conflictResponse{
			Error:     conflict.Error(),
			Code:      codeConflict,
			Conflicts: toReservationResponses(conflict.Conflicts),
		})
		return
	}

	for sentinel, m := range errorCodes {
		if errors.Is(err, sentinel) {
			writeError(w, m.status, m.code, sentinel.Error())
			return
		}
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
