package http

import (
	"context"
	"net/http"
	"time"

	"github.com/oguarni/web-2-sub000/internal/domain"
)

type UserAPI interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	ChangeRole(ctx context.Context, actor domain.Actor, id int64, role domain.Role) (domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type userHandler struct {
	svc UserAPI
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Login: u.Login, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func (h *userHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing actor")
		return
	}

	users, err := h.svc.List(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *userHandler) changeRole(w http.ResponseWriter, r *http.Request) {
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

	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user, err := h.svc.ChangeRole(r.Context(), actor, id, role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *userHandler) delete(w http.ResponseWriter, r *http.Request) {
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
