package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/oguarni/web-2-sub000/internal/app"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID int64, role domain.Role) string {
	t.Helper()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func testRouter(t *testing.T, cfg RouterConfig) http.Handler {
	t.Helper()
	cfg.JWTSecret = testSecret
	cfg.CORSOrigins = []string{"*"}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg.Log = log
	return NewRouter(cfg)
}

func doRequest(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type fakeReservationAPI struct {
	created      domain.Reservation
	createErr    error
	createdInput app.CreateReservationInput
	createdActor domain.Actor

	statusChanged domain.Status
}

func (f *fakeReservationAPI) Create(_ context.Context, actor domain.Actor, in app.CreateReservationInput) (domain.Reservation, error) {
	f.createdActor = actor
	f.createdInput = in
	return f.created, f.createErr
}

func (f *fakeReservationAPI) Get(_ context.Context, _ domain.Actor, _ int64) (domain.Reservation, error) {
	return f.created, f.createErr
}

func (f *fakeReservationAPI) List(_ context.Context, _ domain.Actor) ([]domain.Reservation, error) {
	return []domain.Reservation{f.created}, f.createErr
}

func (f *fakeReservationAPI) Update(_ context.Context, _ domain.Actor, _ int64, _ app.UpdateReservationInput) (domain.Reservation, error) {
	return f.created, f.createErr
}

func (f *fakeReservationAPI) Delete(_ context.Context, _ domain.Actor, _ int64) error {
	return f.createErr
}

func (f *fakeReservationAPI) ChangeStatus(_ context.Context, _ domain.Actor, _ int64, to domain.Status) (domain.Reservation, error) {
	f.statusChanged = to
	res := f.created
	res.Status = to
	return res, f.createErr
}

func (f *fakeReservationAPI) Cancel(_ context.Context, _ domain.Actor, _ int64) (domain.Reservation, error) {
	res := f.created
	res.Status = domain.StatusCancelled
	return res, f.createErr
}

func TestCreateReservationHandler(t *testing.T) {
	start := time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("creates and surfaces server-assigned fields", func(t *testing.T) {
		fake := &fakeReservationAPI{created: domain.Reservation{
			ID: 7, Title: "Aula", SpaceID: 3, OwnerID: 2,
			Start: start, End: end, Status: domain.StatusPending,
		}}
		h := testRouter(t, RouterConfig{Reservations: fake})

		rr := doRequest(t, h, http.MethodPost, "/reservations", signToken(t, 2, domain.RoleUser), map[string]any{
			"title":   "Aula",
			"start":   start,
			"end":     end,
			"spaceId": 3,
			"status":  "confirmed",
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}

		var resp reservationResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != 7 || resp.Status != "pending" || resp.OwnerID != 2 || resp.SpaceID != 3 {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if fake.createdActor.ID != 2 || fake.createdActor.Role != domain.RoleUser {
			t.Fatalf("unexpected actor: %+v", fake.createdActor)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		h := testRouter(t, RouterConfig{Reservations: &fakeReservationAPI{}})

		rr := doRequest(t, h, http.MethodPost, "/reservations", "", map[string]any{"title": "Aula"})
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		h := testRouter(t, RouterConfig{Reservations: &fakeReservationAPI{}})

		rr := doRequest(t, h, http.MethodPost, "/reservations", signToken(t, 2, domain.RoleUser), map[string]any{
			"title": "Aula",
		})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("conflict enumerates reservations", func(t *testing.T) {
		fake := &fakeReservationAPI{createErr: &domain.ConflictError{Conflicts: []domain.Reservation{
			{ID: 11, Title: "Prova", SpaceID: 3, OwnerID: 9, Start: start, End: end, Status: domain.StatusConfirmed},
		}}}
		h := testRouter(t, RouterConfig{Reservations: fake})

		rr := doRequest(t, h, http.MethodPost, "/reservations", signToken(t, 2, domain.RoleUser), map[string]any{
			"title":   "Aula",
			"start":   start,
			"end":     end,
			"spaceId": 3,
		})
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
		}

		var resp conflictResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != codeConflict || len(resp.Conflicts) != 1 || resp.Conflicts[0].ID != 11 {
			t.Fatalf("unexpected conflict payload: %+v", resp)
		}
	})
}

func TestChangeStatusHandler(t *testing.T) {
	t.Run("admin confirms", func(t *testing.T) {
		fake := &fakeReservationAPI{created: domain.Reservation{ID: 7, Status: domain.StatusPending}}
		h := testRouter(t, RouterConfig{Reservations: fake})

		rr := doRequest(t, h, http.MethodPatch, "/reservations/7/status", signToken(t, 1, domain.RoleAdmin),
			map[string]any{"status": "confirmed"})
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if fake.statusChanged != domain.StatusConfirmed {
			t.Fatalf("expected confirmed, got %s", fake.statusChanged)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		h := testRouter(t, RouterConfig{Reservations: &fakeReservationAPI{}})

		rr := doRequest(t, h, http.MethodPatch, "/reservations/7/status", signToken(t, 1, domain.RoleAdmin),
			map[string]any{"status": "approved"})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("forbidden for owners", func(t *testing.T) {
		fake := &fakeReservationAPI{createErr: domain.ErrForbidden}
		h := testRouter(t, RouterConfig{Reservations: fake})

		rr := doRequest(t, h, http.MethodPatch, "/reservations/7/status", signToken(t, 2, domain.RoleUser),
			map[string]any{"status": "confirmed"})
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		fake := &fakeReservationAPI{createErr: domain.ErrInvalidTransition}
		h := testRouter(t, RouterConfig{Reservations: fake})

		rr := doRequest(t, h, http.MethodPatch, "/reservations/7/status", signToken(t, 1, domain.RoleAdmin),
			map[string]any{"status": "pending"})
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
		}
	})
}

func TestReservationRoutes_InvalidID(t *testing.T) {
	h := testRouter(t, RouterConfig{Reservations: &fakeReservationAPI{}})
	token := signToken(t, 2, domain.RoleUser)

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/reservations/abc"},
		{http.MethodDelete, "/reservations/0"},
		{http.MethodPost, "/reservations/-1/cancel"},
	} {
		rr := doRequest(t, h, target.method, target.path, token, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", target.method, target.path, rr.Code)
		}
	}
}

func TestCancelHandler(t *testing.T) {
	fake := &fakeReservationAPI{created: domain.Reservation{ID: 7, OwnerID: 2, Status: domain.StatusPending}}
	h := testRouter(t, RouterConfig{Reservations: fake})

	rr := doRequest(t, h, http.MethodPost, "/reservations/7/cancel", signToken(t, 2, domain.RoleUser), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp reservationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %s", resp.Status)
	}
}
