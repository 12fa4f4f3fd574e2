package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Reservations ReservationAPI
	Spaces       SpaceAPI
	Amenities    AmenityAPI
	Users        UserAPI
	DB           Pinger
	JWTSecret    string
	CORSOrigins  []string
	Log          *logrus.Logger
}

// NewRouter assembles the full route table. Everything except /health sits
// behind the bearer-token middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}

	reservations := &reservationHandler{svc: cfg.Reservations}
	spaces := &spaceHandler{svc: cfg.Spaces}
	amenities := &amenityHandler{svc: cfg.Amenities}
	users := &userHandler{svc: cfg.Users}

	r := chi.NewRouter()
	r.Use(RequestLogger(cfg.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handleHealth(cfg.DB))

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(cfg.JWTSecret))

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", reservations.create)
			r.Get("/", reservations.list)
			r.Get("/{id}", reservations.get)
			r.Patch("/{id}", reservations.update)
			r.Delete("/{id}", reservations.delete)
			r.Patch("/{id}/status", reservations.changeStatus)
			r.Post("/{id}/cancel", reservations.cancel)
		})

		r.Route("/spaces", func(r chi.Router) {
			r.Get("/", spaces.list)
			r.Post("/", spaces.create)
			r.Get("/{id}", spaces.get)
			r.Patch("/{id}", spaces.update)
			r.Delete("/{id}", spaces.delete)
			r.Put("/{id}/amenities", spaces.setAmenities)
			r.Get("/{id}/amenities", spaces.amenities)
		})

		r.Route("/amenities", func(r chi.Router) {
			r.Get("/", amenities.list)
			r.Post("/", amenities.create)
			r.Patch("/{id}", amenities.update)
			r.Delete("/{id}", amenities.delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.list)
			r.Patch("/{id}/role", users.changeRole)
			r.Delete("/{id}", users.delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})

	return r
}
