package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/afghan7861/Zentro-backend/internal/http/handlers"
	"github.com/afghan7861/Zentro-backend/internal/middleware"
)

// Options carries the router's cross-cutting configuration.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
	Logger          zerolog.Logger
}

// NewRouter wires the middleware chain and the API routes.
func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Country(opts.CountryLookup))
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))
		if opts.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		}

		r.Post("/v1/generate-plan", app.GeneratePlan)
		r.Post("/v1/generate-voice", app.GenerateVoice)
		r.Get("/v1/plans", app.ListPlans)
		r.Get("/v1/voices", app.ListVoices)
	})

	return r
}
