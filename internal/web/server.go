package web

import (
	"net/http"
	"time"

	"roster-app/internal/status"
	"roster-app/internal/store"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Options struct {
	// WriteKeyHash is a bcrypt hash; when set, mutating requests must carry
	// the matching key in the X-Roster-Key header.
	WriteKeyHash string
	CORSOrigins  []string
	// Location is used to read match dates and times.
	Location *time.Location
	// FlushWrites makes mutating requests wait for the roster to be saved.
	FlushWrites bool
}

type Server struct {
	store  store.Store
	engine *status.Engine
	opts   Options
}

func NewServer(store store.Store, engine *status.Engine, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Server{store: store, engine: engine, opts: opts}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(RequestLogger)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type", writeKeyHeader},
		}).Handler)
	}
	r.Use(RequireWriteKey(s.opts.WriteKeyHash))
	if s.opts.FlushWrites {
		r.Use(FlushWrites(s.store))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", s.handleTeamsList)
		r.Post("/", s.handleTeamCreate)
		r.Get("/{teamID}", s.handleTeamShow)
		r.Patch("/{teamID}", s.handleTeamUpdate)
		r.Delete("/{teamID}", s.handleTeamDelete)

		r.Post("/{teamID}/athletes", s.handleAthleteCreate)
		r.Get("/{teamID}/athletes/{athleteID}", s.handleAthleteShow)
		r.Get("/{teamID}/athletes/{athleteID}/status", s.handleAthleteStatus)
		r.Patch("/{teamID}/athletes/{athleteID}", s.handleAthleteUpdate)
		r.Delete("/{teamID}/athletes/{athleteID}", s.handleAthleteDelete)

		r.Get("/{teamID}/matches", s.handleTeamMatches)
		r.Post("/{teamID}/matches", s.handleMatchCreate)
		r.Patch("/{teamID}/matches/{matchID}", s.handleMatchUpdate)
		r.Delete("/{teamID}/matches/{matchID}", s.handleMatchDelete)
	})
	r.Get("/matches", s.handleMatchesList)

	return r
}
