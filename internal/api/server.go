package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/profile"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	// Sessions idle longer than this are dropped; the frontend holds no
	// durable state, so an expired session simply starts over.
	sessionTTL   = 30 * time.Minute
	sessionSweep = 5 * time.Minute

	maxLogLength = 200
)

// Server exposes the conversation, CV and match endpoints consumed by the
// frontend. One endpoint per original backend function.
type Server struct {
	router    *chi.Mux
	addr      string
	log       *zap.Logger
	generator ai.Generator
	sessions  *cache.Cache
	cvs       *profile.CVBuilder
	matches   *profile.MatchFinder
}

func NewServer(addr string, generator ai.Generator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware)

	s := &Server{
		router:    router,
		addr:      addr,
		log:       log,
		generator: generator,
		sessions:  cache.New(sessionTTL, sessionSweep),
		cvs:       profile.NewCVBuilder(generator, log, maxLogLength),
		matches:   profile.NewMatchFinder(generator, log, maxLogLength),
	}

	router.Get("/health", s.health)
	router.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Post("/{sessionID}/messages", s.postMessage)
		r.Post("/{sessionID}/cv", s.generateCV)
		r.Post("/{sessionID}/matches", s.generateMatches)
	})

	return s
}

func (s *Server) Start() error {
	s.log.Info("api server starting", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// corsMiddleware mirrors the headers the browser frontend expects.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
