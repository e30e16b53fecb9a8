package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"staffbot/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Response is the envelope for every JSON reply
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Server is the loopback admin API
type Server struct {
	configs service.GuildConfigService
	server  *http.Server
}

// New creates the admin API. registry may be nil, in which case /metrics is not served.
func New(addr string, configs service.GuildConfigService, registry *prometheus.Registry) *Server {
	s := &Server{configs: configs}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.routes(registry),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) routes(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/debug/guilds", func(r chi.Router) {
		r.Get("/", s.listGuilds)
		r.Get("/{guildID}/config", s.guildConfig)
	})
	return r
}

// Start serves in the background
func (s *Server) Start() {
	go func() {
		log.Infof("Admin API listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Admin API server error: %v", err)
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) listGuilds(w http.ResponseWriter, r *http.Request) {
	ids, err := s.configs.ListGuilds(r.Context())
	if err != nil {
		respondWithError(w, "Failed to list guilds", http.StatusInternalServerError)
		return
	}
	respondWithData(w, ids)
}

func (s *Server) guildConfig(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")

	cfg := s.configs.Load(r.Context(), guildID)
	if cfg == nil {
		respondWithError(w, "Guild configuration not found", http.StatusNotFound)
		return
	}
	respondWithData(w, cfg)
}

func respondWithData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		Success: true,
		Data:    data,
	})
}

func respondWithError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error:   message,
	})
}
