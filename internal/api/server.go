// Package api exposes the run pipeline and chat log over HTTP, plus a
// small embedded form page for manual testing.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/mira/internal/persona"
	"github.com/MikeSquared-Agency/mira/internal/pipeline"
	"github.com/MikeSquared-Agency/mira/internal/reply"
	"github.com/MikeSquared-Agency/mira/internal/store"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Runner executes one think-aloud run.
type Runner interface {
	Run(ctx context.Context, rawURL, personaID string) (*pipeline.Result, error)
}

type Server struct {
	router  *chi.Mux
	port    int
	runner  Runner
	logs    store.LogStore
	catalog *persona.Catalog
	logger  *slog.Logger
}

func NewServer(port int, runner Runner, logs store.LogStore, catalog *persona.Catalog, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		runner:  runner,
		logs:    logs,
		catalog: catalog,
		logger:  logger,
	}

	router.Get("/health", s.health)
	router.Get("/", s.index)
	router.Post("/api/v1/run", s.run)
	router.Get("/api/v1/logs", s.recentLogs)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

type runRequest struct {
	URL       string `json:"url"`
	PersonaID string `json:"persona_id"`
}

type viewportPayload struct {
	W int `json:"w"`
	H int `json:"h"`
}

type metaPayload struct {
	URL      string          `json:"url"`
	Title    string          `json:"title"`
	Viewport viewportPayload `json:"viewport"`
	ScrollY  int             `json:"scroll_y"`
}

type uiPayload struct {
	VisibleText []string `json:"visible_text"`
}

type runResponse struct {
	Status     string           `json:"status"`
	RunID      string           `json:"run_id"`
	TookMS     int64            `json:"took_ms"`
	Persona    string           `json:"persona"`
	Meta       metaPayload      `json:"meta"`
	UI         uiPayload        `json:"ui"`
	LLM        reply.Assessment `json:"llm"`
	Screenshot string           `json:"screenshot,omitempty"`
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	res, err := s.runner.Run(r.Context(), req.URL, req.PersonaID)
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	resp := runResponse{
		Status:  res.Status,
		RunID:   res.RunID,
		TookMS:  res.TookMS,
		Persona: res.PersonaID,
		Meta: metaPayload{
			URL:      res.Meta.URL,
			Title:    res.Meta.Title,
			Viewport: viewportPayload{W: res.Meta.W, H: res.Meta.H},
			ScrollY:  res.Meta.ScrollY,
		},
		UI:         uiPayload{VisibleText: res.VisibleText},
		LLM:        res.Assessment,
		Screenshot: res.ScreenshotDataURL,
	}
	if resp.UI.VisibleText == nil {
		resp.UI.VisibleText = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	var re *pipeline.RetrievalError
	var ie *pipeline.InferenceError
	switch {
	case errors.Is(err, pipeline.ErrBadTarget):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &re), errors.As(err, &ie):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) recentLogs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %q", raw))
			return
		}
		limit = n
	}

	entries, err := s.logs.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("log query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"logs":  entries,
		"count": len(entries),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]any{"Personas": s.catalog.All()}); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
