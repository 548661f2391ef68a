package web

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/session"
	"github.com/cjeanneret/PanCam/internal/scene"
)

// Server wraps the HTTP server and handlers.
type Server struct {
	addr     string
	handlers *Handlers
}

// NewServer creates a server configured for the given address and dependencies.
func NewServer(addr string, s *session.State, assets *scene.Assets, broadcaster *StatusBroadcaster, overlapRatio float64) (*Server, error) {
	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("web: sub static fs: %w", err)
	}

	return &Server{
		addr:     addr,
		handlers: NewHandlers(s, assets, broadcaster, overlapRatio, subFS),
	}, nil
}

// Mux returns an http.Handler with all routes registered.
func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()
	h := s.handlers

	mux.HandleFunc("GET /config", h.HandleConfig)
	mux.HandleFunc("GET /state", h.HandleState)
	mux.HandleFunc("POST /ptu", h.HandlePTU)
	mux.HandleFunc("POST /ptu/preset/{name}", h.HandlePreset)
	mux.HandleFunc("POST /request", h.HandleRequest)
	mux.HandleFunc("POST /instrument/{id}", h.HandleInstrument)
	mux.HandleFunc("POST /plan", h.HandlePlan)
	mux.HandleFunc("POST /clear", h.HandleClear)
	mux.HandleFunc("GET /plan/chart", h.HandleChart)
	mux.HandleFunc("GET /plan/preview.png", h.HandlePreviewPNG)
	mux.HandleFunc("GET /plan/suggest", h.HandleSuggest)
	mux.HandleFunc("GET /status/stream", h.HandleStatusStream)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(h.staticFS))))
	mux.HandleFunc("GET /{$}", h.ServeIndex) // exact match for root only

	return mux
}

// Run starts the server and blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		debug.Info("Web server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		debug.Info("Web server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
