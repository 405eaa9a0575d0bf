package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

//go:embed templates/*.html guide.md
var templateFS embed.FS

// NewServer creates and configures the HTTP server for the studio API.
func NewServer(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config, log zerolog.Logger, version, bind string, port int) *http.Server {
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create template sub-FS")
	}

	guide, err := templateFS.ReadFile("guide.md")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read embedded guide")
	}

	renderer := NewRenderer(templateSub, version, string(guide))

	h := &Handlers{
		registry: NewRegistry(catalog, client, cfg),
		cfg:      cfg,
		renderer: renderer,
		log:      log,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", h.HandleGuide)
	mux.HandleFunc("GET /ping", h.HandlePing)

	mux.HandleFunc("POST /api/sessions", h.HandleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.HandleGetState)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.HandleDeleteSession)

	mux.HandleFunc("POST /api/sessions/{id}/model", h.HandleCreateModel)
	mux.HandleFunc("POST /api/sessions/{id}/garments", h.HandleApplyGarment)
	mux.HandleFunc("DELETE /api/sessions/{id}/garments/last", h.HandleRemoveGarment)
	mux.HandleFunc("POST /api/sessions/{id}/poses", h.HandleSelectPose)
	mux.HandleFunc("POST /api/sessions/{id}/poses/next", h.HandleNextPose)
	mux.HandleFunc("POST /api/sessions/{id}/poses/previous", h.HandlePreviousPose)
	mux.HandleFunc("POST /api/sessions/{id}/undo", h.HandleUndo)
	mux.HandleFunc("POST /api/sessions/{id}/redo", h.HandleRedo)
	mux.HandleFunc("POST /api/sessions/{id}/reset", h.HandleReset)
	mux.HandleFunc("GET /api/sessions/{id}/share", h.HandleShare)

	mux.HandleFunc("GET /api/wardrobe", h.HandleWardrobe)
	mux.HandleFunc("GET /api/poses", h.HandlePoses)

	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log zerolog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", srv.Addr).Msg("fitform studio running")

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn().Msg("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
