// Package server exposes a menu store over HTTP.
//
// Routes:
//
//	POST   /contributions       add a manifest as one batch, returns its id
//	GET    /contributions       list live batches
//	DELETE /contributions/{id}  dispose a batch
//	GET    /menu                resolved tree (?format=json, dot or svg)
//	GET    /diagnostics         diagnostics of the current resolution
//	GET    /health              liveness probe
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/menusolver/pkg/cache"
	"github.com/matzehuels/menusolver/pkg/errors"
	pkgio "github.com/matzehuels/menusolver/pkg/io"
	"github.com/matzehuels/menusolver/pkg/render/nodelink"
	"github.com/matzehuels/menusolver/pkg/store"
)

// maxManifestBytes bounds the request body of POST /contributions.
const maxManifestBytes = 1 << 20

// svgCacheEntries bounds the default in-memory SVG cache.
const svgCacheEntries = 64

// Server is an HTTP façade over a [store.Store].
type Server struct {
	store     *store.Store
	logger    *log.Logger
	router    chi.Router
	artifacts cache.Cache
}

// Option configures a Server.
type Option func(*Server)

// WithCache sets the cache for rendered SVG menus.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.artifacts = c }
}

// New creates a server for st. A nil logger disables request logging.
func New(st *store.Store, logger *log.Logger, opts ...Option) *Server {
	s := &Server{store: st, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.artifacts == nil {
		s.artifacts = cache.NewMemoryCache(svgCacheEntries)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/menu", s.handleMenu)
	r.Get("/diagnostics", s.handleDiagnostics)
	r.Route("/contributions", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleAdd)
		r.Delete("/{id}", s.handleDispose)
	})

	s.router = r
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	if s.logger != nil {
		s.logger.Info("serving", "addr", ln.Addr().String())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}

type addResponse struct {
	ID    string `json:"id"`
	Items int    `json:"items"`
}

type diagnosticResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	nodes := s.store.Menu()
	switch f := r.URL.Query().Get("format"); f {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		if err := pkgio.WriteJSON(nodes, w); err != nil {
			s.logError(r, err)
		}
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(nodelink.ToDOT(nodes, nodelink.Options{Detailed: true})))
	case "svg":
		dot := nodelink.ToDOT(nodes, nodelink.Options{Detailed: true})
		svg, _, err := cache.GetOrCompute(r.Context(), s.artifacts, cache.ArtifactKey(f, []byte(dot)), 0, func() ([]byte, error) {
			return nodelink.RenderSVGContext(r.Context(), dot)
		})
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported menu format %q", f))
	}
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags := s.store.Result().Diagnostics
	out := make([]diagnosticResponse, len(diags))
	for i, d := range diags {
		out[i] = diagnosticResponse{Kind: d.Kind.String(), Message: d.String()}
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	handles := s.store.Handles()
	out := make([]addResponse, len(handles))
	for i, h := range handles {
		out[i] = addResponse{ID: h.ID(), Items: h.Len()}
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	format := pkgio.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		f, err := pkgio.ParseFormat(ct)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}

	items, err := pkgio.ReadManifest(http.MaxBytesReader(w, r.Body, maxManifestBytes), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := s.store.Add(items...)
	w.Header().Set("Location", "/contributions/"+h.ID())
	s.writeJSON(w, r, http.StatusCreated, addResponse{ID: h.ID(), Items: h.Len()})
}

func (s *Server) handleDispose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Dispose(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no contribution %q", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logError(r, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, r, statusFor(code), errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func (s *Server) logError(r *http.Request, err error) {
	if s.logger != nil {
		s.logger.Error("write response", "path", r.URL.Path, "err", err)
	}
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLocation, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidPolicy:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeAmbiguousNode:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
