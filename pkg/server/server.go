package server

import (
	"context"
	"embed"
	"encoding/json"
	stderrors "errors"
	stdio "io"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/handlermap/pkg/config"
	"github.com/matzehuels/handlermap/pkg/diagram"
	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/export"
	"github.com/matzehuels/handlermap/pkg/integrations"
	"github.com/matzehuels/handlermap/pkg/integrations/unity"
	"github.com/matzehuels/handlermap/pkg/render/nodelink"
)

//go:embed assets/index.html
var assets embed.FS

// ExportPrefix starts the name of every row file written by /run_export_sse.
const ExportPrefix = "call_handler_menu_entries_"

const shutdownTimeout = 5 * time.Second

// SourceFunc creates the remote source for one export request.
type SourceFunc func(baseURL, username, password string) export.Source

// Server serves the web surface. Create it with [New].
type Server struct {
	cfg       config.Config
	logger    *log.Logger
	newSource SourceFunc
	renderer  *diagram.Renderer
	newName   func() string
}

// New creates a Server writing into cfg.Server.OutputDir. A nil logger
// discards output.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(stdio.Discard)
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		renderer: diagram.NewRenderer(nodelink.Rasterizer{Scale: cfg.Render.Scale}, logger),
		newName: func() string {
			return ExportPrefix + strings.ReplaceAll(uuid.NewString(), "-", "") + ".csv"
		},
	}
	s.newSource = func(baseURL, username, password string) export.Source {
		return unity.NewClient(baseURL, integrations.Options{
			Username:           username,
			Password:           password,
			InsecureSkipVerify: cfg.Remote.InsecureSkipVerify,
			Timeout:            cfg.Remote.Timeout.Duration,
		})
	}
	return s
}

// WithSource replaces the remote source factory.
func (s *Server) WithSource(fn SourceFunc) *Server {
	s.newSource = fn
	return s
}

// WithRenderer replaces the diagram renderer.
func (s *Server) WithRenderer(r *diagram.Renderer) *Server {
	s.renderer = r
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/run_export_sse", s.handleExport)
	r.Get("/download_csv/{filename}", s.handleDownload)
	r.Get("/generate_graphs", s.handleGenerate)
	r.Get("/static/*", s.handleStatic)
	return r
}

// Run serves [Server.Handler] on cfg.Server.Addr until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.Server.OutputDir, 0o755); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.cfg.Server.Addr, "output", s.cfg.Server.OutputDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("Request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(assets, "assets/index.html")
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load index page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := strings.TrimSpace(q.Get("username"))
	password := strings.TrimSpace(q.Get("password"))

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	rc := http.NewResponseController(w)

	send := func(ev export.Event) bool {
		if _, err := ev.WriteTo(w); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	baseURL, err := errors.NormalizeBaseURL(q.Get("base_url"))
	if err != nil {
		send(export.Failure(err))
		return
	}
	if err := os.MkdirAll(s.cfg.Server.OutputDir, 0o755); err != nil {
		send(export.Failure(err))
		return
	}

	path := filepath.Join(s.cfg.Server.OutputDir, s.newName())
	s.logger.Info("Starting export", "base_url", baseURL, "user", username, "file", path)
	exp := export.New(s.newSource(baseURL, username, password), s.logger)
	for ev := range exp.Stream(r.Context(), path) {
		if !send(ev) {
			s.logger.Debug("Client went away during export", "file", path)
			return
		}
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	f, info, err := s.open(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("csv_filename"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No csv_filename provided"})
		return
	}
	f, _, err := s.open(name)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "CSV file not found: " + name})
			return
		}
		s.writeError(w, err)
		return
	}
	f.Close()

	manifest, err := s.renderer.Render(r.Context(), filepath.Join(s.cfg.Server.OutputDir, name), diagram.Options{
		OutputDir: s.cfg.Server.OutputDir,
		Prefix:    s.renderPrefix(name),
		Merge:     s.cfg.Render.Merge,
	})
	if err != nil {
		s.logger.Error("Render failed", "file", name, "err", err)
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

// renderPrefix names the images folder and combined document of one row
// file, so renders of different exports never share a folder:
// call_handler_menu_entries_<id>.csv renders to <prefix>_<id>_images.
func (s *Server) renderPrefix(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.TrimPrefix(stem, ExportPrefix)
	if stem == "" {
		return s.cfg.Render.Prefix
	}
	return s.cfg.Render.Prefix + "_" + stem
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if err := errors.ValidatePath(rel); err != nil {
		s.writeError(w, err)
		return
	}
	http.StripPrefix("/static/", http.FileServerFS(os.DirFS(s.cfg.Server.OutputDir))).ServeHTTP(w, r)
}

// open opens a regular file directly below the output directory.
func (s *Server) open(name string) (*os.File, os.FileInfo, error) {
	if err := errors.ValidateFilename(name); err != nil {
		return nil, nil, err
	}
	root, err := os.OpenRoot(s.cfg.Server.OutputDir)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "output directory unavailable")
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", name)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", name)
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", name)
	}
	return f, info, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
