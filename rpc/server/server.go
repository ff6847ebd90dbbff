package server

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/ValentinKolb/dEnv/lib/env"
	"github.com/ValentinKolb/dEnv/lib/telemetry"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/ValentinKolb/dEnv/rpc/common"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var Logger = logger.GetLogger("http")

// maxBodySize limits the size of a value accepted by PUT /env/{key}
const maxBodySize = 1 << 20

// Server exposes the values of a registry over HTTP
type Server struct {
	config   common.Config
	registry *env.Registry
}

// NewServer creates a new HTTP server for the registry
//
// Usage:
//
//	s := server.NewServer(*config, registry)
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewServer(config common.Config, registry *env.Registry) *Server {
	return &Server{
		config:   config,
		registry: registry,
	}
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		if s.config.LogLevel == "debug" {
			h = loggerMiddleware(h)
		}
		mux.HandleFunc(pattern, h)
	}

	handle("GET /env", s.handleList)
	handle("GET /env/{key}", s.handleGet)
	handle("PUT /env/{key}", s.handleSet)
	handle("GET /metrics", s.handleMetrics)

	return mux
}

// Serve listens on the configured endpoint until SIGINT or SIGTERM is received
func (s *Server) Serve() error {
	srv := &http.Server{
		Addr:              s.config.Endpoint,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		Logger.Infof("Starting HTTP server on %s", s.config.Endpoint)
		errChan <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		Logger.Infof("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --------------------------------------------------------------------------
// Handlers
// --------------------------------------------------------------------------

// handleList writes all values of the registry as one JSON object
func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	values, err := s.registry.Values()
	if err != nil {
		Logger.Errorf("failed to read values: %v", err)
		http.Error(w, "Failed to read values", http.StatusInternalServerError)
		return
	}
	writeJSON(w, values)
}

// handleGet writes the value of a single key
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.registry.Lookup(r.PathValue("key"))
	if !ok {
		http.Error(w, "Unknown key", http.StatusNotFound)
		return
	}

	v, err := e.Get()
	if err != nil {
		Logger.Errorf("failed to read %s: %v", e.Name(), err)
		http.Error(w, "Failed to read value", http.StatusInternalServerError)
		return
	}
	writeJSON(w, v)
}

// handleSet replaces the value of a key with the JSON request body
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.registry.Lookup(r.PathValue("key"))
	if !ok {
		http.Error(w, "Unknown key", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	defer r.Body.Close()
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}

	v, err := value.Decode(body)
	if err != nil {
		http.Error(w, "Request body is not valid JSON", http.StatusBadRequest)
		return
	}

	if err := e.Set(v); err != nil {
		Logger.Errorf("failed to write %s: %v", e.Name(), err)
		http.Error(w, "Failed to write value", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMetrics writes the dEnv metrics in Prometheus text format
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	telemetry.WritePrometheus(w)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(data); err != nil {
		Logger.Warningf("failed to write response: %v", err)
	}
}
