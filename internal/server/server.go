package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/chat"
)

const maxRequestBytes = 64 << 10

// Server exposes the Responder as POST /api/chat.
type Server struct {
	addr      string
	responder *Responder
	logger    *zap.Logger
}

func New(addr string, responder *Responder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{addr: addr, responder: responder, logger: logger}
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+chat.Path, s.handleChat)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Chat server listening",
			zap.String("addr", s.addr),
			zap.Bool("provider_configured", s.responder.Configured()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down chat server")
		return srv.Shutdown(shutdownCtx)
	}
}

// chatBody keeps prompt raw so a non-string value can still be answered.
type chatBody struct {
	Prompt json.RawMessage `json:"prompt"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&body); err != nil {
		s.logger.Warn("Undecodable chat request, returning apology", zap.Error(err))
		writeJSON(w, http.StatusOK, chat.Response{Message: s.responder.ApologyMessage()})
		return
	}

	message, err := s.responder.Respond(r.Context(), promptText(body.Prompt))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, chat.Response{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, chat.Response{Message: message})
}

// promptText returns a string prompt as is and any other JSON value as its
// literal text. Absent, null, false, 0 and "" yield an empty prompt.
func promptText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	switch text {
	case "", "null", "false", "0":
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return text
}

func writeJSON(w http.ResponseWriter, status int, body chat.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("Request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
