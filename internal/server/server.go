// Package server serves expression evaluation over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zephyrtronium/shunt"
	"github.com/zephyrtronium/shunt/internal/guard"
	"github.com/zephyrtronium/shunt/internal/history"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// pingPeriod must be less than pongWait.
	pingPeriod = pongWait * 9 / 10
)

// Config configures a Server.
type Config struct {
	// MaxMessage is the largest accepted request in bytes. Zero means 4 KiB.
	MaxMessage int64
	// Options are applied to every translation.
	Options []shunt.TranslateOption
	// History, if not nil, records every evaluation.
	History *history.Store
	// Log receives connection and storage messages. Nil means log.Default().
	Log *log.Logger
}

// Server evaluates expressions for HTTP and WebSocket clients. Every
// evaluation has its own pipeline state, so requests run concurrently.
type Server struct {
	cfg      Config
	opts     shunt.TranslateOption
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// Request is a request to evaluate one expression.
type Request struct {
	Expr string `json:"expr"`
}

// Response is the outcome of one evaluation. Exactly one of Result and Error
// is set. Text is the formatted result, which is the only representation of
// non-finite results.
type Response struct {
	ID     string   `json:"id"`
	Expr   string   `json:"expr"`
	Result *float64 `json:"result,omitempty"`
	Text   string   `json:"text,omitempty"`
	Error  string   `json:"error,omitempty"`
	// Kind is input, lex, syntax, eval, or request.
	Kind string `json:"kind,omitempty"`
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.MaxMessage <= 0 {
		cfg.MaxMessage = 4 << 10
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}
	s := &Server{
		cfg:  cfg,
		opts: shunt.TranslatingPreset(cfg.Options...),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/healthz", s.healthz)
	s.mux.HandleFunc("/eval", s.eval)
	s.mux.HandleFunc("/ws", s.ws)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// Evaluate checks and evaluates one expression for a session.
func (s *Server) Evaluate(ctx context.Context, session, expr string) Response {
	resp := Response{Expr: expr}
	r, err := s.calc(expr)
	if err != nil {
		resp.Error, resp.Kind = err.Error(), kind(err)
	} else {
		resp.Text = strconv.FormatFloat(r, 'g', -1, 64)
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			resp.Result = &r
		}
	}
	if s.cfg.History == nil {
		resp.ID = uuid.New().String()
		return resp
	}
	id, herr := s.cfg.History.Record(ctx, session, expr, r, err)
	if herr != nil {
		s.cfg.Log.Printf("%s: %v", session, herr)
		id = uuid.New().String()
	}
	resp.ID = id
	return resp
}

func (s *Server) calc(expr string) (float64, error) {
	if err := guard.Line(expr); err != nil {
		return 0, err
	}
	return shunt.Eval(expr, s.opts)
}

// kind names the pipeline stage that produced err.
func kind(err error) string {
	var (
		le *guard.LineError
		xe *shunt.LexError
		se *shunt.SyntaxError
		ee *shunt.EvalError
	)
	switch {
	case errors.As(err, &le):
		return "input"
	case errors.As(err, &xe):
		return "lex"
	case errors.As(err, &se):
		return "syntax"
	case errors.As(err, &ee):
		return "eval"
	default:
		return "request"
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// eval answers a single POSTed Request.
func (s *Server) eval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxMessage))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error(), Kind: "request"})
		return
	}
	session := r.Header.Get("X-Session")
	if session == "" {
		session = "http"
	}
	resp := s.Evaluate(r.Context(), session, req.Expr)
	code := http.StatusOK
	if resp.Error != "" {
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
