// Package mockserver is an in-memory stand-in for the MuSheet backend. It
// speaks the same RPC protocol as the real service so the console can be
// demonstrated and tested without one.
package mockserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// errUnauthorized is reported in the "exception" shape, every other handler
// error in the "error" shape, so clients see both.
var errUnauthorized = errors.New("Not authorized")

// params is the decoded request envelope.
type params map[string]json.RawMessage

func (p params) str(key string) string {
	var s string
	_ = json.Unmarshal(p[key], &s)
	return s
}

func (p params) int64(key string) int64 {
	var n int64
	_ = json.Unmarshal(p[key], &n)
	return n
}

func (p params) int(key string) int {
	return int(p.int64(key))
}

func (p params) bool(key string) bool {
	var b bool
	_ = json.Unmarshal(p[key], &b)
	return b
}

// call is one request as seen by a handler.
type call struct {
	params params
	caller *user // nil for public methods
}

type handlerFunc func(s *store, c call) (any, error)

type method struct {
	public bool
	admin  bool
	fn     handlerFunc
}

// Server is the mock backend.
type Server struct {
	store   *store
	methods map[string]method
	logger  *zap.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.store.cost = cost }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.store.now = now }
}

// New creates an empty mock backend. Call Seed for demo data.
func New(logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:  newStore(bcrypt.DefaultCost),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.methods = s.methodTable()
	return s
}

// Handler returns the HTTP handler serving POST /{endpoint}.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(s.requestLogging)
	r.Post("/{endpoint}", s.dispatch)
	return r
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")

	var p params
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "malformed request body")
		return
	}
	name := p.str("method")
	m, ok := s.methods[endpoint+"."+name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": fmt.Sprintf("Method %q not found on endpoint %q", name, endpoint),
		})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c := call{params: p}
	if !m.public {
		c.caller = s.store.userByToken(bearer(r))
		if c.caller == nil || (m.admin && !c.caller.IsAdmin) || c.caller.IsDisabled {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"exception": map[string]any{"message": errUnauthorized.Error(), "type": "AccessDeniedException"},
			})
			return
		}
	}

	result, err := m.fn(s.store, c)
	if err != nil {
		s.logger.Debug("method failed", zap.String("method", endpoint+"."+name), zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
		return tok
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
