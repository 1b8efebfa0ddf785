package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"emailfinder/internal/auth"
	"emailfinder/internal/config"
	"emailfinder/internal/discovery"
	"emailfinder/pkg/backend"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/metrics"
	"emailfinder/pkg/ratelimit"
	"emailfinder/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// MsgTooManyRequests is shown when a session exceeds a rate limit.
const MsgTooManyRequests = "Too many requests. Please wait a moment and try again."

// Rate-limited actions.
const (
	ActionSubmit = "submit"
	ActionLookup = "lookup"
)

type Deps struct {
	Auth      *auth.Service
	Discovery discovery.Service
	Backend   backend.Client
	Workflows *discovery.Registry
}

type Options struct {
	// RequestTimeout bounds every endpoint except the workflow runs.
	RequestTimeout time.Duration
	// RunTimeout bounds a submit or verify run.
	RunTimeout time.Duration
	// MaxUploadSize is the largest accepted domain list in bytes.
	MaxUploadSize int64
	// FormSubmissionsPerMinute and LookupsPerMinute are per-session limits.
	FormSubmissionsPerMinute int
	LookupsPerMinute         int
}

func NewOptions(cfg *config.Config) Options {
	return Options{
		RequestTimeout:           cfg.HTTP.RequestTimeout,
		RunTimeout:               cfg.Discovery.RunTimeout,
		MaxUploadSize:            cfg.Discovery.MaxUploadSize,
		FormSubmissionsPerMinute: cfg.RateLimit.FormSubmissionsPerMinute,
		LookupsPerMinute:         cfg.RateLimit.LookupsPerMinute,
	}
}

type Handler struct {
	deps        Deps
	opts        Options
	submissions *ratelimit.Limiter
	lookups     *ratelimit.Limiter
}

func New(deps Deps, opts Options) *Handler {
	return &Handler{
		deps:        deps,
		opts:        opts,
		submissions: ratelimit.New(opts.FormSubmissionsPerMinute, time.Minute),
		lookups:     ratelimit.New(opts.LookupsPerMinute, time.Minute),
	}
}

// Sweep drops idle rate limit windows.
func (h *Handler) Sweep() {
	h.submissions.Sweep()
	h.lookups.Sweep()
}

// Routes returns the v1 API. It expects session.Middleware to run first.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Use(h.timeout)

		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)
		r.Get("/me", h.Me)
		r.Put("/profile", h.UpdateProfile)
		r.Put("/change-password", h.ChangePassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticate)

		r.With(h.timeout).Post("/domains/check", h.CheckDomain)

		r.Route("/workflow", func(r chi.Router) {
			// runs carry their own deadline
			r.Post("/submit", h.Submit)
			r.Post("/verify", h.Verify)

			r.Group(func(r chi.Router) {
				r.Use(h.timeout)

				r.Get("/", h.GetWorkflow)
				r.Put("/form", h.UpdateForm)
				r.Post("/domain", h.SetDomain)
				r.Post("/file", h.UploadFile)
				r.Delete("/file", h.ClearFile)
				r.Post("/custom-names", h.AddCustomName)
				r.Delete("/custom-names/{name}", h.RemoveCustomName)
				r.Post("/custom-names/{name}/toggle", h.ToggleCustomName)
				r.Post("/reset", h.ResetWorkflow)
			})
		})

		r.Route("/history", func(r chi.Router) {
			r.Use(h.timeout)

			r.Get("/sessions", h.ListSessions)
			r.Delete("/sessions/{id}", h.DeleteSession)
			r.Post("/sessions/delete", h.DeleteSessions)
			r.Get("/statistics", h.Statistics)
			r.Get("/export/{id}", h.ExportSession)
			r.Post("/export-bulk", h.ExportSessions)
		})
	})

	return r
}

func (h *Handler) timeout(next http.Handler) http.Handler {
	if h.opts.RequestTimeout <= 0 {
		return next
	}

	return middleware.Timeout(h.opts.RequestTimeout)(next)
}

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatusCode pairs an Error with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrForbidden:    "forbidden",
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrConflict:     "conflict",
	serrors.ErrTimeout:      "request timed out",
	serrors.ErrUnavailable:  "service unavailable, please try again later",
	serrors.ErrRateLimited:  MsgTooManyRequests,
}

// NewError maps err to a status and a client-safe message. Internal errors
// never leak their text.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	if errors.Is(err, context.DeadlineExceeded) {
		kind = serrors.ErrTimeout
	}

	msg := "internal error"
	if kind == serrors.ErrInternal {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
		msg = serrors.MessageOf(err, defaultMessages[kind])
	}

	return &ErrorStatusCode{
		StatusCode: serrors.Status(kind),
		Response:   Error{Code: kind.Error(), Message: msg},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := h.NewError(r.Context(), err)
	writeJSON(w, e.StatusCode, e.Response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}

// allow consumes one token of action for the caller's session and writes a
// 429 when none is left.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, limiter *ratelimit.Limiter, action string) bool {
	res := limiter.Allow(sessionKey(r.Context()) + ":" + action)
	if res.Allowed {
		return true
	}

	metrics.RateLimited.WithLabelValues(action).Inc()
	retry := res.RetryAfter(time.Now())
	w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
	h.writeError(w, r, serrors.With(serrors.ErrRateLimited, MsgTooManyRequests))

	return false
}
