// Package session issues the anonymous browser session cookie. The cookie
// value is only a key: the signed-in user lives in a storage.SessionStore and
// the form state in a discovery.Registry, both looked up by that key.
package session

import (
	"context"
	"net/http"
	"time"

	"emailfinder/internal/config"

	"github.com/google/uuid"
)

type ctxKey struct{}

type Options struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

func NewOptions(cfg *config.Config) Options {
	return Options{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.HTTP.SecureCookies,
		TTL:        cfg.Session.TTL,
	}
}

// Key returns the session key of the request, or "" outside Middleware.
func Key(ctx context.Context) string {
	k, _ := ctx.Value(ctxKey{}).(string)

	return k
}

// WithKey stores k as the session key of ctx.
func WithKey(ctx context.Context, k string) context.Context {
	return context.WithValue(ctx, ctxKey{}, k)
}

// Middleware makes sure every request carries a session key, issuing a new
// cookie when the request has none or a malformed one.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var key string
			if c, err := r.Cookie(opts.CookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					key = id.String()
				}
			}

			if key == "" {
				key = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     opts.CookieName,
					Value:    key,
					Path:     "/",
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithKey(r.Context(), key)))
		})
	}
}
