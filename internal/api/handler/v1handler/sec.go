package v1handler

import (
	"context"
	"net/http"
	"strings"

	"emailfinder/internal/api/session"
)

type tokenKey struct{}

func sessionKey(ctx context.Context) string {
	return session.Key(ctx)
}

// Token returns the backend bearer token resolved by Authenticate.
func Token(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)

	return t
}

// WithToken stores a backend bearer token in ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > len("Bearer ") && strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}

	return ""
}

// Authenticate resolves the backend token of the caller: an explicit bearer
// token is passed through as is (the backend validates it), otherwise the
// token of the cookie session is used. Requests with neither get a 401.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t := bearer(r); t != "" {
			next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), t)))

			return
		}

		sess, err := h.deps.Auth.Current(r.Context(), sessionKey(r.Context()))
		if err != nil {
			h.writeError(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), sess.Token)))
	})
}
