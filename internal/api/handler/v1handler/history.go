package v1handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"emailfinder/pkg/domain"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the page size of the history listing.
const DefaultLimit = 20

const (
	maxLimit          = 100
	deleteConcurrency = 4
)

type idsRequest struct {
	IDs []string `json:"ids"`
}

type deleteResponse struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

type sessionPageResponse struct {
	domain.SessionPage
	HasMore bool `json:"hasMore"`
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, serrors.With(serrors.ErrBadRequest, "%s must be a non-negative integer", name)
	}

	return v, nil
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}

	page, err := h.deps.Backend.ListSessions(r.Context(), Token(r.Context()), limit, skip)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	if page.Sessions == nil {
		page.Sessions = []domain.GenerationSession{}
	}

	writeJSON(w, http.StatusOK, sessionPageResponse{SessionPage: page, HasMore: page.Pagination.HasMore()})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Backend.DeleteSession(r.Context(), Token(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSessions deletes every listed session and reports how many failed.
// A partial failure is not an error.
func (h *Handler) DeleteSessions(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if len(req.IDs) == 0 {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "no sessions selected"))

		return
	}

	token := Token(r.Context())
	var deleted, failed atomic.Int64

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(deleteConcurrency)
	for _, id := range req.IDs {
		g.Go(func() error {
			if err := h.deps.Backend.DeleteSession(ctx, token, id); err != nil {
				logger.Warn(ctx, "could not delete session", zap.String("id", id), zap.Error(err))
				failed.Add(1)

				return nil
			}
			deleted.Add(1)

			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, http.StatusOK, deleteResponse{Deleted: int(deleted.Load()), Failed: int(failed.Load())})
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Backend.Statistics(r.Context(), Token(r.Context()))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ExportSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.export(w, r, "session-"+id+".json", func(ctx context.Context, token string) (domain.Export, error) {
		return h.deps.Backend.ExportSession(ctx, token, id)
	})
}

func (h *Handler) ExportSessions(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if len(req.IDs) == 0 {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "no sessions selected"))

		return
	}

	h.export(w, r, "sessions-export.json", func(ctx context.Context, token string) (domain.Export, error) {
		return h.deps.Backend.ExportSessions(ctx, token, req.IDs)
	})
}

// export writes the document as a JSON attachment, using fallbackName when
// the backend did not name it.
func (h *Handler) export(w http.ResponseWriter,
	r *http.Request,
	fallbackName string,
	fetch func(ctx context.Context, token string) (domain.Export, error)) {
	exp, err := fetch(r.Context(), Token(r.Context()))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	name := exp.Filename
	if name == "" {
		name = fallbackName
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exp.Data)
}
