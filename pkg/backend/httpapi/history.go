package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"emailfinder/pkg/domain"
)

const historyPath = "/api/email-generation"

// ListSessions returns one page of the user's generation history, newest first.
func (c *Client) ListSessions(ctx context.Context, token string, limit, skip int) (domain.SessionPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	b, _, err := c.send(ctx, call{
		endpoint: "history.list", method: http.MethodGet, path: historyPath + "/sessions?" + q.Encode(), token: token,
	})
	if err != nil {
		return domain.SessionPage{}, err
	}

	var page domain.SessionPage
	if err := json.Unmarshal(b, &page); err != nil {
		return domain.SessionPage{}, fmt.Errorf("could not decode response: %w", err)
	}
	if page.Sessions == nil {
		page.Sessions = []domain.GenerationSession{}
	}
	if page.Pagination.Limit == 0 {
		page.Pagination.Limit = limit
		page.Pagination.Skip = skip
	}

	return page, nil
}

// Statistics returns totals across the user's sessions.
func (c *Client) Statistics(ctx context.Context, token string) (domain.UserStatistics, error) {
	var st domain.UserStatistics
	err := c.do(ctx, call{endpoint: "history.statistics", method: http.MethodGet, path: historyPath + "/statistics", token: token}, &st)

	return st, err
}

// DeleteSession removes one session from the user's history.
func (c *Client) DeleteSession(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		endpoint: "history.delete", method: http.MethodDelete, path: historyPath + "/sessions/" + url.PathEscape(id), token: token,
	}, nil)
}

// ExportSession downloads a single session as a JSON document.
func (c *Client) ExportSession(ctx context.Context, token, id string) (domain.Export, error) {
	b, h, err := c.send(ctx, call{
		endpoint: "history.export", method: http.MethodGet, path: historyPath + "/export/" + url.PathEscape(id), token: token,
	})
	if err != nil {
		return domain.Export{}, err
	}

	return domain.Export{Filename: filename(h, "email-generation-"+id+".json"), Data: b}, nil
}

// ExportSessions downloads several sessions as one JSON document.
func (c *Client) ExportSessions(ctx context.Context, token string, ids []string) (domain.Export, error) {
	body := struct {
		SessionIDs []string `json:"sessionIds"`
	}{SessionIDs: ids}

	b, h, err := c.send(ctx, call{
		endpoint: "history.export_bulk", method: http.MethodPost, path: historyPath + "/export-bulk", token: token, body: body,
	})
	if err != nil {
		return domain.Export{}, err
	}

	fallback := "email-generation-bulk-" + time.Now().UTC().Format("2006-01-02") + ".json"

	return domain.Export{Filename: filename(h, fallback), Data: b}, nil
}

// filename prefers the name offered in Content-Disposition.
func filename(h http.Header, fallback string) string {
	if cd := h.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}

	return fallback
}
