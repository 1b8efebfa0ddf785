package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"emailfinder/pkg/backend"
	"emailfinder/pkg/backend/httpapi"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *httpapi.Client {
	return httpapi.New(&http.Client{Transport: fn}, "http://backend.test/")
}

func jsonResponse(code int, body string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")

	return &http.Response{StatusCode: code, Header: h, Body: io.NopCloser(strings.NewReader(body))}
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func TestClient_Login_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "backend.test", r.URL.Host)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))

		var creds domain.Credentials
		decodeBody(t, r, &creds)
		require.Equal(t, domain.Credentials{Email: "jane@example.com", Password: "secret"}, creds)

		return jsonResponse(http.StatusOK, `{"success":true,"data":{"token":"tok-1","user":{"_id":"u1","email":"jane@example.com","firstName":"Jane"}}}`), nil
	})

	s, err := c.Login(context.Background(), domain.Credentials{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "tok-1", s.Token)
	require.Equal(t, domain.UserID("u1"), s.User.ID)
	require.Equal(t, "Jane", s.User.FirstName)
}

func TestClient_Login_rejected(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`), nil
	})

	_, err := c.Login(context.Background(), domain.Credentials{Email: "jane@example.com", Password: "wrong"})
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
	require.EqualError(t, err, "Invalid credentials")
}

func TestClient_Login_missingToken(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":true,"data":{"user":{"_id":"u1"}}}`), nil
	})

	_, err := c.Login(context.Background(), domain.Credentials{})
	require.ErrorIs(t, err, serrors.ErrInternal)
}

func TestClient_errorMapping(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		err  error
		kind serrors.Kind
	}{
		{name: "conflict", resp: jsonResponse(http.StatusConflict, `{"message":"User already exists"}`), kind: serrors.ErrConflict},
		{name: "rate limited plain body", resp: jsonResponse(http.StatusTooManyRequests, "slow down"), kind: serrors.ErrRateLimited},
		{name: "server error", resp: jsonResponse(http.StatusInternalServerError, ""), kind: serrors.ErrUnavailable},
		{name: "success false", resp: jsonResponse(http.StatusOK, `{"success":false,"message":"Email not found"}`), kind: serrors.ErrBadRequest},
		{name: "transport", err: errors.New("connection refused"), kind: serrors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(*http.Request) (*http.Response, error) {
				return tt.resp, tt.err
			})

			err := c.ForgotPassword(context.Background(), "jane@example.com")
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestClient_Me_sendsBearer(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		return jsonResponse(http.StatusOK, `{"success":true,"data":{"user":{"_id":"u1","role":"user"}}}`), nil
	})

	u, err := c.Me(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, "user", u.Role)
}

func TestClient_UpdateProfileAndChangePassword(t *testing.T) {
	var paths []string
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPut, r.Method)
		paths = append(paths, r.URL.Path)

		return jsonResponse(http.StatusOK, `{"success":true,"data":{"user":{"_id":"u1","firstName":"Janet"}}}`), nil
	})

	name := "Janet"
	u, err := c.UpdateProfile(context.Background(), "tok", domain.ProfileUpdate{FirstName: &name})
	require.NoError(t, err)
	require.Equal(t, "Janet", u.FirstName)

	require.NoError(t, c.ChangePassword(context.Background(), "tok", domain.PasswordChange{CurrentPassword: "a", NewPassword: "b", ConfirmPassword: "b"}))
	require.Equal(t, []string{"/api/auth/profile", "/api/auth/change-password"}, paths)
}

func TestClient_LookupCompany(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/api/perplexity", r.URL.Path)
		var body map[string]string
		decodeBody(t, r, &body)
		require.Equal(t, "example.com", body["domain"])

		return jsonResponse(http.StatusOK, `{"success":true,"data":{"company":"Example","people":[]},"domain":"example.com","timestamp":"2026-01-02T03:04:05Z"}`), nil
	})

	cd, err := c.LookupCompany(context.Background(), "tok", "example.com")
	require.NoError(t, err)
	require.Equal(t, "example.com", cd.Domain)
	require.Equal(t, "{\n  \"company\": \"Example\",\n  \"people\": []\n}", cd.Output)
	require.Equal(t, 2026, cd.Timestamp.Year())
}

func TestClient_Permute_multipart(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/permute", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "Jane", r.FormValue("firstName"))
		require.Equal(t, "example.com", r.FormValue("domain"))
		require.Equal(t, "auto", r.FormValue("mode"))
		require.Equal(t, "true", r.FormValue("useNickName"))
		require.Equal(t, "JD", r.FormValue("nickName"))
		require.Equal(t, "false", r.FormValue("usePersonalInfo"))
		require.Equal(t, "false", r.FormValue("useCustomNames"))
		_, hasNames := r.MultipartForm.Value["selectedCustomNames"]
		require.False(t, hasNames)

		var company domain.CompanyData
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("webhookResponse")), &company))
		require.Equal(t, "{}", company.Output)

		fh := r.MultipartForm.File["domainFile"]
		require.Len(t, fh, 1)
		require.Equal(t, "domains.txt", fh[0].Filename)

		return jsonResponse(http.StatusOK, `{"success":true,"emails":[{"email":"jane@example.com","confidence":90},"JANE@example.com","j.doe@example.com"]}`), nil
	})

	form := domain.NewFormData()
	form.FirstName = "Jane"
	form.Domain = "example.com"
	form.UseNickName = true
	form.NickName = "JD"
	form.DomainFile = &domain.UploadedFile{Name: "domains.txt", Content: []byte("example.com\n")}

	res, err := c.Permute(context.Background(), "tok", backend.PermuteRequest{Form: form, Company: &domain.CompanyData{Output: "{}"}})
	require.NoError(t, err)
	require.Equal(t, []domain.EmailWithConfidence{
		{Email: "jane@example.com", Confidence: 90},
		{Email: "j.doe@example.com"},
	}, res.Emails)
}

func TestClient_DiscoverySession(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		switch r.URL.Path {
		case "/api/email-discovery/start":
			var req backend.StartDiscoveryRequest
			decodeBody(t, r, &req)
			require.Equal(t, []string{"example.com"}, req.Domains)
			require.Equal(t, "Jane", req.InputData.FirstName)

			return jsonResponse(http.StatusOK, `{"success":true,"data":{"sessionId":"s-1","domains":["example.com"]}}`), nil
		case "/api/email-discovery/session/s-1/domain/0/process":
			require.Equal(t, http.MethodPost, r.Method)

			return jsonResponse(http.StatusOK, `{"success":true,"data":{"domain":"example.com","status":"completed","emailCount":2}}`), nil
		case "/api/email-discovery/session/s-1/emails":
			require.Equal(t, http.MethodGet, r.Method)

			return jsonResponse(http.StatusOK, `{"success":true,"data":{"emails":[{"email":"a@example.com","confidence":"80"},{"email":"b@example.com","confidence":40}]}}`), nil
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)

			return nil, nil
		}
	})
	ctx := context.Background()

	s, err := c.StartDiscovery(ctx, "tok", backend.StartDiscoveryRequest{
		Domains:   []string{"example.com"},
		InputData: backend.InputData{FirstName: "Jane"},
	})
	require.NoError(t, err)
	require.Equal(t, "s-1", s.ID)

	p, err := c.ProcessDomain(ctx, "tok", s.ID, 0)
	require.NoError(t, err)
	require.Equal(t, domain.DomainCompleted, p.Status)
	require.Equal(t, 2, p.EmailCount)

	res, err := c.SessionEmails(ctx, "tok", s.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.EmailWithConfidence{
		{Email: "a@example.com", Confidence: 80},
		{Email: "b@example.com", Confidence: 40},
	}, res.Emails)
}

func TestClient_Verify(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		switch r.URL.Path {
		case "/api/smart-verify":
			var req backend.SmartVerifyRequest
			decodeBody(t, r, &req)
			require.Equal(t, 1, req.MaxEmails)

			return jsonResponse(http.StatusOK, `{"success":true,"results":[{"email":"a@example.com","reachable":"yes","smtp":{"deliverable":true}}],"usageStats":{"emailsVerified":1,"totalCost":0.01},"createdDocument":"doc-1"}`), nil
		case "/api/email-verification/bulk-verify":
			var body map[string][]string
			decodeBody(t, r, &body)
			require.Equal(t, []string{"a@example.com"}, body["emails"])

			return jsonResponse(http.StatusOK, `{"success":true,"data":{"results":[{"email":"a@example.com","reachable":"no"}]}}`), nil
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)

			return nil, nil
		}
	})

	smart, err := c.SmartVerify(context.Background(), "tok", backend.SmartVerifyRequest{MaxEmails: 1})
	require.NoError(t, err)
	require.Len(t, smart.Results, 1)
	require.True(t, smart.Results[0].SMTP.Deliverable)
	require.Equal(t, "doc-1", smart.CreatedDocument)
	require.Equal(t, 1, smart.UsageStats.EmailsVerified)

	bulk, err := c.BulkVerify(context.Background(), "tok", []string{"a@example.com"})
	require.NoError(t, err)
	require.Equal(t, domain.ReachableNo, bulk.Results[0].Reachable)
}

func TestClient_History(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		switch {
		case r.URL.Path == "/api/email-generation/sessions":
			require.Equal(t, "10", r.URL.Query().Get("limit"))
			require.Equal(t, "20", r.URL.Query().Get("skip"))

			return jsonResponse(http.StatusOK, `{"success":true,"data":[{"_id":"s1","sessionId":"abc","generatedEmails":[{"email":"a@x.com","confidence":70}]}],"pagination":{"total":21}}`), nil
		case r.URL.Path == "/api/email-generation/statistics":
			return jsonResponse(http.StatusOK, `{"success":true,"data":{"totalSessions":3,"uniqueDomains":2}}`), nil
		case r.URL.Path == "/api/email-generation/sessions/s1" && r.Method == http.MethodDelete:
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		case r.URL.Path == "/api/email-generation/export/s1":
			return jsonResponse(http.StatusOK, `{"session":"s1"}`), nil
		case r.URL.Path == "/api/email-generation/export-bulk":
			resp := jsonResponse(http.StatusOK, `[{"session":"s1"}]`)
			resp.Header.Set("Content-Disposition", `attachment; filename="history.json"`)

			return resp, nil
		default:
			return jsonResponse(http.StatusNotFound, `{"message":"no route"}`), nil
		}
	})
	ctx := context.Background()

	page, err := c.ListSessions(ctx, "tok", 10, 20)
	require.NoError(t, err)
	require.Len(t, page.Sessions, 1)
	require.Equal(t, "abc", page.Sessions[0].SessionID)
	require.Equal(t, domain.Pagination{Total: 21, Limit: 10, Skip: 20}, page.Pagination)
	require.False(t, page.Pagination.HasMore())

	st, err := c.Statistics(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, 3, st.TotalSessions)

	require.NoError(t, c.DeleteSession(ctx, "tok", "s1"))
	require.ErrorIs(t, c.DeleteSession(ctx, "tok", "missing"), serrors.ErrNotFound)

	exp, err := c.ExportSession(ctx, "tok", "s1")
	require.NoError(t, err)
	require.Equal(t, "email-generation-s1.json", exp.Filename)
	require.JSONEq(t, `{"session":"s1"}`, string(exp.Data))

	bulk, err := c.ExportSessions(ctx, "tok", []string{"s1"})
	require.NoError(t, err)
	require.Equal(t, "history.json", bulk.Filename)
}

func TestClient_Health(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/api/health", r.URL.Path)

		return jsonResponse(http.StatusServiceUnavailable, `{"message":"db down"}`), nil
	})

	err := c.Health(context.Background())
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.EqualError(t, err, "db down")
}
