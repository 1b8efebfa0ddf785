package v1handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"emailfinder/internal/api/handler/v1handler"
	"emailfinder/internal/discovery"
	"emailfinder/pkg/backend"
	"emailfinder/pkg/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type uploadResponse struct {
	Domains  []string        `json:"domains"`
	Workflow discovery.State `json:"workflow"`
}

func (e *testEnv) upload(t *testing.T, name string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := e.request(http.MethodPost, "/workflow/file", io.Reader(&body))
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func (e *testEnv) validateDomain(t *testing.T, raw, d string) {
	t.Helper()

	e.discovery.EXPECT().CheckDomain(gomock.Any(), d).
		Return(domain.DomainValidation{IsValid: true, Exists: true, Domain: d})

	rec := e.do(http.MethodPost, "/workflow/domain", map[string]string{"domain": raw})
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[discovery.State](t, rec)
	require.Equal(t, d, state.Form.Domain)
	require.NotNil(t, state.Validation)
	require.True(t, state.Validation.Exists)
}

func TestWorkflow_RequiresSession(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})

	rec := env.do(http.MethodGet, "/workflow/", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Please sign in to continue.", decode[v1handler.Error](t, rec).Message)
}

func TestWorkflow_DefaultState(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")

	rec := env.do(http.MethodGet, "/workflow/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[discovery.State](t, rec)
	require.Equal(t, domain.StepInput, state.Step)
	require.Equal(t, "input", state.StepName)
	require.Equal(t, domain.DefaultCustomNames(), state.Form.SelectedCustomNames)
	require.Equal(t, domain.ModeAuto, state.Form.Mode)
	require.Empty(t, state.Emails)
}

func TestWorkflow_UpdateForm(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")

	rec := env.do(http.MethodPut, "/workflow/form", map[string]any{
		"firstName":   "  Jane ",
		"lastName":    "Doe",
		"useNickName": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[discovery.State](t, rec)
	require.Equal(t, "Jane", state.Form.FirstName)
	require.Equal(t, "Doe", state.Form.LastName)
	require.True(t, state.Form.UseNickName)
}

func TestWorkflow_CustomNames(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")

	rec := env.do(http.MethodPost, "/workflow/custom-names", map[string]string{"name": "ceo"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, decode[discovery.State](t, rec).Form.SelectedCustomNames, "ceo")

	rec = env.do(http.MethodPost, "/workflow/custom-names/ceo/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decode[struct {
		Selected bool            `json:"selected"`
		Workflow discovery.State `json:"workflow"`
	}](t, rec)
	require.False(t, toggled.Selected)
	require.NotContains(t, toggled.Workflow.Form.SelectedCustomNames, "ceo")

	rec = env.do(http.MethodDelete, "/workflow/custom-names/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, decode[discovery.State](t, rec).Form.SelectedCustomNames, "info")
}

func TestSubmit_NoInput(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")

	rec := env.do(http.MethodPost, "/workflow/submit", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Please provide a domain or upload a domain file", decode[v1handler.Error](t, rec).Message)
}

func TestSubmit_SingleDomainWait(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{RunTimeout: time.Minute})
	env.signIn(t, "t1")
	env.validateDomain(t, "https://www.acme.com/about", "acme.com")

	company := domain.CompanyData{Domain: "acme.com", Output: "{}"}
	found := []domain.EmailWithConfidence{{Email: "jane@acme.com", Confidence: 90}, {Email: "j.doe@acme.com", Confidence: 60}}
	env.discovery.EXPECT().LookupCompany(gomock.Any(), "t1", "acme.com").Return(company, nil)
	env.discovery.EXPECT().Generate(gomock.Any(), "t1", gomock.Any(), &company).
		Return(backend.PermuteResult{Emails: found}, nil)

	rec := env.do(http.MethodPost, "/workflow/submit?wait=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	state := decode[discovery.State](t, rec)
	require.Equal(t, domain.StepResults, state.Step)
	require.False(t, state.IsRunning)
	require.Len(t, state.Emails, 2)
	require.Equal(t, "jane@acme.com", state.Emails[0].Email)

	verified := []domain.EmailWithVerification{
		{EmailWithConfidence: found[0], Verification: &domain.EmailVerificationResult{Email: "jane@acme.com", Reachable: domain.ReachableYes}},
		{EmailWithConfidence: found[1]},
	}
	env.discovery.EXPECT().Verify(gomock.Any(), "t1", gomock.Any(), found, 1).
		Return(verified, &domain.UsageStats{}, nil)

	rec = env.do(http.MethodPost, "/workflow/verify?wait=true", map[string]int{"count": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	state = decode[discovery.State](t, rec)
	require.Equal(t, domain.StepResults, state.Step)
	require.NotNil(t, state.Emails[0].Verification)
	require.Equal(t, domain.ReachableYes, state.Emails[0].Verification.Reachable)
}

func TestSubmit_RunContext(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		hasDeadline bool
	}{
		{name: "bounded by run timeout", timeout: time.Minute, hasDeadline: true},
		{name: "unbounded", timeout: 0, hasDeadline: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, v1handler.Options{RunTimeout: tt.timeout})
			env.signIn(t, "t1")
			env.validateDomain(t, "acme.com", "acme.com")

			var runCtx context.Context
			env.discovery.EXPECT().LookupCompany(gomock.Any(), "t1", "acme.com").DoAndReturn(
				func(ctx context.Context, _, _ string) (domain.CompanyData, error) {
					runCtx = ctx
					_, ok := ctx.Deadline()
					require.Equal(t, tt.hasDeadline, ok)

					return domain.CompanyData{Domain: "acme.com"}, nil
				},
			)
			env.discovery.EXPECT().Generate(gomock.Any(), "t1", gomock.Any(), gomock.Any()).
				Return(backend.PermuteResult{}, nil)

			rec := env.do(http.MethodPost, "/workflow/submit?wait=true", nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			// released once the run is over
			require.ErrorIs(t, runCtx.Err(), context.Canceled)
		})
	}
}

func TestSubmit_LookupFailureWait(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")
	env.validateDomain(t, "acme.com", "acme.com")

	env.discovery.EXPECT().LookupCompany(gomock.Any(), "t1", "acme.com").
		Return(domain.CompanyData{}, errors.New("webhook down"))

	rec := env.do(http.MethodPost, "/workflow/submit?wait=true", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, discovery.MsgLookupFailed, decode[v1handler.Error](t, rec).Message)

	rec = env.do(http.MethodGet, "/workflow/", nil)
	state := decode[discovery.State](t, rec)
	require.Equal(t, domain.StepInput, state.Step)
	require.Equal(t, discovery.MsgLookupFailed, state.Error)
}

func TestSubmit_AsyncThenPoll(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{RunTimeout: time.Minute})
	env.signIn(t, "t1")

	rec := env.serve(env.upload(t, "domains.txt", []byte("# targets\nacme.com\nexample.org\nacme.com\n")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	up := decode[uploadResponse](t, rec)
	require.Equal(t, []string{"acme.com", "example.org"}, up.Domains)
	require.NotNil(t, up.Workflow.Form.DomainFile)
	require.Equal(t, "domains.txt", up.Workflow.Form.DomainFile.Name)

	release := make(chan struct{})
	emails := []domain.EmailWithConfidence{{Email: "jane@acme.com", Confidence: 80}}
	env.discovery.EXPECT().
		ProcessDomains(gomock.Any(), "t1", gomock.Any(), []string{"acme.com", "example.org"}, gomock.Any()).
		DoAndReturn(func(_ context.Context,
			_ string,
			_ domain.FormData,
			_ []string,
			onProgress discovery.ProgressFunc) (domain.MultiDomainProgress, []domain.EmailWithConfidence, error) {
			<-release
			p := domain.MultiDomainProgress{TotalDomains: 2, ProcessedDomains: 2}
			onProgress(p)

			return p, emails, nil
		})

	rec = env.do(http.MethodPost, "/workflow/submit", nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	state := decode[discovery.State](t, rec)
	require.True(t, state.IsRunning)
	require.Equal(t, domain.StepGenerating, state.Step)

	// a second submit while running is refused
	rec = env.do(http.MethodPost, "/workflow/submit", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	close(release)
	require.Eventually(t, func() bool {
		rec := env.do(http.MethodGet, "/workflow/", nil)

		return !decode[discovery.State](t, rec).IsRunning
	}, 5*time.Second, 10*time.Millisecond)

	state = decode[discovery.State](t, env.do(http.MethodGet, "/workflow/", nil))
	require.Equal(t, domain.StepResults, state.Step)
	require.Len(t, state.Emails, 1)
	require.NotNil(t, state.Progress)
	require.False(t, state.Progress.IsProcessing)
}

func TestUploadFile_Rejected(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")

	rec := env.serve(env.upload(t, "domains.csv", []byte("acme.com\n")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Only .txt files are allowed", decode[v1handler.Error](t, rec).Message)

	rec = env.serve(env.upload(t, "domains.txt", []byte("# nothing here\n")))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env = newTestEnv(t, v1handler.Options{MaxUploadSize: 16})
	env.signIn(t, "t1")
	rec = env.serve(env.upload(t, "domains.txt", bytes.Repeat([]byte("a.co\n"), 10)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "File size must be less than 5MB", decode[v1handler.Error](t, rec).Message)
}

func TestCheckDomain_RateLimited(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{LookupsPerMinute: 1})
	env.signIn(t, "t1")

	env.discovery.EXPECT().CheckDomain(gomock.Any(), "acme.com").
		Return(domain.DomainValidation{IsValid: true, Exists: true, Domain: "acme.com"})

	rec := env.do(http.MethodPost, "/domains/check", map[string]string{"domain": "acme.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[domain.DomainValidation](t, rec).Exists)

	rec = env.do(http.MethodPost, "/domains/check", map[string]string{"domain": "acme.com"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, v1handler.MsgTooManyRequests, decode[v1handler.Error](t, rec).Message)
}

func TestResetWorkflow(t *testing.T) {
	env := newTestEnv(t, v1handler.Options{})
	env.signIn(t, "t1")

	env.do(http.MethodPut, "/workflow/form", map[string]any{"firstName": "Jane"})

	rec := env.do(http.MethodPost, "/workflow/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[discovery.State](t, rec).Form.FirstName)
}
