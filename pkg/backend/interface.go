// Package backend defines the operations the front-end needs from the email
// discovery backend and the data shapes exchanged with it. Authenticated
// calls take the caller's bearer token explicitly.
package backend

import (
	"context"

	"emailfinder/pkg/domain"
)

// InputData is the generation input echoed to discovery and verification
// endpoints so the backend can persist it with the session.
type InputData struct {
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	MiddleName          string   `json:"middleName"`
	NickName            string   `json:"nickName"`
	Domain              string   `json:"domain"`
	UseNickName         bool     `json:"useNickName"`
	UseCustomNames      bool     `json:"useCustomNames"`
	UsePersonalInfo     bool     `json:"usePersonalInfo"`
	UseAdvancedEmails   bool     `json:"useAdvancedEmails"`
	SelectedCustomNames []string `json:"selectedCustomNames"`
	DomainsFromFile     []string `json:"domainsFromFile,omitempty"`
	Mode                string   `json:"mode,omitempty"`
}

// NewInputData copies the generation-relevant fields of form. Nick name and
// custom names are only sent when their toggles are on.
func NewInputData(form domain.FormData, domainName string, domainsFromFile []string) InputData {
	in := InputData{
		FirstName:           form.FirstName,
		LastName:            form.LastName,
		MiddleName:          form.MiddleName,
		Domain:              domainName,
		UseNickName:         form.UseNickName,
		UseCustomNames:      form.UseCustomNames,
		UsePersonalInfo:     form.UsePersonalInfo,
		UseAdvancedEmails:   form.UseAdvancedEmails,
		SelectedCustomNames: []string{},
		DomainsFromFile:     domainsFromFile,
		Mode:                form.Mode,
	}
	if form.UseNickName {
		in.NickName = form.NickName
	}
	if form.UseCustomNames {
		in.SelectedCustomNames = append(in.SelectedCustomNames, form.SelectedCustomNames...)
	}

	return in
}

// PermuteRequest is the input of the legacy single-request generation path.
type PermuteRequest struct {
	Form    domain.FormData
	Company *domain.CompanyData
}

// PermuteResult is the normalized output of any generation endpoint. Emails is
// the flattened, deduplicated list; DomainResults is set when the backend
// reported per-domain outcomes.
type PermuteResult struct {
	Emails        []domain.EmailWithConfidence
	DomainResults []domain.DomainResult
}

// StartDiscoveryRequest opens a backend discovery session.
type StartDiscoveryRequest struct {
	Domains   []string            `json:"domains"`
	InputData InputData           `json:"inputData"`
	Company   *domain.CompanyData `json:"webhookResponse,omitempty"`
}

// ProcessedDomain is the backend's report after processing one domain.
type ProcessedDomain struct {
	Domain     string              `json:"domain"`
	Status     domain.DomainStatus `json:"status"`
	EmailCount int                 `json:"emailCount"`
	Error      string              `json:"error,omitempty"`
}

// SmartVerifyRequest asks the backend to verify the most promising emails.
type SmartVerifyRequest struct {
	EmailsWithConfidence []domain.EmailWithConfidence `json:"emailsWithConfidence"`
	MaxEmails            int                          `json:"maxEmails"`
	AllGeneratedEmails   []domain.EmailWithConfidence `json:"allGeneratedEmails"`
	InputData            InputData                    `json:"inputData"`
}

// VerifyResult is the outcome of a verification request.
type VerifyResult struct {
	Results         []domain.EmailVerificationResult `json:"results"`
	UsageStats      *domain.UsageStats               `json:"usageStats,omitempty"`
	CreatedDocument string                           `json:"createdDocument,omitempty"`
}

// Client is the full backend surface used by the application.
//
//go:generate mockgen -package mockbackend -source=interface.go -destination=mock/mockbackend.go *
type Client interface {
	// Health reports whether the backend answers its health endpoint.
	Health(ctx context.Context) error

	Register(ctx context.Context, reg domain.Registration) (domain.Session, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, reset domain.PasswordReset) error
	Me(ctx context.Context, token string) (domain.User, error)
	UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, token string, change domain.PasswordChange) error

	// LookupCompany runs the AI-assisted company research for domain.
	LookupCompany(ctx context.Context, token, domainName string) (domain.CompanyData, error)
	// Permute is the legacy single-request generation endpoint.
	Permute(ctx context.Context, token string, req PermuteRequest) (PermuteResult, error)
	StartDiscovery(ctx context.Context, token string, req StartDiscoveryRequest) (domain.DiscoverySession, error)
	ProcessDomain(ctx context.Context, token, sessionID string, index int) (ProcessedDomain, error)
	SessionEmails(ctx context.Context, token, sessionID string) (PermuteResult, error)
	SmartVerify(ctx context.Context, token string, req SmartVerifyRequest) (VerifyResult, error)
	BulkVerify(ctx context.Context, token string, emails []string) (VerifyResult, error)

	ListSessions(ctx context.Context, token string, limit, skip int) (domain.SessionPage, error)
	Statistics(ctx context.Context, token string) (domain.UserStatistics, error)
	DeleteSession(ctx context.Context, token, id string) error
	ExportSession(ctx context.Context, token, id string) (domain.Export, error)
	ExportSessions(ctx context.Context, token string, ids []string) (domain.Export, error)
}
