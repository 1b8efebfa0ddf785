package discovery

import (
	"context"

	"emailfinder/pkg/backend"
	"emailfinder/pkg/domain"
)

// ProgressFunc receives a snapshot after every state change of a
// multi-domain run. It is called synchronously from the run's goroutine.
type ProgressFunc func(domain.MultiDomainProgress)

// Service sequences backend calls for the discovery workflow. It holds no
// per-user state; see Workflow for that.
//
//go:generate mockgen -package mockdiscovery -source=interface.go -destination=mock/mockdiscovery.go *
type Service interface {
	// CheckDomain extracts, sanitizes and validates raw, then asks DNS
	// whether the domain exists.
	CheckDomain(ctx context.Context, raw string) domain.DomainValidation
	// LookupCompany runs the AI-assisted research for one domain.
	LookupCompany(ctx context.Context, token, domainName string) (domain.CompanyData, error)
	// Generate produces candidate emails for the single domain in form.
	Generate(ctx context.Context, token string, form domain.FormData, company *domain.CompanyData) (backend.PermuteResult, error)
	// ProcessDomains runs generation over domains one after another.
	ProcessDomains(ctx context.Context,
		token string,
		form domain.FormData,
		domains []string,
		onProgress ProgressFunc) (domain.MultiDomainProgress, []domain.EmailWithConfidence, error)
	// Verify verifies up to count of emails, falling back to bulk verification.
	Verify(ctx context.Context,
		token string,
		form domain.FormData,
		emails []domain.EmailWithConfidence,
		count int) ([]domain.EmailWithVerification, *domain.UsageStats, error)
}
