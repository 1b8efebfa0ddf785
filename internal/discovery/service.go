package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"emailfinder/internal/config"
	"emailfinder/internal/validation"
	"emailfinder/pkg/backend"
	"emailfinder/pkg/dns"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/metrics"
	"emailfinder/pkg/serrors"

	"go.uber.org/zap"
)

// Options configure generation and verification.
type Options struct {
	// VerifyCount is how many emails are verified when Verify gets count <= 0.
	VerifyCount int
	// LegacyFallback enables the single-request /permute path when the
	// session-based discovery API is missing or down.
	LegacyFallback bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		VerifyCount:    cfg.Discovery.VerifyCount,
		LegacyFallback: cfg.Discovery.LegacyFallback,
	}
}

type service struct {
	options  Options
	backend  backend.Client
	resolver dns.Resolver
}

// startError marks a failure to open a discovery session.
type startError struct{ err error }

func (e startError) Error() string { return "could not start discovery session: " + e.err.Error() }
func (e startError) Unwrap() error { return e.err }

// isTopLevel reports whether err means the discovery API itself is missing or
// down, as opposed to a failure for one particular domain.
func isTopLevel(err error) bool {
	var se startError
	if !errors.As(err, &se) {
		return false
	}

	return errors.Is(se.err, serrors.ErrNotFound) || errors.Is(se.err, serrors.ErrUnavailable)
}

func (s service) CheckDomain(ctx context.Context, raw string) domain.DomainValidation {
	d := validation.SanitizeDomain(validation.ExtractDomain(raw))
	if !validation.ValidateDomainFormat(d) {
		return domain.DomainValidation{Domain: d, Error: MsgInvalidDomain}
	}

	exists, err := s.resolver.Exists(ctx, d)
	if err != nil {
		logger.Warn(ctx, "could not check domain existence", zap.String("domain", d), zap.Error(err))
	}
	if !exists {
		return domain.DomainValidation{IsValid: true, Domain: d, Error: MsgDomainNotFound}
	}

	return domain.DomainValidation{IsValid: true, Exists: true, Domain: d}
}

func (s service) LookupCompany(ctx context.Context, token, domainName string) (domain.CompanyData, error) {
	cd, err := s.backend.LookupCompany(ctx, token, domainName)
	if err != nil {
		return domain.CompanyData{}, fmt.Errorf("could not look up company: %w", err)
	}

	return cd, nil
}

// generateOne runs start, process and fetch for a single domain in its own
// discovery session.
func (s service) generateOne(ctx context.Context,
	token string,
	form domain.FormData,
	domainName string,
	company *domain.CompanyData) (backend.PermuteResult, error) {
	session, err := s.backend.StartDiscovery(ctx, token, backend.StartDiscoveryRequest{
		Domains:   []string{domainName},
		InputData: backend.NewInputData(form, domainName, nil),
		Company:   company,
	})
	if err != nil {
		return backend.PermuteResult{}, startError{err: err}
	}

	processed, err := s.backend.ProcessDomain(ctx, token, session.ID, 0)
	if err != nil {
		return backend.PermuteResult{}, fmt.Errorf("could not process domain: %w", err)
	}
	if processed.Status == domain.DomainError {
		msg := processed.Error
		if msg == "" {
			msg = MsgProcessingFailed
		}

		return backend.PermuteResult{}, serrors.With(serrors.ErrInternal, "%s", msg)
	}

	res, err := s.backend.SessionEmails(ctx, token, session.ID)
	if err != nil {
		return backend.PermuteResult{}, fmt.Errorf("could not fetch session emails: %w", err)
	}

	return res, nil
}

func (s service) Generate(ctx context.Context,
	token string,
	form domain.FormData,
	company *domain.CompanyData) (backend.PermuteResult, error) {
	res, err := s.generateOne(ctx, token, form, form.Domain, company)
	if err == nil {
		return res, nil
	}
	if !s.options.LegacyFallback || !isTopLevel(err) {
		return backend.PermuteResult{}, err
	}

	logger.Warn(ctx, "discovery API unavailable, using legacy generation", zap.Error(err))
	single := form
	single.DomainFile = nil
	res, err = s.backend.Permute(ctx, token, backend.PermuteRequest{Form: single, Company: company})
	if err != nil {
		return backend.PermuteResult{}, fmt.Errorf("could not generate emails: %w", err)
	}

	return res, nil
}

func (s service) ProcessDomains(ctx context.Context,
	token string,
	form domain.FormData,
	domains []string,
	onProgress ProgressFunc) (domain.MultiDomainProgress, []domain.EmailWithConfidence, error) {
	if onProgress == nil {
		onProgress = func(domain.MultiDomainProgress) {}
	}

	progress := domain.MultiDomainProgress{
		TotalDomains: len(domains),
		IsProcessing: true,
		Results:      make([]domain.DomainResult, 0, len(domains)),
	}
	all := newEmailSet()
	succeeded := 0

	for i, d := range domains {
		if err := ctx.Err(); err != nil {
			progress.IsProcessing = false
			progress.CurrentDomain = ""
			onProgress(copyProgress(progress))

			return progress, all.list, fmt.Errorf("domain processing interrupted: %w", err)
		}

		dctx := logger.WithFields(ctx, zap.String("domain", d), zap.Int("index", i))
		progress.CurrentDomain = d
		progress.CurrentDomainIndex = i
		progress.Results = append(progress.Results, domain.DomainResult{
			Domain:    d,
			Emails:    []domain.EmailWithConfidence{},
			Status:    domain.DomainProcessing,
			Timestamp: time.Now(),
		})
		onProgress(copyProgress(progress))

		result := &progress.Results[len(progress.Results)-1]
		res, err := s.generateOne(dctx, token, form, d, nil)
		switch {
		case err != nil && succeeded == 0 && s.options.LegacyFallback && isTopLevel(err):
			logger.Warn(dctx, "discovery API unavailable, using legacy generation for the whole list", zap.Error(err))

			return s.legacyBatch(ctx, token, form, domains, onProgress)
		case err != nil:
			logger.Warn(dctx, "could not process domain", zap.Error(err))
			result.Status = domain.DomainError
			result.Error = failureMessage(err)
		default:
			succeeded++
			result.Status = domain.DomainCompleted
			result.Emails = res.Emails
			all.add(res.Emails...)
		}
		result.Timestamp = time.Now()
		metrics.DomainsProcessed.WithLabelValues(string(result.Status)).Inc()

		progress.ProcessedDomains++
		onProgress(copyProgress(progress))
	}

	progress.IsProcessing = false
	progress.CurrentDomain = ""
	onProgress(copyProgress(progress))

	return progress, all.list, nil
}

// verifyLimit is how many of n emails a verify request covers: count, or
// defaultCount when count is not positive, at most n.
func verifyLimit(count, defaultCount, n int) int {
	if count <= 0 {
		count = defaultCount
	}
	if count <= 0 || count > n {
		count = n
	}

	return count
}

// failureMessage is the per-domain error shown to users. Only messages
// reported by the backend are passed through.
func failureMessage(err error) string {
	if errors.Is(err, serrors.ErrUnavailable) || errors.Is(err, serrors.ErrTimeout) {
		return MsgProcessingFailed
	}

	return serrors.MessageOf(err, MsgProcessingFailed)
}

// legacyBatch posts the whole list in one /permute request and maps the
// answer back onto per-domain results.
func (s service) legacyBatch(ctx context.Context,
	token string,
	form domain.FormData,
	domains []string,
	onProgress ProgressFunc) (domain.MultiDomainProgress, []domain.EmailWithConfidence, error) {
	progress := domain.MultiDomainProgress{TotalDomains: len(domains), Results: make([]domain.DomainResult, 0, len(domains))}

	res, err := s.backend.Permute(ctx, token, backend.PermuteRequest{Form: form})
	if err != nil {
		now := time.Now()
		for _, d := range domains {
			progress.Results = append(progress.Results, domain.DomainResult{
				Domain: d, Emails: []domain.EmailWithConfidence{}, Status: domain.DomainError,
				Error: failureMessage(err), Timestamp: now,
			})
		}
		progress.ProcessedDomains = len(domains)
		onProgress(copyProgress(progress))

		return progress, nil, fmt.Errorf("could not generate emails: %w", err)
	}

	if len(res.DomainResults) > 0 {
		progress.Results = append(progress.Results, res.DomainResults...)
	} else {
		progress.Results = append(progress.Results, groupByDomain(domains, res.Emails)...)
	}
	for _, r := range progress.Results {
		metrics.DomainsProcessed.WithLabelValues(string(r.Status)).Inc()
	}
	progress.ProcessedDomains = len(domains)
	onProgress(copyProgress(progress))

	return progress, res.Emails, nil
}

// groupByDomain assigns each email to the listed domain it belongs to.
func groupByDomain(domains []string, emails []domain.EmailWithConfidence) []domain.DomainResult {
	now := time.Now()
	byDomain := make(map[string][]domain.EmailWithConfidence, len(domains))
	for _, e := range emails {
		at := strings.LastIndex(e.Email, "@")
		if at < 0 {
			continue
		}
		d := strings.ToLower(e.Email[at+1:])
		byDomain[d] = append(byDomain[d], e)
	}

	results := make([]domain.DomainResult, 0, len(domains))
	for _, d := range domains {
		found := byDomain[d]
		if found == nil {
			found = []domain.EmailWithConfidence{}
		}
		results = append(results, domain.DomainResult{
			Domain: d, Emails: found, Status: domain.DomainCompleted, Timestamp: now,
		})
	}

	return results
}

func (s service) Verify(ctx context.Context,
	token string,
	form domain.FormData,
	emails []domain.EmailWithConfidence,
	count int) ([]domain.EmailWithVerification, *domain.UsageStats, error) {
	if len(emails) == 0 {
		return nil, nil, ErrNothingToVerify
	}
	count = verifyLimit(count, s.options.VerifyCount, len(emails))

	effectiveDomain := form.Domain
	if effectiveDomain == "" {
		if at := strings.LastIndex(emails[0].Email, "@"); at >= 0 {
			effectiveDomain = emails[0].Email[at+1:]
		}
	}

	var fromFile []string
	if form.DomainFile != nil {
		fromFile = validation.ParseDomainList(string(form.DomainFile.Content))
	}

	out := make([]domain.EmailWithVerification, len(emails))
	for i, e := range emails {
		out[i] = domain.EmailWithVerification{EmailWithConfidence: e}
	}

	rs, err := s.backend.SmartVerify(ctx, token, backend.SmartVerifyRequest{
		EmailsWithConfidence: emails[:count],
		MaxEmails:            count,
		AllGeneratedEmails:   emails,
		InputData:            backend.NewInputData(form, effectiveDomain, fromFile),
	})
	if err == nil {
		merge(out, rs.Results)

		return out, rs.UsageStats, nil
	}
	logger.Warn(ctx, "smart verification failed, falling back to bulk verification", zap.Error(err))

	addresses := make([]string, count)
	for i := range count {
		addresses[i] = emails[i].Email
	}
	rs, err = s.backend.BulkVerify(ctx, token, addresses)
	if err == nil {
		merge(out, rs.Results)

		return out, rs.UsageStats, nil
	}
	logger.Error(ctx, "bulk verification failed", zap.Error(err))

	msg := "Failed to verify: " + serrors.MessageOf(err, err.Error())
	for i := range count {
		out[i].VerificationError = msg
	}

	return out, nil, nil
}

// merge attaches results to the matching entries of out by address.
func merge(out []domain.EmailWithVerification, results []domain.EmailVerificationResult) {
	index := make(map[string]int, len(out))
	for i, e := range out {
		index[strings.ToLower(e.Email)] = i
	}

	for _, r := range results {
		i, ok := index[strings.ToLower(r.Email)]
		if !ok {
			continue
		}
		r := r
		out[i].Verification = &r
		out[i].VerificationError = ""
	}
}

type emailSet struct {
	seen map[string]struct{}
	list []domain.EmailWithConfidence
}

func newEmailSet() *emailSet {
	return &emailSet{seen: map[string]struct{}{}, list: []domain.EmailWithConfidence{}}
}

func (s *emailSet) add(emails ...domain.EmailWithConfidence) {
	for _, e := range emails {
		key := strings.ToLower(e.Email)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.list = append(s.list, e)
	}
}

func copyProgress(p domain.MultiDomainProgress) domain.MultiDomainProgress {
	p.Results = append([]domain.DomainResult(nil), p.Results...)

	return p
}

// New creates a Service that talks to client and checks domains with resolver.
func New(client backend.Client, resolver dns.Resolver, options Options) Service {
	return &service{
		options:  options,
		backend:  client,
		resolver: resolver,
	}
}
