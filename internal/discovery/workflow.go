package discovery

import (
	"context"
	"slices"
	"sync"
	"time"

	"emailfinder/internal/config"
	"emailfinder/internal/validation"
	"emailfinder/pkg/domain"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/serrors"

	"go.uber.org/zap"
)

// State is a point-in-time copy of a Workflow.
type State struct {
	Form         domain.FormData                `json:"form"`
	Step         domain.Step                    `json:"step"`
	StepName     string                         `json:"stepName"`
	Emails       []domain.EmailWithVerification `json:"emails"`
	Company      *domain.CompanyData            `json:"companyData,omitempty"`
	Validation   *domain.DomainValidation       `json:"domainValidation,omitempty"`
	IsValidating bool                           `json:"isValidatingDomain"`
	IsRunning    bool                           `json:"isRunning"`
	Progress     *domain.MultiDomainProgress    `json:"multiDomainProgress,omitempty"`
	UsageStats   *domain.UsageStats             `json:"usageStats,omitempty"`
	Error        string                         `json:"error,omitempty"`
	UpdatedAt    time.Time                      `json:"updatedAt"`
}

// FormPatch updates several form fields at once. Nil fields are left alone.
type FormPatch struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	MiddleName        *string `json:"middleName"`
	NickName          *string `json:"nickName"`
	CustomName        *string `json:"customName"`
	UseNickName       *bool   `json:"useNickName"`
	UseCustomNames    *bool   `json:"useCustomNames"`
	UsePersonalInfo   *bool   `json:"usePersonalInfo"`
	UseAdvancedEmails *bool   `json:"useAdvancedEmails"`
	Mode              *string `json:"mode"`
}

// Form field names accepted by SetField.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldMiddleName = "middleName"
	FieldNickName   = "nickName"
	FieldCustomName = "customName"
)

// Workflow is the state of one user's discovery form. Runs happen outside the
// lock so Snapshot can be polled while a submit or verify is in flight.
type Workflow struct {
	mu      sync.Mutex
	svc     Service
	options WorkflowOptions
	now     func() time.Time
	state   State
}

// WorkflowOptions tune a Workflow. Zero values fall back to package defaults.
type WorkflowOptions struct {
	// MaxUploadSize is the largest accepted domain list in bytes.
	MaxUploadSize int64
	// VerifyCount must match the Service's Options.VerifyCount.
	VerifyCount int
}

func NewWorkflowOptions(cfg *config.Config) WorkflowOptions {
	return WorkflowOptions{
		MaxUploadSize: cfg.Discovery.MaxUploadSize,
		VerifyCount:   cfg.Discovery.VerifyCount,
	}
}

// NewWorkflow returns a workflow at the input step with a default form.
func NewWorkflow(svc Service, options WorkflowOptions) *Workflow {
	w := &Workflow{svc: svc, options: options, now: time.Now}
	w.state = State{Form: domain.NewFormData(), Step: domain.StepInput, Emails: []domain.EmailWithVerification{}}
	w.touch()

	return w
}

func (w *Workflow) touch() {
	w.state.UpdatedAt = w.now()
}

// clearResults drops everything derived from the previous input.
func (w *Workflow) clearResults() {
	w.state.Step = domain.StepInput
	w.state.Emails = []domain.EmailWithVerification{}
	w.state.Company = nil
	w.state.Progress = nil
	w.state.UsageStats = nil
	w.state.Error = ""
}

// Snapshot returns a copy safe to hand out.
func (w *Workflow) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.state
	s.StepName = s.Step.String()
	s.Form.SelectedCustomNames = slices.Clone(s.Form.SelectedCustomNames)
	if s.Form.DomainFile != nil {
		f := *s.Form.DomainFile
		s.Form.DomainFile = &f
	}
	s.Emails = slices.Clone(s.Emails)
	if s.Validation != nil {
		v := *s.Validation
		s.Validation = &v
	}
	if s.Progress != nil {
		p := copyProgress(*s.Progress)
		s.Progress = &p
	}

	return s
}

// Running reports whether a submit or verify is in flight.
func (w *Workflow) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state.IsRunning
}

// SetField sets one free-text field after sanitizing it.
func (w *Workflow) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if name == FieldCustomName {
		w.state.Form.CustomName = validation.SanitizeCustomName(value)
		w.touch()

		return nil
	}

	v := validation.SanitizeName(value)
	if !validation.ValidateName(v) {
		return ErrInvalidName
	}

	switch name {
	case FieldFirstName:
		w.state.Form.FirstName = v
	case FieldLastName:
		w.state.Form.LastName = v
	case FieldMiddleName:
		w.state.Form.MiddleName = v
	case FieldNickName:
		w.state.Form.NickName = v
	default:
		return serrors.With(serrors.ErrBadRequest, "Unknown form field %q", name)
	}
	w.touch()

	return nil
}

// ApplyPatch applies every set field of p, stopping at the first invalid one.
func (w *Workflow) ApplyPatch(p FormPatch) error {
	fields := []struct {
		name  string
		value *string
	}{
		{FieldFirstName, p.FirstName},
		{FieldLastName, p.LastName},
		{FieldMiddleName, p.MiddleName},
		{FieldNickName, p.NickName},
		{FieldCustomName, p.CustomName},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := w.SetField(f.name, *f.value); err != nil {
			return err
		}
	}

	if p.UseNickName != nil {
		w.SetUseNickName(*p.UseNickName)
	}
	if p.UseCustomNames != nil {
		w.SetUseCustomNames(*p.UseCustomNames)
	}
	if p.UsePersonalInfo != nil {
		w.SetUsePersonalInfo(*p.UsePersonalInfo)
	}
	if p.UseAdvancedEmails != nil {
		w.SetUseAdvancedEmails(*p.UseAdvancedEmails)
	}
	if p.Mode != nil {
		w.SetMode(*p.Mode)
	}

	return nil
}

// SetDomain normalizes raw, resets the workflow to the input step and
// validates the result. The existence check runs without holding the lock and
// is discarded when the domain changed in the meantime. The form cannot change
// while a run is in flight.
func (w *Workflow) SetDomain(ctx context.Context, raw string) (domain.DomainValidation, error) {
	d := validation.SanitizeDomain(validation.ExtractDomain(raw))

	w.mu.Lock()
	if w.state.IsRunning {
		w.mu.Unlock()

		return domain.DomainValidation{}, ErrRunInProgress
	}
	w.state.Form.Domain = d
	w.clearResults()
	w.state.Validation = nil
	w.state.IsValidating = false
	w.touch()

	if err := validation.ValidateDomainRealTime(d); err != nil {
		v := domain.DomainValidation{Domain: d, Error: serrors.MessageOf(err, MsgInvalidDomain)}
		if d == "" {
			v.Error = ""
		}
		w.state.Validation = &v
		w.mu.Unlock()

		return v, nil
	}

	w.state.IsValidating = true
	w.mu.Unlock()

	v := w.svc.CheckDomain(ctx, d)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Form.Domain == d {
		w.state.Validation = &v
		w.state.IsValidating = false
		w.touch()
	}

	return v, nil
}

// SetFile validates and stores an uploaded domain list and returns the domains
// it contains.
func (w *Workflow) SetFile(name, contentType string, content []byte) ([]string, error) {
	if err := validation.ValidateUpload(name, contentType, int64(len(content)), w.options.MaxUploadSize); err != nil {
		return nil, err
	}

	domains := validation.ParseDomainList(string(content))
	if len(domains) == 0 {
		return nil, ErrEmptyDomainFile
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsRunning {
		return nil, ErrRunInProgress
	}
	w.state.Form.DomainFile = &domain.UploadedFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}
	w.clearResults()
	w.touch()

	return domains, nil
}

// ClearFile removes the uploaded domain list.
func (w *Workflow) ClearFile() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsRunning {
		return ErrRunInProgress
	}
	w.state.Form.DomainFile = nil
	w.clearResults()
	w.touch()

	return nil
}

// AddCustomName selects name, or the pending custom name when name is empty.
// It reports whether the selection changed.
func (w *Workflow) AddCustomName(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if name == "" {
		name = w.state.Form.CustomName
	}
	name = validation.SanitizeCustomName(name)
	if name == "" || slices.Contains(w.state.Form.SelectedCustomNames, name) {
		return false
	}

	w.state.Form.SelectedCustomNames = append(w.state.Form.SelectedCustomNames, name)
	w.state.Form.CustomName = ""
	w.touch()

	return true
}

// RemoveCustomName deselects name.
func (w *Workflow) RemoveCustomName(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	name = validation.SanitizeCustomName(name)
	i := slices.Index(w.state.Form.SelectedCustomNames, name)
	if i < 0 {
		return false
	}

	w.state.Form.SelectedCustomNames = slices.Delete(w.state.Form.SelectedCustomNames, i, i+1)
	w.touch()

	return true
}

// ToggleCustomName flips the selection of name and returns whether it is now selected.
func (w *Workflow) ToggleCustomName(name string) bool {
	if w.RemoveCustomName(name) {
		return false
	}

	return w.AddCustomName(name)
}

func (w *Workflow) setFlag(flag *bool, v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	*flag = v
	w.touch()
}

func (w *Workflow) SetUseNickName(v bool)       { w.setFlag(&w.state.Form.UseNickName, v) }
func (w *Workflow) SetUseCustomNames(v bool)    { w.setFlag(&w.state.Form.UseCustomNames, v) }
func (w *Workflow) SetUsePersonalInfo(v bool)   { w.setFlag(&w.state.Form.UsePersonalInfo, v) }
func (w *Workflow) SetUseAdvancedEmails(v bool) { w.setFlag(&w.state.Form.UseAdvancedEmails, v) }

// SetMode sets the generation mode. Empty means auto.
func (w *Workflow) SetMode(mode string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if mode == "" {
		mode = domain.ModeAuto
	}
	w.state.Form.Mode = mode
	w.touch()
}

// Reset returns to an empty form at the input step.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsRunning {
		return ErrRunInProgress
	}
	w.state.Form = domain.NewFormData()
	w.state.Validation = nil
	w.state.IsValidating = false
	w.clearResults()
	w.touch()

	return nil
}

type runFunc func(ctx context.Context, token string) error

// Submit validates the form and runs generation to completion.
func (w *Workflow) Submit(ctx context.Context, token string) error {
	run, err := w.beginSubmit()
	if err != nil {
		return err
	}

	return run(ctx, token)
}

// StartSubmit validates the form and runs generation in the background. The
// returned channel receives the outcome of the run.
func (w *Workflow) StartSubmit(ctx context.Context, token string) (<-chan error, error) {
	run, err := w.beginSubmit()
	if err != nil {
		return nil, err
	}

	return start(ctx, token, run), nil
}

// Verify verifies the first count generated emails. It is a no-op when
// nothing has been generated.
func (w *Workflow) Verify(ctx context.Context, token string, count int) error {
	run, err := w.beginVerify(count)
	if err != nil || run == nil {
		return err
	}

	return run(ctx, token)
}

// StartVerify is Verify in the background.
func (w *Workflow) StartVerify(ctx context.Context, token string, count int) (<-chan error, error) {
	run, err := w.beginVerify(count)
	if err != nil {
		return nil, err
	}
	if run == nil {
		done := make(chan error, 1)
		done <- nil

		return done, nil
	}

	return start(ctx, token, run), nil
}

func start(ctx context.Context, token string, run runFunc) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, token)
	}()

	return done
}

// fail records msg as the visible error and returns err.
func (w *Workflow) fail(err error, msg string) error {
	w.state.Error = msg
	w.touch()

	return err
}

func (w *Workflow) beginSubmit() (runFunc, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsRunning {
		return nil, ErrRunInProgress
	}

	form := w.state.Form
	switch {
	case form.Domain == "" && form.DomainFile == nil:
		return nil, w.fail(ErrNoInput, ErrNoInput.Message())
	case form.DomainFile == nil && w.state.IsValidating:
		return nil, w.fail(ErrValidationActive, ErrValidationActive.Message())
	case form.DomainFile == nil && (w.state.Validation == nil || !w.state.Validation.IsValid || !w.state.Validation.Exists):
		return nil, w.fail(ErrInvalidDomain, ErrInvalidDomain.Message())
	}

	form.SelectedCustomNames = slices.Clone(form.SelectedCustomNames)
	w.clearResults()
	w.state.IsRunning = true
	w.touch()

	if form.DomainFile != nil {
		domains := validation.ParseDomainList(string(form.DomainFile.Content))
		w.state.Step = domain.StepGenerating

		return func(ctx context.Context, token string) error {
			return w.runMultiDomain(ctx, token, form, domains)
		}, nil
	}

	w.state.Step = domain.StepResearch

	return func(ctx context.Context, token string) error {
		return w.runSingleDomain(ctx, token, form)
	}, nil
}

func (w *Workflow) finish() {
	w.state.IsRunning = false
	w.touch()
	w.mu.Unlock()
}

func withoutVerification(emails []domain.EmailWithConfidence) []domain.EmailWithVerification {
	out := make([]domain.EmailWithVerification, len(emails))
	for i, e := range emails {
		out[i] = domain.EmailWithVerification{EmailWithConfidence: e}
	}

	return out
}

func (w *Workflow) runSingleDomain(ctx context.Context, token string, form domain.FormData) error {
	ctx = logger.WithFields(ctx, zap.String("domain", form.Domain))
	logger.Info(ctx, "starting email discovery")

	company, err := w.svc.LookupCompany(ctx, token, form.Domain)
	if err != nil {
		logger.Error(ctx, "company lookup failed", zap.Error(err))
		w.mu.Lock()
		defer w.finish()
		w.state.Step = domain.StepInput

		return w.fail(err, MsgLookupFailed)
	}

	w.mu.Lock()
	w.state.Company = &company
	w.state.Step = domain.StepGenerating
	w.touch()
	w.mu.Unlock()

	res, err := w.svc.Generate(ctx, token, form, &company)

	w.mu.Lock()
	defer w.finish()
	if err != nil {
		logger.Error(ctx, "email generation failed", zap.Error(err))
		w.state.Step = domain.StepInput

		return w.fail(err, MsgGenerationFailed)
	}

	w.state.Emails = withoutVerification(res.Emails)
	w.state.Step = domain.StepResults
	logger.Info(ctx, "email discovery finished", zap.Int("emails", len(res.Emails)))

	return nil
}

func (w *Workflow) runMultiDomain(ctx context.Context, token string, form domain.FormData, domains []string) error {
	ctx = logger.WithFields(ctx, zap.Int("domains", len(domains)))
	logger.Info(ctx, "starting multi-domain discovery")

	w.mu.Lock()
	w.state.Step = domain.StepGenerating
	w.state.Progress = &domain.MultiDomainProgress{TotalDomains: len(domains), IsProcessing: true}
	w.touch()
	w.mu.Unlock()

	progress, emails, err := w.svc.ProcessDomains(ctx, token, form, domains, func(p domain.MultiDomainProgress) {
		w.mu.Lock()
		defer w.mu.Unlock()

		w.state.Progress = &p
		w.touch()
	})

	w.mu.Lock()
	defer w.finish()
	progress.IsProcessing = false
	w.state.Progress = &progress
	w.state.Emails = withoutVerification(emails)
	if err != nil {
		logger.Error(ctx, "multi-domain discovery failed", zap.Error(err))
		if len(emails) == 0 {
			w.state.Step = domain.StepInput
		} else {
			w.state.Step = domain.StepResults
		}

		return w.fail(err, MsgGenerationFailed)
	}

	w.state.Step = domain.StepResults
	logger.Info(ctx, "multi-domain discovery finished", zap.Int("emails", len(emails)))

	return nil
}

func (w *Workflow) beginVerify(count int) (runFunc, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsRunning {
		return nil, ErrRunInProgress
	}
	if len(w.state.Emails) == 0 {
		return nil, nil
	}

	form := w.state.Form
	emails := make([]domain.EmailWithConfidence, len(w.state.Emails))
	for i, e := range w.state.Emails {
		emails[i] = e.EmailWithConfidence
	}

	for i := range verifyLimit(count, w.options.VerifyCount, len(emails)) {
		w.state.Emails[i].IsVerifying = true
	}
	w.state.IsRunning = true
	w.state.Error = ""
	w.state.Step = domain.StepVerifying
	w.touch()

	return func(ctx context.Context, token string) error {
		verified, stats, err := w.svc.Verify(ctx, token, form, emails, count)

		w.mu.Lock()
		defer w.finish()
		w.state.Step = domain.StepResults
		if err != nil {
			logger.Error(ctx, "email verification failed", zap.Error(err))
			for i := range w.state.Emails {
				w.state.Emails[i].IsVerifying = false
			}

			return w.fail(err, MsgVerifyFailed)
		}

		w.state.Emails = verified
		w.state.UsageStats = stats

		return nil
	}, nil
}
