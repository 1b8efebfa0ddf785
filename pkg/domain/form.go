package domain

// Step is a position in the linear discovery workflow.
type Step int

const (
	// StepInput is the form entry step.
	StepInput Step = 1
	// StepResearch is the AI-assisted company lookup.
	StepResearch Step = 2
	// StepGenerating is permutation-based email generation.
	StepGenerating Step = 3
	// StepResults displays generated (and possibly verified) emails.
	StepResults Step = 4
	// StepVerifying is shown while a verification request is in flight.
	StepVerifying Step = 5
)

func (s Step) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepResearch:
		return "research"
	case StepGenerating:
		return "generating"
	case StepResults:
		return "results"
	case StepVerifying:
		return "verifying"
	default:
		return "unknown"
	}
}

// ModeAuto is the only generation mode the backend currently understands.
const ModeAuto = "auto"

// DefaultCustomNames are the local parts preselected for custom-name generation.
func DefaultCustomNames() []string {
	return []string{"info", "contact", "team", "support", "hello", "admin", "sales", "help"}
}

// UploadedFile is a domain list provided as a plain-text upload.
type UploadedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Content     []byte `json:"-"`
}

// FormData is everything a user can enter on the input step.
type FormData struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	NickName   string `json:"nickName"`
	Domain     string `json:"domain"`
	// CustomName is the pending value of the "add custom name" input.
	CustomName string        `json:"customName"`
	DomainFile *UploadedFile `json:"domainFile,omitempty"`

	SelectedCustomNames []string `json:"selectedCustomNames"`
	UseNickName         bool     `json:"useNickName"`
	UseCustomNames      bool     `json:"useCustomNames"`
	UsePersonalInfo     bool     `json:"usePersonalInfo"`
	UseAdvancedEmails   bool     `json:"useAdvancedEmails"`
	Mode                string   `json:"mode"`
}

// NewFormData returns a form with the default custom names and mode.
func NewFormData() FormData {
	return FormData{
		SelectedCustomNames: DefaultCustomNames(),
		Mode:                ModeAuto,
	}
}

// DomainValidation is the outcome of checking a typed domain.
type DomainValidation struct {
	IsValid bool   `json:"isValid"`
	Exists  bool   `json:"exists"`
	Domain  string `json:"domain"`
	Error   string `json:"error,omitempty"`
}
