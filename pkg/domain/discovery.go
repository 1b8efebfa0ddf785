package domain

import "time"

// DomainStatus is the processing state of one domain in a multi-domain run.
type DomainStatus string

const (
	DomainPending    DomainStatus = "pending"
	DomainProcessing DomainStatus = "processing"
	DomainCompleted  DomainStatus = "completed"
	DomainError      DomainStatus = "error"
)

// CompanyData is the output of the AI-assisted company lookup. Output is the
// lookup payload re-encoded as indented JSON and is forwarded to generation
// untouched.
type CompanyData struct {
	Output    string    `json:"output"`
	Domain    string    `json:"domain"`
	Timestamp time.Time `json:"timestamp"`
}

// DomainResult is the outcome for one domain of a multi-domain run.
type DomainResult struct {
	Domain    string                `json:"domain"`
	Emails    []EmailWithConfidence `json:"emails"`
	Company   *CompanyData          `json:"webhookResponse,omitempty"`
	Status    DomainStatus          `json:"status"`
	Error     string                `json:"error,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// MultiDomainProgress tracks a sequential run over a domain list.
// CurrentDomainIndex is zero based.
type MultiDomainProgress struct {
	TotalDomains       int            `json:"totalDomains"`
	ProcessedDomains   int            `json:"processedDomains"`
	CurrentDomain      string         `json:"currentDomain"`
	CurrentDomainIndex int            `json:"currentDomainIndex"`
	IsProcessing       bool           `json:"isProcessing"`
	Results            []DomainResult `json:"results"`
}

// Percent returns the completed share in the range [0, 1].
func (p MultiDomainProgress) Percent() float64 {
	if p.TotalDomains == 0 {
		return 0
	}

	return float64(p.ProcessedDomains) / float64(p.TotalDomains)
}

// DiscoverySession is a backend-side discovery session over one or more domains.
type DiscoverySession struct {
	ID      string   `json:"sessionId"`
	Domains []string `json:"domains"`
	Status  string   `json:"status,omitempty"`
}
