package domain

import (
	"encoding/json"
	"time"
)

// GenerationSession is a past generation run stored by the backend.
// InputData and ProcessingMetadata are backend-defined documents kept raw.
type GenerationSession struct {
	ID                  string                    `json:"_id"`
	SessionID           string                    `json:"sessionId"`
	InputData           json.RawMessage           `json:"inputData,omitempty"`
	GeneratedEmails     []EmailWithConfidence     `json:"generatedEmails"`
	ProcessingMetadata  json.RawMessage           `json:"processingMetadata,omitempty"`
	VerificationResults []EmailVerificationResult `json:"verificationResults,omitempty"`
	Statistics          SessionStatistics         `json:"statistics"`
	CreatedAt           time.Time                 `json:"createdAt"`
	UpdatedAt           time.Time                 `json:"updatedAt"`
}

// SessionStatistics summarizes a single generation session.
type SessionStatistics struct {
	TotalGenerated    int     `json:"totalGenerated"`
	TotalVerified     int     `json:"totalVerified"`
	TotalDeliverable  int     `json:"totalDeliverable"`
	AverageConfidence float64 `json:"averageConfidence"`
	TotalCost         float64 `json:"totalCost"`
}

// UserStatistics aggregates every session of a user.
type UserStatistics struct {
	TotalSessions     int     `json:"totalSessions"`
	TotalEmails       int     `json:"totalEmails"`
	TotalVerified     int     `json:"totalVerified"`
	TotalDeliverable  int     `json:"totalDeliverable"`
	TotalCost         float64 `json:"totalCost"`
	AverageConfidence float64 `json:"averageConfidence"`
	UniqueDomains     int     `json:"uniqueDomains"`
}

// Pagination describes a page of a listing.
type Pagination struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// HasMore reports whether another page follows this one.
func (p Pagination) HasMore() bool {
	return p.Skip+p.Limit < p.Total
}

// SessionPage is one page of generation history.
type SessionPage struct {
	Sessions   []GenerationSession `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// Export is a downloadable JSON document.
type Export struct {
	Filename string
	Data     []byte
}
