package domain

// Confidence tiers, inclusive lower bounds.
const (
	HighConfidence   = 75
	MediumConfidence = 50
	LowConfidence    = 25
)

// EmailWithConfidence is a generated candidate address with a 0-100 score.
type EmailWithConfidence struct {
	Email      string  `json:"email"`
	Confidence float64 `json:"confidence"`
}

// ConfidenceLevel names the tier a confidence score falls into.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= HighConfidence:
		return "High"
	case confidence >= MediumConfidence:
		return "Medium"
	case confidence >= LowConfidence:
		return "Low"
	default:
		return "Very Low"
	}
}

// Reachability values reported by the verifier.
const (
	ReachableUnknown = "unknown"
	ReachableYes     = "yes"
	ReachableNo      = "no"
)

// EmailVerificationResult is the verifier's report for a single address. It is
// passed through to clients without interpretation beyond Reachable.
type EmailVerificationResult struct {
	Email     string `json:"email"`
	Reachable string `json:"reachable"`
	Syntax    struct {
		Username string `json:"username"`
		Domain   string `json:"domain"`
		Valid    bool   `json:"valid"`
	} `json:"syntax"`
	SMTP struct {
		HostExists  bool `json:"host_exists"`
		FullInbox   bool `json:"full_inbox"`
		CatchAll    bool `json:"catch_all"`
		Deliverable bool `json:"deliverable"`
		Disabled    bool `json:"disabled"`
	} `json:"smtp"`
	Gravatar           any     `json:"gravatar,omitempty"`
	Suggestion         string  `json:"suggestion,omitempty"`
	Disposable         bool    `json:"disposable"`
	RoleAccount        bool    `json:"role_account"`
	Free               bool    `json:"free"`
	HasMXRecords       bool    `json:"has_mx_records"`
	VerificationMethod string  `json:"verificationMethod,omitempty"`
	Cost               float64 `json:"cost,omitempty"`
}

// EmailWithVerification is a candidate plus its verification state.
type EmailWithVerification struct {
	EmailWithConfidence
	Verification      *EmailVerificationResult `json:"verification,omitempty"`
	IsVerifying       bool                     `json:"isVerifying,omitempty"`
	VerificationError string                   `json:"verificationError,omitempty"`
}

// UsageStats is the verifier's billing summary for one request.
type UsageStats struct {
	EmailsVerified int     `json:"emailsVerified"`
	TotalCost      float64 `json:"totalCost"`
	Method         string  `json:"method,omitempty"`
}
