package discovery

import "emailfinder/pkg/serrors"

// Messages shown next to the domain field.
const (
	MsgInvalidDomain  = "Invalid domain format. Please enter a valid domain (e.g., example.com)"
	MsgDomainNotFound = "Domain does not exist or is not accessible. Please check the domain name."
)

var (
	ErrNothingToVerify  = serrors.With(serrors.ErrBadRequest, "No emails to verify")
	ErrNoInput          = serrors.With(serrors.ErrBadRequest, "Please provide a domain or upload a domain file")
	ErrValidationActive = serrors.With(serrors.ErrBadRequest, "Please wait for domain validation to complete")
	ErrInvalidDomain    = serrors.With(serrors.ErrBadRequest, "Please enter a valid and existing domain")
	ErrRunInProgress    = serrors.With(serrors.ErrConflict, "A discovery run is already in progress")
	ErrEmptyDomainFile  = serrors.With(serrors.ErrBadRequest, "The uploaded file does not contain any domains")
	ErrInvalidName      = serrors.With(serrors.ErrBadRequest, "Names may only contain letters, spaces, hyphens and apostrophes")
)

// Messages stored on the workflow when a run fails.
const (
	MsgLookupFailed     = "Failed to fetch company data. Please try again."
	MsgGenerationFailed = "Failed to generate emails. Please try again."
	MsgVerifyFailed     = "Failed to verify emails. Please try again."
	// MsgProcessingFailed is the per-domain error when the backend gave no reason.
	MsgProcessingFailed = "Processing failed"
)
