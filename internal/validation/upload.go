package validation

import (
	"mime"
	"path/filepath"
	"strings"

	"emailfinder/pkg/serrors"
)

// MaxUploadSize is the largest accepted domain list.
const MaxUploadSize = 5 << 20

var (
	ErrFileTooLarge    = serrors.With(serrors.ErrBadRequest, "File size must be less than 5MB")
	ErrInvalidFileType = serrors.With(serrors.ErrBadRequest, "Only .txt files are allowed")
)

// ValidateUpload checks a domain list upload against maxSize (MaxUploadSize
// when zero or negative) and requires a text/plain media type. A missing or
// generic content type is inferred from the file extension.
func ValidateUpload(name, contentType string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	if size > maxSize {
		return ErrFileTooLarge
	}

	if contentType == "" || contentType == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".txt" {
			contentType = "text/plain"
		} else {
			contentType = mime.TypeByExtension(ext)
		}
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "text/plain" {
		return ErrInvalidFileType
	}

	return nil
}

// ParseDomainList extracts domains from an uploaded list: one per line, blank
// lines and '#' comments skipped, lines without a dot dropped, lowercased and
// deduplicated in first-seen order.
func ParseDomainList(content string) []string {
	seen := make(map[string]struct{})
	domains := make([]string, 0)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, ".") {
			continue
		}

		line = strings.ToLower(line)
		if _, ok := seen[line]; ok {
			continue
		}

		seen[line] = struct{}{}
		domains = append(domains, line)
	}

	return domains
}
