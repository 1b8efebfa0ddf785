package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"emailfinder/internal/cli"
	"emailfinder/pkg/domain"

	"github.com/stretchr/testify/require"
)

func emails() []domain.EmailWithVerification {
	return []domain.EmailWithVerification{
		{
			EmailWithConfidence: domain.EmailWithConfidence{Email: "jane@acme.com", Confidence: 92},
			Verification:        &domain.EmailVerificationResult{Reachable: domain.ReachableYes},
		},
		{EmailWithConfidence: domain.EmailWithConfidence{Email: "j.doe@acme.com", Confidence: 40}},
		{
			EmailWithConfidence: domain.EmailWithConfidence{Email: "doe@acme.com", Confidence: 10},
			VerificationError:   "Failed to verify: timeout",
		},
	}
}

func TestResultTable(t *testing.T) {
	out := cli.ResultTable(emails())

	for _, want := range []string{"EMAIL", "jane@acme.com", "92%", "High", "yes", "Low", "Very Low", "Failed to verify: timeout"} {
		require.Contains(t, out, want)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := cli.NewProgress(&buf, 20)

	line := p.Line(domain.MultiDomainProgress{TotalDomains: 4, ProcessedDomains: 1, CurrentDomain: "acme.com", IsProcessing: true})
	require.Contains(t, line, "1/4 domains")
	require.Contains(t, line, "acme.com")

	p.Update(domain.MultiDomainProgress{TotalDomains: 4, ProcessedDomains: 4})
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
	require.Contains(t, buf.String(), "4/4 domains")
}

func TestDomainSummary(t *testing.T) {
	out := cli.DomainSummary([]domain.DomainResult{
		{Domain: "acme.com", Status: domain.DomainCompleted, Emails: []domain.EmailWithConfidence{{Email: "a@acme.com"}}},
		{Domain: "nope.io", Status: domain.DomainError, Error: "not found"},
	})

	require.Contains(t, out, "acme.com")
	require.Contains(t, out, "1 emails")
	require.Contains(t, out, "not found")
}

func TestCopyEmails(t *testing.T) {
	var got string
	restore := cli.SetClipboard(func(s string) error {
		got = s

		return nil
	})
	defer restore()

	require.NoError(t, cli.CopyEmails(emails()))
	require.Equal(t, "jane@acme.com, j.doe@acme.com, doe@acme.com", got)

	cli.SetClipboard(func(string) error { return errors.New("no clipboard") })
	require.ErrorContains(t, cli.CopyEmails(emails()), "could not copy to clipboard")
}
