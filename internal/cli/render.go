// Package cli renders discovery results for the terminal.
package cli

import (
	"fmt"
	"io"
	"strings"

	"emailfinder/pkg/domain"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// clipboardWriteAll is swapped in tests.
var clipboardWriteAll = clipboard.WriteAll //nolint:gochecknoglobals

//nolint:gochecknoglobals
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tierStyles  = map[string]lipgloss.Style{
		"High":     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"Medium":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"Low":      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		"Very Low": lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func reachable(e domain.EmailWithVerification) string {
	switch {
	case e.VerificationError != "":
		return e.VerificationError
	case e.Verification == nil:
		return "-"
	default:
		return e.Verification.Reachable
	}
}

// ResultTable renders emails with their confidence tier and, once verified,
// their reachability.
func ResultTable(emails []domain.EmailWithVerification) string {
	rows := make([][]string, 0, len(emails))
	for _, e := range emails {
		rows = append(rows, []string{
			e.Email,
			fmt.Sprintf("%.0f%%", e.Confidence),
			domain.ConfidenceLevel(e.Confidence),
			reachable(e),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("EMAIL", "CONFIDENCE", "TIER", "REACHABLE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 && row >= 0 && row < len(rows) {
				return cellStyle.Inherit(tierStyles[rows[row][2]])
			}

			return cellStyle
		})

	return t.Render()
}

// Progress draws a multi-domain run as a bar plus a status line.
type Progress struct {
	bar progress.Model
	out io.Writer
}

func NewProgress(out io.Writer, width int) *Progress {
	bar := progress.New(progress.WithDefaultGradient())
	if width > 0 {
		bar.Width = width
	}

	return &Progress{bar: bar, out: out}
}

// Line renders p without writing it.
func (p *Progress) Line(mp domain.MultiDomainProgress) string {
	status := fmt.Sprintf("%d/%d domains", mp.ProcessedDomains, mp.TotalDomains)
	if mp.IsProcessing && mp.CurrentDomain != "" {
		status += " · " + mp.CurrentDomain
	}

	return p.bar.ViewAs(mp.Percent()) + " " + MutedStyle.Render(status)
}

// Update redraws the line in place.
func (p *Progress) Update(mp domain.MultiDomainProgress) {
	_, _ = fmt.Fprint(p.out, "\r\033[2K"+p.Line(mp))
	if !mp.IsProcessing {
		_, _ = fmt.Fprintln(p.out)
	}
}

// DomainSummary lists the per-domain outcome of a multi-domain run.
func DomainSummary(results []domain.DomainResult) string {
	var sb strings.Builder
	for _, r := range results {
		switch r.Status {
		case domain.DomainCompleted:
			sb.WriteString(SuccessStyle.Render("✓ "+r.Domain) + MutedStyle.Render(fmt.Sprintf(" %d emails", len(r.Emails))))
		case domain.DomainError:
			sb.WriteString(ErrorStyle.Render("✗ "+r.Domain) + MutedStyle.Render(" "+r.Error))
		default:
			sb.WriteString(MutedStyle.Render("· " + r.Domain + " " + string(r.Status)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// CopyEmails puts the addresses on the clipboard, comma separated.
func CopyEmails(emails []domain.EmailWithVerification) error {
	list := make([]string, len(emails))
	for i, e := range emails {
		list[i] = e.Email
	}

	if err := clipboardWriteAll(strings.Join(list, ", ")); err != nil {
		return fmt.Errorf("could not copy to clipboard: %w", err)
	}

	return nil
}
