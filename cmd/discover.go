package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"emailfinder/internal/cli"
	"emailfinder/internal/config"
	"emailfinder/internal/discovery"
	"emailfinder/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const progressInterval = 250 * time.Millisecond

type discoverFlags struct {
	domain         string
	file           string
	firstName      string
	lastName       string
	middleName     string
	nickName       string
	customNames    []string
	personalInfo   bool
	advancedEmails bool
	verify         int
	copyEmails     bool
}

// prepare fills the workflow form from flags and selects the input.
func (f discoverFlags) prepare(ctx context.Context, wf *discovery.Workflow) error {
	useNick := f.nickName != ""
	useCustom := len(f.customNames) > 0
	if err := wf.ApplyPatch(discovery.FormPatch{
		FirstName:         &f.firstName,
		LastName:          &f.lastName,
		MiddleName:        &f.middleName,
		NickName:          &f.nickName,
		UseNickName:       &useNick,
		UseCustomNames:    &useCustom,
		UsePersonalInfo:   &f.personalInfo,
		UseAdvancedEmails: &f.advancedEmails,
	}); err != nil {
		return err
	}

	if useCustom {
		for _, name := range wf.Snapshot().Form.SelectedCustomNames {
			wf.RemoveCustomName(name)
		}
		for _, name := range f.customNames {
			wf.AddCustomName(name)
		}
	}

	if f.file != "" {
		content, err := os.ReadFile(f.file)
		if err != nil {
			return fmt.Errorf("could not read domain list: %w", err)
		}
		domains, err := wf.SetFile(filepath.Base(f.file), "", content)
		if err != nil {
			return err
		}
		logger.Debug(ctx, "domain list loaded", zap.Int("domains", len(domains)))

		return nil
	}

	v, err := wf.SetDomain(ctx, f.domain)
	if err != nil {
		return err
	}
	if !v.IsValid || !v.Exists {
		if v.Error != "" {
			return errors.New(v.Error)
		}

		return fmt.Errorf("%s does not resolve", v.Domain)
	}

	return nil
}

// await waits for a run, redrawing the progress bar of multi-domain runs.
func await(ctx context.Context, wf *discovery.Workflow, done <-chan error, bar *cli.Progress) error {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if p := wf.Snapshot().Progress; p != nil {
				bar.Update(*p)
			}

			return err
		case <-ticker.C:
			if p := wf.Snapshot().Progress; p != nil && p.IsProcessing {
				bar.Update(*p)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runError prefers the message the workflow shows to users.
func runError(wf *discovery.Workflow, err error) error {
	if msg := wf.Snapshot().Error; msg != "" {
		return errors.New(msg)
	}

	return err
}

func discoverCommand(cfg *config.Config) *cobra.Command {
	var f discoverFlags

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Generates likely email addresses for a person at one or more domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Discovery.RunTimeout)
			defer cancel()

			sess, err := credentials(cfg).Restore(ctx, cliSessionKey)
			if err != nil {
				return err
			}

			wf := discovery.NewWorkflow(newDiscovery(cfg, newBackend(cfg)), discovery.NewWorkflowOptions(cfg))
			if err := f.prepare(ctx, wf); err != nil {
				return err
			}

			done, err := wf.StartSubmit(ctx, sess.Token)
			if err != nil {
				return runError(wf, err)
			}
			if err := await(ctx, wf, done, cli.NewProgress(cmd.ErrOrStderr(), 40)); err != nil {
				return runError(wf, err)
			}

			if f.verify > 0 {
				cmd.PrintErrln(cli.MutedStyle.Render(fmt.Sprintf("verifying up to %d emails...", f.verify)))
				if err := wf.Verify(ctx, sess.Token, f.verify); err != nil {
					return runError(wf, err)
				}
			}

			st := wf.Snapshot()
			out := cmd.OutOrStdout()
			if st.Progress != nil {
				_, _ = fmt.Fprint(out, cli.DomainSummary(st.Progress.Results))
			}
			if len(st.Emails) == 0 {
				_, _ = fmt.Fprintln(out, cli.MutedStyle.Render("No emails found"))

				return nil
			}
			_, _ = fmt.Fprintln(out, cli.ResultTable(st.Emails))
			if st.UsageStats != nil {
				_, _ = fmt.Fprintln(out, cli.MutedStyle.Render(fmt.Sprintf("%d verified, cost %.2f",
					st.UsageStats.EmailsVerified, st.UsageStats.TotalCost)))
			}

			if f.copyEmails {
				if err := cli.CopyEmails(st.Emails); err != nil {
					return err
				}
				cmd.PrintErrln(cli.SuccessStyle.Render(fmt.Sprintf("copied %d emails", len(st.Emails))))
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.domain, "domain", "", "Company domain or website URL")
	flags.StringVar(&f.file, "file", "", "Text file with one domain per line")
	flags.StringVar(&f.firstName, "first-name", "", "First name")
	flags.StringVar(&f.lastName, "last-name", "", "Last name")
	flags.StringVar(&f.middleName, "middle-name", "", "Middle name")
	flags.StringVar(&f.nickName, "nick-name", "", "Nickname, also used for patterns when set")
	flags.StringSliceVar(&f.customNames, "custom-names", nil, "Role mailboxes to include instead of the defaults")
	flags.BoolVar(&f.personalInfo, "personal-info", true, "Use the person's name for patterns")
	flags.BoolVar(&f.advancedEmails, "advanced", false, "Include less common patterns")
	flags.IntVar(&f.verify, "verify", 0, "Verify up to this many of the top emails")
	flags.BoolVar(&f.copyEmails, "copy", false, "Copy the emails to the clipboard")
	cmd.MarkFlagsOneRequired("domain", "file")
	cmd.MarkFlagsMutuallyExclusive("domain", "file")

	return cmd
}
