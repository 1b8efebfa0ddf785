package main

import (
	"fmt"

	"emailfinder/internal/cli"
	"emailfinder/internal/config"

	"github.com/spf13/cobra"
)

func checkDomainCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check-domain <domain or url>",
		Short: "Validates a domain and checks that it resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := newDiscovery(cfg, newBackend(cfg)).CheckDomain(cmd.Context(), args[0])

			out := cmd.OutOrStdout()
			switch {
			case v.IsValid && v.Exists:
				_, _ = fmt.Fprintln(out, cli.SuccessStyle.Render("✓ "+v.Domain+" exists"))
			case v.Error != "":
				_, _ = fmt.Fprintln(out, cli.ErrorStyle.Render("✗ "+v.Error))
			default:
				_, _ = fmt.Fprintln(out, cli.ErrorStyle.Render("✗ "+v.Domain+" does not resolve"))
			}

			return nil
		},
	}
}
