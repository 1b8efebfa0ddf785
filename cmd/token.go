package main

import (
	"fmt"
	"time"

	"emailfinder/internal/auth"
	"emailfinder/internal/cli"
	"emailfinder/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// tokenCommand prints the stored bearer token. With --claims it shows the
// subject and expiry instead; the signature is not checked since only the
// backend holds the key.
func tokenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Prints the stored bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			showClaims, _ := cmd.Flags().GetBool("claims")

			sess, err := credentials(cfg).Current(cmd.Context(), cliSessionKey)
			if err != nil {
				return err
			}

			if !showClaims {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), sess.Token)

				return nil
			}

			out := cmd.OutOrStdout()
			var claims jwt.RegisteredClaims
			if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, &claims); err != nil {
				cmd.Println(cli.MutedStyle.Render("token is opaque"))

				return nil //nolint: nilerr
			}

			_, _ = fmt.Fprintln(out, "subject:", claims.Subject)
			if claims.ExpiresAt == nil {
				_, _ = fmt.Fprintln(out, "expires: never")

				return nil
			}

			expiry := claims.ExpiresAt.Time
			if auth.TokenExpired(sess.Token, time.Now()) {
				_, _ = fmt.Fprintln(out, cli.ErrorStyle.Render("expired: "+expiry.Format(time.RFC3339)))
			} else {
				_, _ = fmt.Fprintf(out, "expires: %s (in %s)\n", expiry.Format(time.RFC3339), time.Until(expiry).Round(time.Second))
			}

			return nil
		},
	}

	cmd.Flags().Bool("claims", false, "Show subject and expiry instead of the raw token")

	return cmd
}
