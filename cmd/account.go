package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"emailfinder/internal/cli"
	"emailfinder/internal/config"
	"emailfinder/pkg/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readPassword takes the first line of in.
func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("could not read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func loginCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Signs in and stores the token for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				cmd.Print("Password: ")
				p, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}

			sess, err := credentials(cfg).Login(cmd.Context(), cliSessionKey, domain.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render("Signed in as " + sess.User.Email))

			return nil
		},
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password; read from stdin when empty")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Signs out and forgets the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials(cfg).Logout(cmd.Context(), cliSessionKey); err != nil {
				return err
			}
			cmd.Println("Signed out")

			return nil
		},
	}
}

func whoamiCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Validates the stored token and prints the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := credentials(cfg).Restore(cmd.Context(), cliSessionKey)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(sess.User)
			if err != nil {
				return fmt.Errorf("could not encode user: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(out)

			return nil
		},
	}
}
