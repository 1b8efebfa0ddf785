// Package main provides the CLI entrypoint of the email finder.
// It wires subcommands (serve, login, logout, whoami, token, check-domain,
// discover), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"emailfinder/internal/auth"
	"emailfinder/internal/config"
	"emailfinder/internal/discovery"
	"emailfinder/pkg/backend/httpapi"
	"emailfinder/pkg/dns/doh"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/storage/filestore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cliSessionKey is the key of the CLI's session in the credentials file.
const cliSessionKey = "default"

func newBackend(cfg *config.Config) *httpapi.Client {
	return httpapi.New(&http.Client{Timeout: cfg.Backend.Timeout}, cfg.Backend.BaseURL)
}

func newDiscovery(cfg *config.Config, client *httpapi.Client) discovery.Service {
	resolver := doh.New(&http.Client{Timeout: cfg.DNS.Timeout}, cfg.DNS.ResolverURL)

	return discovery.New(client, resolver, discovery.NewOptions(cfg))
}

// credentials returns the auth service backed by the CLI credentials file.
func credentials(cfg *config.Config) *auth.Service {
	path := cfg.CLI.CredentialsPath
	if path == "" {
		path = filestore.DefaultPath()
	}

	return auth.New(newBackend(cfg), filestore.New(path), auth.Options{})
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "emailfinder",
		Short:         "Find and verify professional email addresses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		loginCommand(cfg),
		logoutCommand(cfg),
		whoamiCommand(cfg),
		tokenCommand(cfg),
		checkDomainCommand(cfg),
		discoverCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		rootCmd.PrintErrln(err)
		os.Exit(1) //nolint: gocritic
	}
}
