package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/config"
	"github.com/spf13/cobra"
)

var (
	apiBaseURL string
	apiToken   string
	apiTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "writerfolio-cli",
	Short: "Writerfolio admin CLI",
	Long: `writerfolio-cli talks to the same content backend as the admin dashboard.

Available commands:
  admin create    Create another admin account
  upload          Upload images and print their URLs
  list            Print a collection as YAML
  export          Write all content to an Excel workbook

Use "writerfolio-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	defaults := config.DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", envOr("WRITERFOLIO_API_BASE_URL", defaults.API.BaseURL), "content backend base URL")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("WRITERFOLIO_TOKEN"), "admin bearer token (prompts for a login when empty)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", defaults.API.Timeout, "per-request timeout")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() (*api.Client, error) {
	c, err := api.New(apiBaseURL, api.WithTimeout(apiTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid --api: %w", err)
	}
	return c, nil
}

// ensureToken returns --token or logs in interactively.
func ensureToken(ctx context.Context, c *api.Client) (string, error) {
	if apiToken != "" {
		return apiToken, nil
	}
	creds, err := promptCredentials("Admin username", "Admin password")
	if err != nil {
		return "", err
	}
	token, err := c.Login(ctx, creds)
	if err != nil {
		return "", friendly(err, "logging in")
	}
	return token, nil
}

// friendly turns backend failures into the same sentences the dashboard shows.
func friendly(err error, action string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(api.UserMessage(err, action))
	}
	return fmt.Errorf("%s: %w", action, err)
}
