package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

// secretKeys are the settings set-token may write.
var secretKeys = map[string]bool{
	"github.token":          true,
	"llm.api_key":           true,
	"email.sender_password": true,
}

var tokenKey string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables override the file: GITHUB_TOKEN, SENTINEL_LLM_API_KEY
and SENTINEL_SMTP_PASSWORD.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set a single setting, for example:

  sentinel settings set scheduler.interval 12h
  sentinel settings set llm.provider ollama
  sentinel settings set email.recipients a@example.com,b@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

var settingsSetTokenCmd = &cobra.Command{
	Use:   "set-token [value]",
	Short: "Store a secret without echoing it",
	Long: `Store a secret in config.toml. Without an argument the value is read
from stdin, hidden when stdin is a terminal. Defaults to the GitHub token;
use --key for llm.api_key or email.sender_password.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSetToken,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that configured services are usable",
	Long: `Report whether a GitHub token is set, ping the configured LLM provider
and show whether email delivery is enabled.`,
	Args: cobra.NoArgs,
	RunE: runSettingsCheck,
}

func init() {
	settingsSetTokenCmd.Flags().StringVar(&tokenKey, "key", "github.token", "Secret setting to write")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	settingsCmd.AddCommand(settingsSetTokenCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	entries, err := settingsService.Entries()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Printf("Config file: %s\n\n", settingsService.Path())

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}

	section := ""
	for _, e := range entries {
		prefix, _, _ := strings.Cut(e.Key, ".")
		if prefix != section {
			if section != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", prefix)
			section = prefix
		}
		value := e.Value
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-*s  %s  (%s)\n", width, e.Key, value, e.Source)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Unset %s\n", args[0])
	return nil
}

func runSettingsSetToken(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if !secretKeys[tokenKey] {
		return fmt.Errorf("%w: %s is not a secret setting", domain.ErrInvalidInput, tokenKey)
	}

	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		cmd.Printf("Enter value for %s: ", tokenKey)
		value = readSecret(cmd.InOrStdin())
		cmd.Println()
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: empty value", domain.ErrInvalidInput)
	}

	if err := settingsService.Set(tokenKey, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", tokenKey, err)
	}
	cmd.Printf("Stored %s\n", tokenKey)
	return nil
}

// readSecret reads one line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if appConfig == nil {
		return errors.New("configuration not loaded")
	}

	failed := false

	if err := requireToken(cmd, nil); err != nil {
		cmd.Printf("GitHub: %v\n", err)
		failed = true
	} else {
		cmd.Println("GitHub: token set")
	}

	switch {
	case appConfig.LLM.Provider == domain.AIProviderNone:
		cmd.Println("LLM: disabled, reports are not summarised")
	case llmCheck == nil:
		cmd.Printf("LLM: %s (not checked)\n", appConfig.LLM.Provider.Description())
	default:
		if err := llmCheck(cmd.Context()); err != nil {
			cmd.Printf("LLM: %v\n", err)
			failed = true
		} else {
			cmd.Printf("LLM: %s reachable, model %s\n", appConfig.LLM.Provider.Description(), appConfig.LLM.Model)
		}
	}

	switch {
	case appConfig.Email.IsConfigured():
		cmd.Printf("Email: enabled via %s:%d\n", appConfig.Email.SMTPServer, appConfig.Email.SMTPPort)
	case appConfig.Email.Enabled:
		cmd.Println("Email: enabled but incomplete, set email.smtp_server, email.sender_email and email.sender_password")
		failed = true
	default:
		cmd.Println("Email: disabled")
	}

	if failed {
		return errors.New("configuration check failed")
	}
	return nil
}
