package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chai-engine/promptchain/internal/adapters/driven/ai"
	configfile "github.com/chai-engine/promptchain/internal/adapters/driven/config/file"
	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driving"
	"github.com/chai-engine/promptchain/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage provider settings",
	Long: `View and configure the LLM provider used for runs.

Settings persist in ~/.promptchain/config.toml. API keys exported in
the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY)
always take precedence over stored ones.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive provider setup wizard",
	Long:  `Run an interactive wizard to configure the LLM provider step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

// newSettingsService opens the config store.
// Overridable in tests to use a temp directory.
var newSettingsService = func() (driving.SettingsService, error) {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config store: %w", err)
	}
	return services.NewSettingsService(store), nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := newSettingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Model)
	if settings.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key: (not set, export %s)\n", settings.Provider.APIKeyEnvVar())
		}
	}

	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	svc, err := newSettingsService()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	providers := domain.AllProviders()

	cmd.Println("LLM provider:")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Printf("Choice [1-%d] (default 1): ", len(providers))
	provider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	cmd.Printf("Model (empty for provider default): ")
	model := readLine(reader)

	baseURL := ""
	if provider.IsLocal() {
		cmd.Printf("Base URL (empty for default): ")
		baseURL = readLine(reader)
	}

	settings := domain.LLMSettings{
		Provider: provider,
		Model:    model,
		BaseURL:  baseURL,
	}

	if provider.RequiresAPIKey() {
		if key := os.Getenv(provider.APIKeyEnvVar()); key != "" {
			cmd.Printf("Using API key from %s (%s)\n", provider.APIKeyEnvVar(), maskAPIKey(key))
			settings.APIKey = key
		} else {
			cmd.Printf("API key (input hidden): ")
			settings.APIKey = readPassword()
			cmd.Println()
		}
	}

	cmd.Print("Validating provider configuration... ")
	if err := ai.ValidateLLMConfig(settings); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	if err := svc.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	cmd.Printf("LLM provider configured: %s\n", provider.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
