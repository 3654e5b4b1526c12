package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driving"
)

// fakeSettingsService returns canned settings.
type fakeSettingsService struct {
	settings domain.LLMSettings
	saved    *domain.LLMSettings
}

func (f *fakeSettingsService) Get() (domain.LLMSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsService) Save(settings domain.LLMSettings) error {
	f.saved = &settings
	return nil
}

func installFakeSettings(t *testing.T, fake *fakeSettingsService) {
	t.Helper()
	prev := newSettingsService
	newSettingsService = func() (driving.SettingsService, error) {
		return fake, nil
	}
	t.Cleanup(func() { newSettingsService = prev })
}

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsShow_ConfiguredProvider(t *testing.T) {
	installFakeSettings(t, &fakeSettingsService{
		settings: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o-mini",
			APIKey:   "sk-test-1234567890",
		},
	})

	buf, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "OpenAI (cloud)")
	assert.Contains(t, buf.String(), "gpt-4o-mini")
	assert.Contains(t, buf.String(), "Status: configured")
	// Key must be masked, never printed in full.
	assert.NotContains(t, buf.String(), "sk-test-1234567890")
}

func TestSettingsShow_UnconfiguredProvider(t *testing.T) {
	installFakeSettings(t, &fakeSettingsService{
		settings: domain.LLMSettings{
			Provider: domain.AIProviderGemini,
		},
	})

	buf, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Status: not configured")
	assert.Contains(t, buf.String(), "GEMINI_API_KEY")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-t...wxyz", maskAPIKey("sk-test-abcdwxyz"))
}

func TestParseChoice(t *testing.T) {
	assert.Equal(t, 1, parseChoice("", 4, 1))
	assert.Equal(t, 3, parseChoice("3", 4, 1))
	assert.Equal(t, 1, parseChoice("9", 4, 1))
	assert.Equal(t, 1, parseChoice("abc", 4, 1))
}
