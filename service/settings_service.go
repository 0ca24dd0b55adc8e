package service

import (
	"fmt"
	"strings"

	"gatekeeper/database"

	"gorm.io/gorm"
)

// Recognized setting keys. Writes to anything else are rejected (single-key
// update) or silently skipped (bulk update).
const (
	SettingDiscordWebhookURL = "discord_webhook_url"
	SettingPublicBaseURL     = "public_base_url"
)

// AllowedSettingKeys is the fixed allow-list, in a stable order for listings.
var AllowedSettingKeys = []string{
	SettingDiscordWebhookURL,
	SettingPublicBaseURL,
}

func settingKeyAllowed(key string) bool {
	for _, allowed := range AllowedSettingKeys {
		if key == allowed {
			return true
		}
	}
	return false
}

// SettingsService handles the allow-listed key/value settings store.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// All returns every persisted setting as a map.
func (s *SettingsService) All() (map[string]string, error) {
	entries, err := database.AllSettings(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		result[entry.Key] = entry.Value
	}
	return result, nil
}

// Get returns a single setting value.
func (s *SettingsService) Get(key string) (string, error) {
	key = strings.TrimSpace(key)

	value, ok, err := database.GetSetting(s.db, key)
	if err != nil {
		return "", fmt.Errorf("failed to read setting: %w", err)
	}
	if !ok {
		return "", wrapSentinel(fmt.Sprintf("setting not found: %s", key), ErrNotFound)
	}
	return value, nil
}

// Set writes a single setting. Disallowed keys are rejected.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)

	if !settingKeyAllowed(key) {
		return wrapSentinel(fmt.Sprintf("unrecognized setting key: %s", key), ErrValidation)
	}

	if err := database.SetSetting(s.db, key, value); err != nil {
		return fmt.Errorf("failed to write setting: %w", err)
	}
	return nil
}

// BulkSet applies a partial-success bulk write: unknown keys and non-string
// values are skipped without error. It returns the resulting full map.
func (s *SettingsService) BulkSet(values map[string]any) (map[string]string, error) {
	for key, raw := range values {
		key = strings.TrimSpace(key)
		if !settingKeyAllowed(key) {
			continue
		}
		value, isString := raw.(string)
		if !isString {
			continue
		}
		if err := database.SetSetting(s.db, key, value); err != nil {
			return nil, fmt.Errorf("failed to write setting: %w", err)
		}
	}

	return s.All()
}

// WebhookURL is the typed accessor for the review-channel webhook override.
// ok is false when the setting is absent or unreadable.
func (s *SettingsService) WebhookURL() (string, bool) {
	value, ok, err := database.GetSetting(s.db, SettingDiscordWebhookURL)
	if err != nil || !ok {
		return "", false
	}
	return value, true
}

// PublicBaseURL is the typed accessor for the action-link base URL override.
func (s *SettingsService) PublicBaseURL() (string, bool) {
	value, ok, err := database.GetSetting(s.db, SettingPublicBaseURL)
	if err != nil || !ok {
		return "", false
	}
	return value, true
}
