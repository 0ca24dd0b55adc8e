package service

import (
	"errors"
	"testing"

	"gatekeeper/database"
)

func TestSettingsSingleKeyWrites(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))

	if err := svc.Set(SettingDiscordWebhookURL, "https://discord.example/hook"); err != nil {
		t.Fatalf("set allowed key: %v", err)
	}

	value, err := svc.Get(SettingDiscordWebhookURL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "https://discord.example/hook" {
		t.Fatalf("value = %q", value)
	}

	// Overwrite, not duplicate
	if err := svc.Set(SettingDiscordWebhookURL, "https://discord.example/hook2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, err = svc.Get(SettingDiscordWebhookURL)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if value != "https://discord.example/hook2" {
		t.Fatalf("value after overwrite = %q", value)
	}

	if err := svc.Set("made_up_key", "x"); !errors.Is(err, ErrValidation) {
		t.Fatalf("disallowed key must be a validation error, got %v", err)
	}

	if _, err := svc.Get("missing_key"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key must be not found, got %v", err)
	}
}

func TestSettingsBulkSkipsUnknownAndNonString(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	// A pre-existing entry outside the allow-list stays untouched by bulk writes.
	if err := database.SetSetting(db, "legacy_key", "legacy"); err != nil {
		t.Fatalf("seed legacy setting: %v", err)
	}

	result, err := svc.BulkSet(map[string]any{
		SettingPublicBaseURL:     "https://gw.example",
		"legacy_key":             "overwritten",
		"unknown_key":            "x",
		SettingDiscordWebhookURL: 42,
	})
	if err != nil {
		t.Fatalf("bulk set: %v", err)
	}

	if result[SettingPublicBaseURL] != "https://gw.example" {
		t.Fatalf("allowed key not persisted: %q", result[SettingPublicBaseURL])
	}
	if result["legacy_key"] != "legacy" {
		t.Fatalf("disallowed key must keep its previous value, got %q", result["legacy_key"])
	}
	if _, exists := result["unknown_key"]; exists {
		t.Fatalf("unknown key must not be persisted")
	}
	if _, exists := result[SettingDiscordWebhookURL]; exists {
		t.Fatalf("non-string value must be skipped")
	}
}

func TestSettingsTypedAccessors(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))

	if _, ok := svc.WebhookURL(); ok {
		t.Fatalf("unset webhook url should report ok=false")
	}
	if _, ok := svc.PublicBaseURL(); ok {
		t.Fatalf("unset base url should report ok=false")
	}

	if err := svc.Set(SettingDiscordWebhookURL, "https://discord.example/hook"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Set(SettingPublicBaseURL, "https://gw.example"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if url, ok := svc.WebhookURL(); !ok || url != "https://discord.example/hook" {
		t.Fatalf("webhook url accessor = %q, %v", url, ok)
	}
	if base, ok := svc.PublicBaseURL(); !ok || base != "https://gw.example" {
		t.Fatalf("base url accessor = %q, %v", base, ok)
	}
}
