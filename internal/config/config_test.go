package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123456:test-token"
	cfg.Sheet.SpreadsheetID = "sheet-id"
	cfg.Sheet.SheetName = "Аркуш1"
	return cfg
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
	if cfg.Sheet.Timezone != "Europe/Kyiv" {
		t.Fatalf("timezone = %q", cfg.Sheet.Timezone)
	}
	if cfg.Assets.MenuPhoto != "pics/menu.jpg" || cfg.Assets.FallbackPhoto != "pics/not_found.jpg" {
		t.Fatalf("asset defaults = %q, %q", cfg.Assets.MenuPhoto, cfg.Assets.FallbackPhoto)
	}
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRejectsMissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("empty token must be rejected")
	}
}

func TestNormalizeRejectsMissingSheet(t *testing.T) {
	cfg := validConfig()
	cfg.Sheet.SpreadsheetID = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("missing spreadsheet id must be rejected")
	}

	cfg = validConfig()
	cfg.Sheet.SheetName = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("missing sheet name must be rejected")
	}
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Fatal("webhook mode without url must be rejected")
	}

	cfg.Webhook.URL = "https://bot.example/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 5000
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestNormalizeRejectsUnknownExcludeUpdate(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"Callback", "inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("unknown exclude update must be rejected")
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback "}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("exclude update = %q, want callback", cfg.RateLimit.ExcludeUpdates[0])
	}
}

func TestLoadReadsYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
telegram:
  token: 123456:file-token
sheet:
  spreadsheet_id: sheet-id
  sheet_name: Аркуш1
payment:
  card_number: "4444 5555 6666 7777"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BOT_TOKEN", "123456:env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123456:env-token" {
		t.Fatalf("token = %q, env must win over the file", cfg.Telegram.Token)
	}
	if cfg.Payment.CardNumber != "4444 5555 6666 7777" {
		t.Fatalf("card number = %q", cfg.Payment.CardNumber)
	}
}
