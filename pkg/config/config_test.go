package config

import (
	"testing"
	"time"
)

func TestRazorpayEffectiveWebhookSecretFallsBack(t *testing.T) {
	cfg := RazorpayConfig{KeySecret: "api-secret"}
	if got := cfg.EffectiveWebhookSecret(); got != "api-secret" {
		t.Fatalf("expected fallback to key secret, got %q", got)
	}
	cfg.WebhookSecret = "hook-secret"
	if got := cfg.EffectiveWebhookSecret(); got != "hook-secret" {
		t.Fatalf("expected dedicated webhook secret, got %q", got)
	}
}

func TestRazorpayConfigured(t *testing.T) {
	if (RazorpayConfig{}).Configured() {
		t.Fatal("empty config should not be considered configured")
	}
	cfg := RazorpayConfig{KeyID: "rzp_test_x", KeySecret: "s", Timeout: 10 * time.Second}
	if !cfg.Configured() {
		t.Fatal("key id + secret should be enough")
	}
}

func TestAppEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "Dev"}).IsDev() {
		t.Fatal("IsDev should be case-insensitive")
	}
	if (AppConfig{Env: "dev"}).IsProd() {
		t.Fatal("dev env must not report prod")
	}
}
