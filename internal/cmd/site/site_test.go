package site

import (
	"flag"
	"io"
	"log"
	"testing"
	"time"

	"github.com/kakascoaching/site/internal/relay"
	"github.com/kakascoaching/site/internal/relay/mailapi"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RelayTimeout != 10*time.Second || cfg.RelayMaxAttempts != 1 {
		t.Fatalf("relay defaults = %s/%d", cfg.RelayTimeout, cfg.RelayMaxAttempts)
	}
	if cfg.RelayEndpoint != mailapi.DefaultEndpoint {
		t.Fatalf("RelayEndpoint = %q", cfg.RelayEndpoint)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SITE_HTTP_ADDR", "env-addr")
	t.Setenv("SITE_RELAY_TEMPLATES", "enrollment:template_a,intake:template_b")
	t.Setenv("SITE_TELEGRAM_CHAT_ID", "-1001")

	fs := flag.NewFlagSet("site", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag-addr", "-db-path", "/tmp/leads.db"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "flag-addr" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/leads.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.RelayTemplates["intake"] != "template_b" {
		t.Fatalf("RelayTemplates = %v", cfg.RelayTemplates)
	}
	if cfg.TelegramChatID != -1001 {
		t.Fatalf("TelegramChatID = %d", cfg.TelegramChatID)
	}
}

func TestBuildRelay(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	got, err := BuildRelay(Config{}, logger)
	if err != nil {
		t.Fatalf("BuildRelay() error = %v", err)
	}
	if _, ok := got.(relay.LogRelay); !ok {
		t.Fatalf("relay = %T, want relay.LogRelay", got)
	}

	got, err = BuildRelay(Config{RelayServiceID: "svc", RelayPublicKey: "pub"}, logger)
	if err != nil {
		t.Fatalf("BuildRelay() error = %v", err)
	}
	if _, ok := got.(*mailapi.Client); !ok {
		t.Fatalf("relay = %T, want *mailapi.Client", got)
	}

	if _, err := BuildRelay(Config{RelayServiceID: "svc"}, logger); err == nil {
		t.Fatal("expected error without public key")
	}
	if _, err := BuildRelay(Config{TelegramToken: "token"}, logger); err == nil {
		t.Fatal("expected error without telegram chat id")
	}
}

func TestLoadContentEmbedded(t *testing.T) {
	store, err := loadContent("", nil)
	if err != nil {
		t.Fatalf("loadContent() error = %v", err)
	}
	if store.Current() == nil || len(store.Current().Courses) == 0 {
		t.Fatal("embedded catalog has no courses")
	}
	if _, err := loadContent(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for empty content dir")
	}
}

func TestAssetFS(t *testing.T) {
	if assetFS("  ") != nil {
		t.Fatal("expected nil fs for empty dir")
	}
	if assetFS(t.TempDir()) == nil {
		t.Fatal("expected fs for dir")
	}
}
