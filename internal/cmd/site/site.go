// Package site parses site command configuration and wires the web service.
package site

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/leads"
	entrypoint "github.com/kakascoaching/site/internal/platform/cmd"
	"github.com/kakascoaching/site/internal/platform/timeouts"
	"github.com/kakascoaching/site/internal/relay"
	"github.com/kakascoaching/site/internal/relay/mailapi"
	"github.com/kakascoaching/site/internal/relay/telegram"
	sitesvc "github.com/kakascoaching/site/internal/services/site"
	"github.com/kakascoaching/site/internal/storage"
	"github.com/kakascoaching/site/internal/storage/sqlite"
)

// Config holds site command configuration. Variables carry the SITE_ prefix.
type Config struct {
	HTTPAddr            string            `env:"HTTP_ADDR"             envDefault:"localhost:8080"`
	AssetDir            string            `env:"ASSET_DIR"`
	ContentDir          string            `env:"CONTENT_DIR"`
	DBPath              string            `env:"DB_PATH"`
	RelayEndpoint       string            `env:"RELAY_ENDPOINT"        envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	RelayServiceID      string            `env:"RELAY_SERVICE_ID"`
	RelayPublicKey      string            `env:"RELAY_PUBLIC_KEY"`
	RelayPrivateKey     string            `env:"RELAY_PRIVATE_KEY"`
	RelayTemplates      map[string]string `env:"RELAY_TEMPLATES"`
	RelayTimeout        time.Duration     `env:"RELAY_TIMEOUT"         envDefault:"10s"`
	RelayMaxAttempts    int               `env:"RELAY_MAX_ATTEMPTS"    envDefault:"1"`
	TelegramToken       string            `env:"TELEGRAM_TOKEN"`
	TelegramChatID      int64             `env:"TELEGRAM_CHAT_ID"`
	TrustForwardedProto bool              `env:"TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AssetDir, "asset-dir", cfg.AssetDir, "directory served under /assets/")
	fs.StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "catalog override directory, reloaded on change")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite submission ledger path")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "trust X-Forwarded-Proto from the proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run wires content, relays and the lead service, then serves HTTP until
// ctx is done.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSite, func(ctx context.Context) error {
		logger := log.Default()

		store, err := loadContent(cfg.ContentDir, logger)
		if err != nil {
			return err
		}
		if dir := strings.TrimSpace(cfg.ContentDir); dir != "" {
			go func() {
				if err := store.Watch(ctx, dir, timeouts.ContentReloadDebounce); err != nil {
					logger.Printf("content watch stopped dir=%s err=%v", dir, err)
				}
			}()
		}

		var ledger storage.LeadStore
		if path := strings.TrimSpace(cfg.DBPath); path != "" {
			db, err := sqlite.Open(path)
			if err != nil {
				return fmt.Errorf("open submission ledger: %w", err)
			}
			defer closeQuietly(db, logger, "submission ledger")
			ledger = db
		}

		rel, err := BuildRelay(cfg, logger)
		if err != nil {
			return err
		}
		svc, err := leads.NewService(leads.Config{
			Relay:        rel,
			Ledger:       ledger,
			Logger:       logger,
			RelayTimeout: cfg.RelayTimeout,
		})
		if err != nil {
			return fmt.Errorf("init lead service: %w", err)
		}

		server, err := sitesvc.NewServer(ctx, sitesvc.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Content:             store,
			Leads:               svc,
			Assets:              assetFS(cfg.AssetDir),
			Logger:              logger,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init site server: %w", err)
		}
		defer server.Close()

		logger.Printf("site listening addr=%s", server.Addr())
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve site: %w", err)
		}
		return nil
	})
}

func loadContent(dir string, logger *log.Logger) (*content.Store, error) {
	var (
		catalog *content.Catalog
		err     error
	)
	if dir = strings.TrimSpace(dir); dir != "" {
		catalog, err = content.LoadDir(dir)
	} else {
		catalog, err = content.LoadEmbedded()
	}
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return content.NewStore(catalog, logger), nil
}

func assetFS(dir string) fs.FS {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}

// BuildRelay returns the mail API client when credentials are configured,
// otherwise a logging relay, fanned out to Telegram when a bot is set.
func BuildRelay(cfg Config, logger *log.Logger) (relay.Relay, error) {
	var primary relay.Relay = relay.LogRelay{Logger: logger}
	if strings.TrimSpace(cfg.RelayServiceID) != "" {
		client, err := mailapi.New(mailapi.Config{
			Endpoint:    cfg.RelayEndpoint,
			ServiceID:   cfg.RelayServiceID,
			PublicKey:   cfg.RelayPublicKey,
			PrivateKey:  cfg.RelayPrivateKey,
			Templates:   cfg.RelayTemplates,
			Timeout:     cfg.RelayTimeout,
			MaxAttempts: cfg.RelayMaxAttempts,
		})
		if err != nil {
			return nil, fmt.Errorf("init mail relay: %w", err)
		}
		primary = client
	} else {
		logger.Printf("mail relay not configured; submissions are logged only")
	}

	if strings.TrimSpace(cfg.TelegramToken) == "" {
		return primary, nil
	}
	if cfg.TelegramChatID == 0 {
		return nil, errors.New("telegram chat id is required with a telegram token")
	}
	notifier, err := telegram.New(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return nil, fmt.Errorf("init telegram relay: %w", err)
	}
	return relay.Fanout{Primary: primary, Secondaries: []relay.Relay{notifier}, Logger: logger}, nil
}

func closeQuietly(c io.Closer, logger *log.Logger, what string) {
	if err := c.Close(); err != nil {
		logger.Printf("close %s: %v", what, err)
	}
}
