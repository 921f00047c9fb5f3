// Package site hosts the institute's browser-facing web service.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/kakascoaching/site/internal/platform/timeouts"
	siteapp "github.com/kakascoaching/site/internal/services/site/app"
	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/modules"
	"github.com/kakascoaching/site/internal/services/site/platform/compress"
	"github.com/kakascoaching/site/internal/services/site/platform/httpx"
	"github.com/kakascoaching/site/internal/services/site/platform/observability"
	"github.com/kakascoaching/site/internal/services/site/platform/requestmeta"
	"github.com/kakascoaching/site/internal/services/site/routepath"
	sitestatic "github.com/kakascoaching/site/internal/services/site/static"
)

// Config defines startup inputs for the site service.
type Config struct {
	HTTPAddr string
	Content  module.ContentSource
	Leads    module.LeadSubmitter
	// Assets serves /assets/; nil disables the route.
	Assets              fs.FS
	Logger              *log.Logger
	TrustForwardedProto bool
}

// Server hosts the site HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Content == nil {
		return nil, errors.New("content source is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	deps := module.Dependencies{
		Content:      cfg.Content,
		Leads:        cfg.Leads,
		Assets:       cfg.Assets,
		Logger:       logger,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	}
	h, err := siteapp.BuildRootHandler(siteapp.Config{
		Dependencies: deps,
		Modules:      modules.DefaultModules(),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(sitestatic.FS))))
	if cfg.Assets != nil {
		rootMux.Handle(routepath.AssetsPrefix, http.StripPrefix(routepath.AssetsPrefix, http.FileServer(http.FS(cfg.Assets))))
	}
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		compress.Middleware(),
		httpx.StripTrailingSlash(routepath.StaticPrefix, routepath.AssetsPrefix),
	), nil
}

// NewServer validates config and constructs a site server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose site handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown site http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve site http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
