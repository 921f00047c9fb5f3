// Package module defines the contract every site module mounts through.
package module

import (
	"context"
	"io/fs"
	"log"
	"net/http"

	"github.com/kakascoaching/site/internal/content"
	"github.com/kakascoaching/site/internal/leads"
	"github.com/kakascoaching/site/internal/services/site/platform/requestmeta"
)

// ContentSource exposes the current content catalog.
type ContentSource interface {
	Current() *content.Catalog
}

// LeadSubmitter validates and forwards lead-capture submissions.
type LeadSubmitter interface {
	Submit(ctx context.Context, form leads.Form, values map[string]string) (leads.Submission, error)
}

// Dependencies carries the shared collaborators handed to every module.
type Dependencies struct {
	Content ContentSource
	Leads   LeadSubmitter
	// Assets is the external asset directory; nil when none is configured.
	Assets       fs.FS
	Logger       *log.Logger
	SchemePolicy requestmeta.SchemePolicy
}

// Catalog returns the current catalog, or an empty one when no content
// source is wired.
func (d Dependencies) Catalog() *content.Catalog {
	if d.Content == nil {
		return &content.Catalog{}
	}
	if catalog := d.Content.Current(); catalog != nil {
		return catalog
	}
	return &content.Catalog{}
}

// Logf logs through the configured logger when present.
func (d Dependencies) Logf(format string, args ...any) {
	if d.Logger == nil {
		return
	}
	d.Logger.Printf(format, args...)
}

// Mount is a module's prefix and handler.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is a mountable site feature.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
