package storage

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyExists indicates a record id collision.
var ErrAlreadyExists = errors.New("record already exists")

// LeadStatus is the relay outcome recorded for a submission.
type LeadStatus string

const (
	LeadSent   LeadStatus = "sent"
	LeadFailed LeadStatus = "failed"
)

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	return s == LeadSent || s == LeadFailed
}

// Lead is one recorded form submission.
type Lead struct {
	ID        string
	Form      string
	Template  string
	Fields    map[string]string
	Status    LeadStatus
	Error     string
	CreatedAt time.Time
}

// LeadFilter narrows ListLeads results. Zero values match everything.
type LeadFilter struct {
	Form   string
	Status LeadStatus
	Limit  int
}

// LeadStore persists lead submissions.
type LeadStore interface {
	PutLead(ctx context.Context, lead Lead) error
	ListLeads(ctx context.Context, filter LeadFilter) ([]Lead, error)
	CountLeads(ctx context.Context, status LeadStatus) (int, error)
}
