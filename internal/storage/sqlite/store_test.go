package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kakascoaching/site/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestPutLeadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	createdAt := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC)
	input := storage.Lead{
		ID:        "lead-1",
		Form:      "enrollment",
		Template:  "enrollment",
		Fields:    map[string]string{"user_name": "Ali", "user_email": "ali@example.com"},
		Status:    storage.LeadSent,
		CreatedAt: createdAt,
	}
	if err := store.PutLead(context.Background(), input); err != nil {
		t.Fatalf("put lead: %v", err)
	}

	listed, err := store.ListLeads(context.Background(), storage.LeadFilter{})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("leads = %d, want 1", len(listed))
	}
	got := listed[0]
	if got.Form != "enrollment" || got.Status != storage.LeadSent {
		t.Fatalf("lead = %+v", got)
	}
	if got.Fields["user_email"] != "ali@example.com" {
		t.Fatalf("fields = %v", got.Fields)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, createdAt)
	}
}

func TestPutLeadRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	lead := storage.Lead{ID: "lead-1", Form: "intake", Status: storage.LeadFailed, Error: "relay down"}
	if err := store.PutLead(context.Background(), lead); err != nil {
		t.Fatalf("put lead: %v", err)
	}
	if err := store.PutLead(context.Background(), lead); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate put error = %v, want ErrAlreadyExists", err)
	}
}

func TestPutLeadValidatesInput(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	tests := []struct {
		name string
		lead storage.Lead
	}{
		{name: "missing id", lead: storage.Lead{Form: "intake", Status: storage.LeadSent}},
		{name: "missing form", lead: storage.Lead{ID: "x", Status: storage.LeadSent}},
		{name: "bad status", lead: storage.Lead{ID: "x", Form: "intake", Status: "queued"}},
	}
	for _, tc := range tests {
		if err := store.PutLead(context.Background(), tc.lead); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestListAndCountLeads(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seed := []storage.Lead{
		{ID: "a", Form: "enrollment", Status: storage.LeadSent, CreatedAt: base},
		{ID: "b", Form: "intake", Status: storage.LeadFailed, Error: "503", CreatedAt: base.Add(time.Hour)},
		{ID: "c", Form: "enrollment", Status: storage.LeadSent, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, lead := range seed {
		if err := store.PutLead(context.Background(), lead); err != nil {
			t.Fatalf("put lead %s: %v", lead.ID, err)
		}
	}

	all, err := store.ListLeads(context.Background(), storage.LeadFilter{})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Fatalf("list order = %v", ids(all))
	}

	enrollments, err := store.ListLeads(context.Background(), storage.LeadFilter{Form: "enrollment", Limit: 1})
	if err != nil {
		t.Fatalf("list enrollments: %v", err)
	}
	if len(enrollments) != 1 || enrollments[0].ID != "c" {
		t.Fatalf("enrollments = %v", ids(enrollments))
	}

	failed, err := store.ListLeads(context.Background(), storage.LeadFilter{Status: storage.LeadFailed})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Error != "503" {
		t.Fatalf("failed = %+v", failed)
	}

	if n, err := store.CountLeads(context.Background(), storage.LeadSent); err != nil || n != 2 {
		t.Fatalf("count sent = %d, %v", n, err)
	}
	if n, err := store.CountLeads(context.Background(), ""); err != nil || n != 3 {
		t.Fatalf("count all = %d, %v", n, err)
	}
}

func TestOpenIsIdempotentAcrossRestarts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.PutLead(context.Background(), storage.Lead{ID: "a", Form: "intake", Status: storage.LeadSent}); err != nil {
		t.Fatalf("put lead: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if n, err := second.CountLeads(context.Background(), ""); err != nil || n != 1 {
		t.Fatalf("count after reopen = %d, %v", n, err)
	}
}

func ids(leads []storage.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, lead := range leads {
		out = append(out, lead.ID)
	}
	return out
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
