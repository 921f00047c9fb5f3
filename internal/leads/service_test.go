package leads

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/kakascoaching/site/internal/platform/errors"
	"github.com/kakascoaching/site/internal/relay"
	"github.com/kakascoaching/site/internal/storage"
)

type recordingRelay struct {
	mu    sync.Mutex
	calls []relay.Message
	err   error
}

func (r *recordingRelay) Send(_ context.Context, msg relay.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, msg)
	return r.err
}

type memoryLedger struct {
	mu    sync.Mutex
	leads []storage.Lead
	err   error
}

func (m *memoryLedger) PutLead(_ context.Context, lead storage.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.leads = append(m.leads, lead)
	return nil
}

func (m *memoryLedger) ListLeads(context.Context, storage.LeadFilter) ([]storage.Lead, error) {
	return nil, nil
}

func (m *memoryLedger) CountLeads(context.Context, storage.LeadStatus) (int, error) {
	return 0, nil
}

func newTestService(t *testing.T, r relay.Relay, ledger storage.LeadStore, logs *bytes.Buffer) *Service {
	t.Helper()

	fixed := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	svc, err := NewService(Config{
		Relay:  r,
		Ledger: ledger,
		Logger: log.New(logs, "", 0),
		Now:    func() time.Time { return fixed },
		NewID:  func() string { return "lead-1" },
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestNewServiceRequiresRelay(t *testing.T) {
	t.Parallel()

	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected relay error")
	}
}

func TestSubmitRejectsInvalidInputWithoutRelay(t *testing.T) {
	t.Parallel()

	r := &recordingRelay{}
	ledger := &memoryLedger{}
	svc := newTestService(t, r, ledger, &bytes.Buffer{})

	_, err := svc.Submit(context.Background(), Enrollment, map[string]string{"user_name": "Ali"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindValidation {
		t.Fatalf("kind = %q, want %q", kind, apperrors.KindValidation)
	}
	fieldErrs, ok := FieldErrorsOf(err)
	if !ok || len(fieldErrs) != 4 {
		t.Fatalf("field errors = %v, %v", fieldErrs, ok)
	}
	if len(r.calls) != 0 {
		t.Fatalf("relay calls = %d, want 0", len(r.calls))
	}
	if len(ledger.leads) != 0 {
		t.Fatalf("ledger writes = %d, want 0", len(ledger.leads))
	}
}

func TestSubmitSendsOnceAndRecordsSuccess(t *testing.T) {
	t.Parallel()

	r := &recordingRelay{}
	ledger := &memoryLedger{}
	var logs bytes.Buffer
	svc := newTestService(t, r, ledger, &logs)

	values := validEnrollment()
	values["user_name"] = "  Ali Raza  "
	sub, err := svc.Submit(context.Background(), Enrollment, values)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.ID != "lead-1" || sub.Template != "enrollment" {
		t.Fatalf("submission = %+v", sub)
	}
	if len(r.calls) != 1 {
		t.Fatalf("relay calls = %d, want 1", len(r.calls))
	}
	if got := r.calls[0].Fields["user_name"]; got != "Ali Raza" {
		t.Fatalf("relayed user_name = %q", got)
	}
	if len(ledger.leads) != 1 || ledger.leads[0].Status != storage.LeadSent {
		t.Fatalf("ledger = %+v", ledger.leads)
	}
	if !strings.Contains(logs.String(), "lead relayed form=enrollment id=lead-1") {
		t.Fatalf("logs = %q", logs.String())
	}
}

func TestSubmitRelayFailureReturnsUnavailable(t *testing.T) {
	t.Parallel()

	r := &recordingRelay{err: errors.New("mail api 503")}
	ledger := &memoryLedger{}
	svc := newTestService(t, r, ledger, &bytes.Buffer{})

	sub, err := svc.Submit(context.Background(), Intake, validIntake())
	if err == nil {
		t.Fatal("expected relay error")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindUnavailable {
		t.Fatalf("kind = %q, want %q", kind, apperrors.KindUnavailable)
	}
	if key := apperrors.LocalizationKey(err); key != KeyRetry {
		t.Fatalf("key = %q, want %q", key, KeyRetry)
	}
	if sub.ID == "" {
		t.Fatal("expected submission id on relay failure")
	}
	if len(r.calls) != 1 {
		t.Fatalf("relay calls = %d, want exactly 1", len(r.calls))
	}
	if len(ledger.leads) != 1 || ledger.leads[0].Status != storage.LeadFailed || ledger.leads[0].Error != "mail api 503" {
		t.Fatalf("ledger = %+v", ledger.leads)
	}
}

func TestSubmitLedgerFailureDoesNotFailSubmission(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	svc := newTestService(t, &recordingRelay{}, &memoryLedger{err: errors.New("disk full")}, &logs)

	if _, err := svc.Submit(context.Background(), Intake, validIntake()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !strings.Contains(logs.String(), "lead ledger write failed") {
		t.Fatalf("logs = %q", logs.String())
	}
}

func TestSubmitAppliesRelayTimeout(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	r := relay.Func(func(ctx context.Context, _ relay.Message) error {
		deadline, _ = ctx.Deadline()
		return nil
	})
	svc, err := NewService(Config{Relay: r, Logger: log.New(&bytes.Buffer{}, "", 0), RelayTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if _, err := svc.Submit(context.Background(), Intake, validIntake()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if deadline.IsZero() || time.Until(deadline) > time.Second {
		t.Fatalf("deadline = %v, want within 1s", deadline)
	}
}
