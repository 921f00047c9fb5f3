package leads

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/kakascoaching/site/internal/platform/errors"
	"github.com/kakascoaching/site/internal/platform/id"
	"github.com/kakascoaching/site/internal/platform/timeouts"
	"github.com/kakascoaching/site/internal/relay"
	"github.com/kakascoaching/site/internal/storage"
)

// Localization keys for submission outcomes.
const (
	KeyInvalid    = "forms.error.invalid"
	KeyRetry      = "errors.generic"
	RetryMessage  = "Something went wrong. Please try again."
	invalidPrefix = "submission has invalid fields"
)

// Submission is an accepted form submission.
type Submission struct {
	ID        string
	Form      string
	Template  string
	Fields    map[string]string
	CreatedAt time.Time
}

// Config wires a Service.
type Config struct {
	Relay relay.Relay
	// Ledger is optional.
	Ledger       storage.LeadStore
	Logger       *log.Logger
	RelayTimeout time.Duration
	Now          func() time.Time
	NewID        func() string
}

// Service validates submissions and relays them.
type Service struct {
	relay        relay.Relay
	ledger       storage.LeadStore
	logger       *log.Logger
	relayTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// NewService builds a Service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Relay == nil {
		return nil, errors.New("leads: relay is required")
	}
	svc := &Service{
		relay:        cfg.Relay,
		ledger:       cfg.Ledger,
		logger:       cfg.Logger,
		relayTimeout: cfg.RelayTimeout,
		now:          cfg.Now,
		newID:        cfg.NewID,
	}
	if svc.logger == nil {
		svc.logger = log.Default()
	}
	if svc.relayTimeout <= 0 {
		svc.relayTimeout = timeouts.Relay
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.newID == nil {
		svc.newID = newSubmissionID
	}
	return svc, nil
}

// Submit validates values against form and sends them through the relay
// exactly once. Field failures return a validation error wrapping
// FieldErrors and never reach the relay; relay failures return an
// unavailable error.
func (s *Service) Submit(ctx context.Context, form Form, values map[string]string) (Submission, error) {
	if s == nil {
		return Submission{}, errors.New("leads: service is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if fieldErrs := form.Validate(values); len(fieldErrs) > 0 {
		return Submission{}, apperrors.Wrap(apperrors.KindValidation, KeyInvalid, invalidPrefix, fieldErrs)
	}

	sub := Submission{
		ID:        s.newID(),
		Form:      form.ID,
		Template:  form.Template,
		Fields:    form.Normalize(values),
		CreatedAt: s.now().UTC(),
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.relayTimeout)
	sendErr := s.relay.Send(sendCtx, relay.Message{Template: sub.Template, Fields: sub.Fields})
	cancel()

	s.record(ctx, sub, sendErr)

	if sendErr != nil {
		s.logger.Printf("lead relay failed form=%s id=%s err=%v", sub.Form, sub.ID, sendErr)
		return sub, apperrors.Wrap(apperrors.KindUnavailable, KeyRetry, RetryMessage, sendErr)
	}
	s.logger.Printf("lead relayed form=%s id=%s", sub.Form, sub.ID)
	return sub, nil
}

func (s *Service) record(ctx context.Context, sub Submission, sendErr error) {
	if s.ledger == nil {
		return
	}
	lead := storage.Lead{
		ID:        sub.ID,
		Form:      sub.Form,
		Template:  sub.Template,
		Fields:    sub.Fields,
		Status:    storage.LeadSent,
		CreatedAt: sub.CreatedAt,
	}
	if sendErr != nil {
		lead.Status = storage.LeadFailed
		lead.Error = sendErr.Error()
	}
	if err := s.ledger.PutLead(ctx, lead); err != nil {
		s.logger.Printf("lead ledger write failed form=%s id=%s err=%v", sub.Form, sub.ID, err)
	}
}

// FieldErrorsOf extracts field errors from a Submit error.
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}
	return fieldErrs, len(fieldErrs) > 0
}

func newSubmissionID() string {
	value, err := id.New()
	if err != nil {
		return uuid.NewString()
	}
	return value
}
