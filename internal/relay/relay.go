// Package relay forwards lead submissions to outside services.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Message is one form submission bound to a mail template.
type Message struct {
	Template string
	Fields   map[string]string
}

// Validate reports whether the message can be sent.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Template) == "" {
		return errors.New("relay: template is required")
	}
	return nil
}

// SortedKeys returns the field names in lexical order.
func (m Message) SortedKeys() []string {
	keys := make([]string, 0, len(m.Fields))
	for key := range m.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Relay delivers a message and reports success or failure.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// Func adapts a function to Relay.
type Func func(ctx context.Context, msg Message) error

// Send calls f.
func (f Func) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// LogRelay logs messages and always succeeds. It stands in for the mail
// API in development.
type LogRelay struct {
	Logger *log.Logger
}

// Send logs msg.
func (r LogRelay) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("relay log template=%s fields=%s", msg.Template, strings.Join(msg.SortedKeys(), ","))
	return nil
}

// Fanout sends to a primary relay, whose result decides the outcome, and
// then to secondaries whose failures are only logged.
type Fanout struct {
	Primary     Relay
	Secondaries []Relay
	Logger      *log.Logger
}

// Send delivers msg to every relay.
func (f Fanout) Send(ctx context.Context, msg Message) error {
	if f.Primary == nil {
		return errors.New("relay: primary is required")
	}
	if err := f.Primary.Send(ctx, msg); err != nil {
		return fmt.Errorf("primary relay: %w", err)
	}
	logger := f.Logger
	if logger == nil {
		logger = log.Default()
	}
	for i, secondary := range f.Secondaries {
		if secondary == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			logger.Printf("secondary relay skipped index=%d template=%s err=%v", i, msg.Template, err)
			continue
		}
		if err := sendUntilDone(ctx, secondary, msg); err != nil {
			logger.Printf("secondary relay failed index=%d template=%s err=%v", i, msg.Template, err)
		}
	}
	return nil
}

// sendUntilDone stops waiting on r once ctx ends, even if r ignores ctx.
func sendUntilDone(ctx context.Context, r Relay, msg Message) error {
	done := make(chan error, 1)
	go func() { done <- r.Send(ctx, msg) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
