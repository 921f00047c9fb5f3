// Package telegram posts lead notifications to a Telegram chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kakascoaching/site/internal/platform/timeouts"
	"github.com/kakascoaching/site/internal/relay"
)

// Sender is the slice of the bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier implements relay.Relay by messaging one chat.
type Notifier struct {
	sender Sender
	chatID int64
}

var _ relay.Relay = (*Notifier)(nil)

// New connects to the Telegram bot API with token. Every API call is
// capped at timeouts.Relay.
func New(token string, chatID int64) (*Notifier, error) {
	client := &http.Client{Timeout: timeouts.Relay}
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, client, chatID)
}

// NewWithEndpoint connects using a custom API endpoint and HTTP client.
func NewWithEndpoint(token string, endpoint string, client *http.Client, chatID int64) (*Notifier, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("telegram: token is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram: chat id is required")
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: connect bot: %w", err)
	}
	return NewWithSender(bot, chatID), nil
}

// NewWithSender wraps an existing sender.
func NewWithSender(sender Sender, chatID int64) *Notifier {
	return &Notifier{sender: sender, chatID: chatID}
}

// Send posts a plain-text summary of msg.
func (n *Notifier) Send(ctx context.Context, msg relay.Message) error {
	if n == nil || n.sender == nil {
		return errors.New("telegram: notifier is not configured")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// The bot API takes no context; the HTTP client timeout bounds the
	// abandoned call.
	done := make(chan error, 1)
	go func() {
		_, err := n.sender.Send(tgbotapi.NewMessage(n.chatID, Format(msg)))
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram: send message: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram: send message: %w", ctx.Err())
	}
}

// Format renders msg as the notification text.
func Format(msg relay.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s submission", msg.Template)
	for _, key := range msg.SortedKeys() {
		value := strings.TrimSpace(msg.Fields[key])
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %s", key, value)
	}
	return b.String()
}
