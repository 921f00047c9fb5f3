package mailapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kakascoaching/site/internal/platform/httpclient"
	"github.com/kakascoaching/site/internal/relay"
)

func TestNewRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{PublicKey: "pk"}); err == nil {
		t.Fatal("expected missing service id error")
	}
	if _, err := New(Config{ServiceID: "svc"}); err == nil {
		t.Fatal("expected missing public key error")
	}
}

func TestSendPostsTemplatePayload(t *testing.T) {
	t.Parallel()

	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client, err := New(Config{
		Endpoint:   srv.URL,
		ServiceID:  "service_1",
		PublicKey:  "public_1",
		PrivateKey: "private_1",
		Templates:  map[string]string{"enrollment": "template_wg79uob"},
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = client.Send(context.Background(), relay.Message{
		Template: "enrollment",
		Fields:   map[string]string{"user_name": "Ali"},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.ServiceID != "service_1" || got.UserID != "public_1" || got.AccessToken != "private_1" {
		t.Fatalf("payload credentials = %+v", got)
	}
	if got.TemplateID != "template_wg79uob" {
		t.Fatalf("template id = %q", got.TemplateID)
	}
	if got.TemplateParams["user_name"] != "Ali" {
		t.Fatalf("template params = %v", got.TemplateParams)
	}
}

func TestSendMakesOneAttemptByDefault(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "The service is temporarily unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := New(Config{Endpoint: srv.URL, ServiceID: "s", PublicKey: "p", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = client.Send(context.Background(), relay.Message{Template: "intake"})
	var herr *httpclient.HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("Send() error = %v, want HTTPError 503", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestTemplateIDFallsBackToLogicalName(t *testing.T) {
	t.Parallel()

	client, err := New(Config{ServiceID: "s", PublicKey: "p"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := client.TemplateID("intake"); got != "intake" {
		t.Fatalf("TemplateID() = %q", got)
	}
}
