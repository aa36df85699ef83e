package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vk4tech/passbot/internal/config"
)

func newTestHandler(cfg *config.Config, dir *fakeDirectory) (*chi.Mux, *fakeMessenger) {
	messenger := &fakeMessenger{}
	deliverer := NewDeliverer(messenger, nil, config.MailConfig{})
	dispatcher := NewDispatcher(cfg.Gateway.PhoneNumberID, dir, messenger, deliverer, nil)

	r := chi.NewRouter()
	NewHandler(cfg, dispatcher).RegisterRoutes(r)
	return r, messenger
}

func configuredGateway(verifyToken string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Gateway.BaseURL = "https://graph.example.com/v21.0"
	cfg.Gateway.APIKey = "gw-key"
	cfg.Gateway.PhoneNumberID = testPhoneNumberID
	cfg.Gateway.VerifyToken = verifyToken
	return cfg
}

func TestVerifyEchoesChallengeWithMatchingToken(t *testing.T) {
	r, _ := newTestHandler(configuredGateway("secret"), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "12345" {
		t.Errorf("body = %q, want challenge echo", rec.Body.String())
	}
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	r, _ := newTestHandler(configuredGateway("secret"), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestVerifyEchoesWithoutConfiguredToken(t *testing.T) {
	r, _ := newTestHandler(configuredGateway(""), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/whatsapp/webhook?hub.mode=subscribe&hub.challenge=abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "abc" {
		t.Errorf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestVerifyPlainGetReportsRunning(t *testing.T) {
	r, _ := newTestHandler(configuredGateway("secret"), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/api/whatsapp/webhook", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Webhook is running") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestReceiveRejectsUnconfiguredGateway(t *testing.T) {
	cfg := config.DefaultConfig() // no credentials
	r, _ := newTestHandler(cfg, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook",
		strings.NewReader(`{"object":"whatsapp_business_account","entry":[]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestReceiveRejectsBadJSON(t *testing.T) {
	r, _ := newTestHandler(configuredGateway(""), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook",
		strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReceiveReturnsSummary(t *testing.T) {
	dir := &fakeDirectory{}
	r, messenger := newTestHandler(configuredGateway(""), dir)

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"metadata": {"phone_number_id": "` + testPhoneNumberID + `"},
					"messages": [{"from": "15551234567", "type": "text", "text": {"body": "get pass"}}]
				}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var summary Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if !summary.Received || !summary.Processed {
		t.Errorf("summary = %+v", summary)
	}
	if len(messenger.texts) != 1 {
		t.Errorf("got %d replies, want the no-match reply", len(messenger.texts))
	}
}

func TestReceiveEmptyPayloadNotProcessed(t *testing.T) {
	r, _ := newTestHandler(configuredGateway(""), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook",
		strings.NewReader(`{"object":"whatsapp_business_account","entry":[]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var summary Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if !summary.Received || summary.Processed {
		t.Errorf("summary = %+v, want received only", summary)
	}
}
