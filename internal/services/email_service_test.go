package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func TestBuildContactMessage_NoHeaderInjection(t *testing.T) {
	from := &mail.Address{Name: "Ann", Address: "ann@example.com"}
	raw := string(buildContactMessage("team@hirely.io", from, "Hi\r\nBcc: victim@example.com", "Hello team"))

	if strings.Contains(raw, "\r\nBcc:") {
		t.Fatalf("subject injected a header:\n%s", raw)
	}
	headers, body, ok := strings.Cut(raw, "\r\n\r\n")
	if !ok {
		t.Fatalf("no header/body separator:\n%s", raw)
	}
	if strings.Contains(headers, "From:") {
		t.Errorf("visitor address must not be a From header:\n%s", headers)
	}
	if !strings.HasPrefix(body, "From: \"Ann\" <ann@example.com>\r\n\r\nHello team") {
		t.Errorf("body should open with the visitor line:\n%s", body)
	}
	for _, want := range []string{
		"To: team@hirely.io\r\n",
		"Reply-To: \"Ann\" <ann@example.com>\r\n",
		"Subject: [Hirely contact] Hi  Bcc: victim@example.com\r\n",
		"Hello team",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestSendContact_LogsWhenNotConfigured(t *testing.T) {
	svc := NewEmailService(nil, "", logging.NewNop())

	delivered, err := svc.SendContact(context.Background(), dtos.ContactRequest{
		Name: "Ann", Email: "ann@example.com", Message: "hi",
	})
	if err != nil || delivered {
		t.Errorf("SendContact = %v, %v; want false, nil", delivered, err)
	}

	if _, err := svc.SendContact(context.Background(), dtos.ContactRequest{Email: "not-an-email"}); err == nil {
		t.Error("expected error for invalid sender")
	}
}

func TestSendContact_SendsThroughGmail(t *testing.T) {
	var gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/users/me/messages/send") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var msg gmail.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotRaw = msg.Raw
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m-1"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	gsvc, err := gmail.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("gmail.NewService: %v", err)
	}

	svc := NewEmailService(gsvc, "team@hirely.io", logging.NewNop())
	delivered, err := svc.SendContact(ctx, dtos.ContactRequest{
		Name: "Ann", Email: "ann@example.com", Subject: "Partnership", Message: "Let's talk",
	})
	if err != nil || !delivered {
		t.Fatalf("SendContact = %v, %v", delivered, err)
	}

	decoded, err := base64.URLEncoding.DecodeString(gotRaw)
	if err != nil {
		t.Fatalf("raw is not base64url: %v", err)
	}
	if !strings.Contains(string(decoded), "Subject: [Hirely contact] Partnership") {
		t.Errorf("unexpected message:\n%s", decoded)
	}
}
