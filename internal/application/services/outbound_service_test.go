package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/email"
)

type captureSink struct {
	sent []email.BuildRequestMessage
	err  error
}

func (s *captureSink) SendBuildRequest(msg email.BuildRequestMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestOutboundSendBuildRequest(t *testing.T) {
	sink := &captureSink{}
	svc := NewOutboundService(sink, "15551234567", quietLogger(t))

	req := svc.ComposeBuildRequest("Ana", "ana@example.com", "555-0101", "Local Café", "Bean There", "#336699", "launch asap", "https://microsites.test/preview/local-cafe/abc")
	if req.RequestID == "" {
		t.Fatal("request id should be assigned")
	}

	if err := svc.SendBuildRequest(req); err != nil {
		t.Fatal(err)
	}
	if len(sink.sent) != 1 {
		t.Fatalf("sent %d messages", len(sink.sent))
	}
	if sink.sent[0].RequestID != req.RequestID || sink.sent[0].SiteName != "Bean There" {
		t.Errorf("message content: %+v", sink.sent[0])
	}
}

func TestOutboundSendFailureIsRetryable(t *testing.T) {
	sinkErr := errors.New("smtp down")
	sink := &captureSink{err: sinkErr}
	svc := NewOutboundService(sink, "", quietLogger(t))

	req := svc.ComposeBuildRequest("Ana", "ana@example.com", "", "Local Café", "Bean There", "", "", "link")
	firstID := req.RequestID

	if err := svc.SendBuildRequest(req); !errors.Is(err, sinkErr) {
		t.Fatalf("got %v", err)
	}
	if req.RequestID != firstID || req.SiteName != "Bean There" {
		t.Error("composed request must survive a failed send for retry")
	}

	sink.err = nil
	if err := svc.SendBuildRequest(req); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if sink.sent[0].RequestID != firstID {
		t.Error("retry should reuse the same request id")
	}
}

func TestOutboundNoSinkConfigured(t *testing.T) {
	svc := NewOutboundService(nil, "", quietLogger(t))
	req := svc.ComposeBuildRequest("Ana", "ana@example.com", "", "Local Café", "", "", "", "link")
	if err := svc.SendBuildRequest(req); err == nil {
		t.Fatal("expected an error with no sink configured")
	}
}

func TestOutboundWhatsAppLink(t *testing.T) {
	svc := NewOutboundService(nil, "15551234567", quietLogger(t))

	link := svc.WhatsAppLink("", "Bean There", "https://microsites.test/preview/local-cafe/abc")
	if !strings.HasPrefix(link, "https://wa.me/15551234567?text=") {
		t.Fatalf("link shape: %s", link)
	}
	if !strings.Contains(link, "https%3A%2F%2Fmicrosites.test") {
		t.Error("share link should be URL-encoded into the message")
	}

	custom := svc.WhatsAppLink("+44 7700 900123", "", "x")
	if !strings.HasPrefix(custom, "https://wa.me/447700900123?text=") {
		t.Fatalf("custom phone link: %s", custom)
	}
}
