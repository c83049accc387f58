package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/hplandscaping/booking-platform/pkg/logging"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "HP Landscaping" {
		t.Errorf("expected default from name, got %q", sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "office@example.com",
		Subject: "Test",
		Body:    "Test body",
	})
	if err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestLogSender_ScrubsContactDetails(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(logging.NewWithWriter("info", &buf))

	err := sender.Send(context.Background(), EmailMessage{
		To:      "office@example.com",
		Subject: "New booking request BOOK-1",
		Body:    "Email: jane@example.com\nPhone: 555-123-4567",
	})
	if err != nil {
		t.Fatalf("log sender should not fail: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "jane@example.com") || strings.Contains(out, "555-123-4567") {
		t.Fatalf("expected contact details to be scrubbed, got %s", out)
	}
	if !strings.Contains(out, "BOOK-1") {
		t.Fatalf("expected subject in log output, got %s", out)
	}
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "noreply@example.com"}, nil)

	if err := sender.Send(context.Background(), EmailMessage{To: "office@example.com", Subject: "Hi", Body: "text"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := aws.ToString(client.input.FromEmailAddress); got != "HP Landscaping <noreply@example.com>" {
		t.Errorf("unexpected from address %q", got)
	}
	if client.input.Content.Simple.Body.Html != nil {
		t.Error("expected no html part when HTML is empty")
	}
	if got := aws.ToString(client.input.Content.Simple.Body.Text.Data); got != "text" {
		t.Errorf("unexpected text body %q", got)
	}
}

func TestSESSender_SendError(t *testing.T) {
	sender := NewSESSender(&fakeSES{err: errors.New("throttled")}, SESConfig{FromEmail: "noreply@example.com"}, nil)
	if err := sender.Send(context.Background(), EmailMessage{To: "office@example.com"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSESSender_NilClient(t *testing.T) {
	if NewSESSender(nil, SESConfig{}, nil) != nil {
		t.Error("expected nil sender without client")
	}
}
