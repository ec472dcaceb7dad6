package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type mockSESClient struct {
	input *sesv2.SendEmailInput
	err   error
}

func (m *mockSESClient) SendEmail(_ context.Context, input *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func TestEmailSenderSend(t *testing.T) {
	mock := &mockSESClient{}
	s := NewEmailSender(mock, "noreply@example.com")

	recipients := []string{"ops@example.com", "finops@example.com"}
	err := s.Send(context.Background(), recipients, "[sandbox] AWS Cloud Report – Daily", "<html>body</html>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.input == nil {
		t.Fatal("expected SendEmail to be called")
	}
	if *mock.input.FromEmailAddress != "noreply@example.com" {
		t.Fatalf("unexpected from address: %s", *mock.input.FromEmailAddress)
	}
	if len(mock.input.Destination.ToAddresses) != 2 {
		t.Fatalf("unexpected recipients: %v", mock.input.Destination.ToAddresses)
	}

	msg := mock.input.Content.Simple
	if *msg.Subject.Data != "[sandbox] AWS Cloud Report – Daily" {
		t.Fatalf("unexpected subject: %s", *msg.Subject.Data)
	}
	if *msg.Subject.Charset != "UTF-8" {
		t.Fatalf("unexpected subject charset: %s", *msg.Subject.Charset)
	}
	if *msg.Body.Html.Data != "<html>body</html>" {
		t.Fatalf("unexpected body: %s", *msg.Body.Html.Data)
	}
}

func TestEmailSenderSendError(t *testing.T) {
	mock := &mockSESClient{err: errors.New("address not verified")}
	s := NewEmailSender(mock, "noreply@example.com")

	err := s.Send(context.Background(), []string{"ops@example.com"}, "subject", "body")
	if err == nil {
		t.Fatal("expected delivery error to propagate")
	}
	if !strings.Contains(err.Error(), "address not verified") {
		t.Fatalf("expected wrapped SES error, got %v", err)
	}
}

func TestHTMLBody(t *testing.T) {
	body := HTMLBody("Summary: 2 resources\n<script>alert(1)</script>")

	if !strings.Contains(body, "<pre style='white-space:pre-wrap;font-family:sans-serif;'>") {
		t.Fatalf("expected preformatted wrapper, got %s", body)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("report text must be escaped, got %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %s", body)
	}
}
