package report

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI is the minimal interface for sending email through SES.
type SESAPI interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailSender delivers rendered reports over SES.
type EmailSender struct {
	client SESAPI
	from   string
}

// NewEmailSender creates a sender with a fixed from-address.
func NewEmailSender(client SESAPI, from string) *EmailSender {
	return &EmailSender{client: client, from: from}
}

// Send delivers an HTML email to the recipients.
func (s *EmailSender) Send(ctx context.Context, recipients []string, subject, htmlBody string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &sestypes.Destination{
			ToAddresses: recipients,
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// HTMLBody wraps plain report text for email delivery, preserving line
// structure.
func HTMLBody(text string) string {
	return fmt.Sprintf("<html><body><pre style='white-space:pre-wrap;font-family:sans-serif;'>%s</pre></body></html>",
		html.EscapeString(text))
}
