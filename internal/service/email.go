package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"members-lounge-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewEmailService sends plain-text mail through SendGrid. With an empty API
// key messages are only logged, which is how local development runs.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	s := &emailService{
		fromEmail: fromEmail,
		fromName:  fromName,
	}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

func (s *emailService) Send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	if s.client == nil {
		logger.DebugContext(ctx, "Email delivery disabled, skipping", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", toEmail)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", toEmail, "status", resp.StatusCode)
	return err
}
