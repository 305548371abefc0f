package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"commonage-backend/internal/config"
	"commonage-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText, htmlBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendRegistrationDecisionNotification(ctx context.Context, email, name, status, reason string) error {
	subject := fmt.Sprintf("Your commoner registration was %s", strings.ToLower(status))

	plainText := fmt.Sprintf("Dear %s,\n\nYour commoner registration has been %s.", name, strings.ToLower(status))
	htmlBody := fmt.Sprintf("<p>Dear %s,</p><p>Your commoner registration has been <strong>%s</strong>.</p>", name, strings.ToLower(status))
	if reason != "" {
		plainText += fmt.Sprintf("\n\nReason: %s", reason)
		htmlBody += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}
	plainText += "\n\nCommonage Portal"
	htmlBody += "<p>Commonage Portal</p>"

	return s.send(ctx, email, name, subject, plainText, htmlBody)
}

func (s *emailService) SendApplicationDecisionNotification(ctx context.Context, email, name, status, reason, lotNumber string) error {
	subject := fmt.Sprintf("Your land application was %s", strings.ToLower(status))

	plainText := fmt.Sprintf("Dear %s,\n\nYour land application has been %s.", name, strings.ToLower(status))
	htmlBody := fmt.Sprintf("<p>Dear %s,</p><p>Your land application has been <strong>%s</strong>.</p>", name, strings.ToLower(status))
	if lotNumber != "" {
		plainText += fmt.Sprintf("\n\nAllocated lot: %s", lotNumber)
		htmlBody += fmt.Sprintf("<p>Allocated lot: %s</p>", lotNumber)
	}
	if reason != "" {
		plainText += fmt.Sprintf("\n\nReason: %s", reason)
		htmlBody += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}
	plainText += "\n\nCommonage Portal"
	htmlBody += "<p>Commonage Portal</p>"

	return s.send(ctx, email, name, subject, plainText, htmlBody)
}

func (s *emailService) SendStaleReviewDigest(ctx context.Context, adminEmail string, applicationIDs []int32) error {
	if len(applicationIDs) == 0 {
		return nil
	}

	ids := make([]string, len(applicationIDs))
	for i, id := range applicationIDs {
		ids[i] = fmt.Sprintf("#%d", id)
	}
	subject := fmt.Sprintf("%d land application(s) awaiting review", len(applicationIDs))
	plainText := fmt.Sprintf("The following land applications have been waiting on review:\n\n%s\n\nCommonage Portal", strings.Join(ids, "\n"))
	htmlBody := fmt.Sprintf("<p>The following land applications have been waiting on review:</p><p>%s</p><p>Commonage Portal</p>", strings.Join(ids, "<br>"))

	return s.send(ctx, adminEmail, "Administrator", subject, plainText, htmlBody)
}
