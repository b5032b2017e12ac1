package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendInviteEmail delivers a household invite code. In development the email
// is logged instead of sent.
func (s *EmailService) SendInviteEmail(email, code, householdName string) error {
	subject := fmt.Sprintf("You're invited to join %s on %s", householdName, s.appName)
	body := fmt.Sprintf("You've been invited to join the household %q.\n\nEnter this code in the app to join:\n\n    %s\n", householdName, code)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "household_invite", "to", email, "code", code)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "household_invite", "to", email)
	}
	return err
}
