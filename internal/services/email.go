package services

import (
	"context"
	"fmt"

	"guestlist/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcome sends the post-registration email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// SendGuestSignupNotice notifies an event owner using the "guest_signup" template.
func (s *emailService) SendGuestSignupNotice(ctx context.Context, data *domain.GuestSignupEmailData) error {
	if data == nil {
		return fmt.Errorf("guest signup email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("guest_signup", data)
	if err != nil {
		return fmt.Errorf("failed to render guest_signup template: %w", err)
	}
	if err := s.mailer.Send(data.OwnerEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send guest signup email: %w", err)
	}
	return nil
}
