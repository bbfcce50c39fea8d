package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent after registration.
type WelcomeEmailData struct {
	Email       string
	DisplayName string
}

// GuestSignupEmailData holds data for the notification sent to an event
// owner when a guest signs up through the public link.
type GuestSignupEmailData struct {
	OwnerEmail string
	OwnerName  string
	EventName  string
	GuestName  string
	PartySize  int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendGuestSignupNotice(ctx context.Context, data *GuestSignupEmailData) error
}
