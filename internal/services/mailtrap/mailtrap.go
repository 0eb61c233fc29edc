// Package mailtrap provides transactional email via the Mailtrap API.
package mailtrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Service is the email surface the handlers depend on.
type Service interface {
	SendPasswordResetEmail(toEmail, toName, resetToken string) error
}

type MailtrapService struct {
	apiKey   string
	url      string
	resetURL string
	client   *http.Client
}

func NewMailtrapService() *MailtrapService {
	resetURL := os.Getenv("PASSWORD_RESET_URL")
	if resetURL == "" {
		resetURL = "http://localhost:3000/reset-password"
	}

	return &MailtrapService{
		apiKey:   os.Getenv("MAILTRAP_API_KEY"),
		url:      os.Getenv("MAILTRAP_API_URL"),
		resetURL: resetURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// EmailRecipient represents an email recipient.
type EmailRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// EmailRequest represents the request payload for sending an email.
type EmailRequest struct {
	From     EmailRecipient   `json:"from"`
	To       []EmailRecipient `json:"to"`
	Subject  string           `json:"subject"`
	HTML     string           `json:"html,omitempty"`
	Text     string           `json:"text,omitempty"`
	Category string           `json:"category,omitempty"`
}

// SendPasswordResetEmail sends a password recovery email with the reset link.
func (m *MailtrapService) SendPasswordResetEmail(toEmail, toName, resetToken string) error {
	link := fmt.Sprintf("%s?token=%s", m.resetURL, resetToken)

	htmlBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
			<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
				<h2>Password Reset Request</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset your password. Click the link below to reset it:</p>
				<p style="word-break: break-all;"><a href="%s">%s</a></p>
				<p>This link will expire in 1 hour.</p>
				<p>If you didn't request a password reset, please ignore this email.</p>
			</div>
		</body>
		</html>
	`, toName, link, link)

	textBody := fmt.Sprintf(`Hello %s,

We received a request to reset your password. Open the link below to reset it:

%s

This link will expire in 1 hour.

If you didn't request a password reset, please ignore this email.
`, toName, link)

	emailReq := EmailRequest{
		From: EmailRecipient{
			Email: "noreply@learningpath.app",
			Name:  "Learning Path",
		},
		To: []EmailRecipient{
			{Email: toEmail, Name: toName},
		},
		Subject:  "Password Reset Request",
		HTML:     htmlBody,
		Text:     textBody,
		Category: "password_reset",
	}

	return m.sendEmail(emailReq)
}

func (m *MailtrapService) sendEmail(emailReq EmailRequest) error {
	payload, err := json.Marshal(emailReq)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mailtrap API returned status: %d", resp.StatusCode)
	}

	return nil
}
