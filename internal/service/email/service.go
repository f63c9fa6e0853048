package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"feedback-backend/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error
	SendNotificationEmail(ctx context.Context, toEmail, subject, message string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	tmpl   *template.Template
}

// bodyTemplate is the shared shell for every outbound email.
const bodyTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Message}}</p>
  {{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
  <p>— The Feedback App team</p>
</body>
</html>`

type templateData struct {
	Title    string
	Name     string
	Message  string
	Link     string
	LinkText string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	tmpl := template.Must(template.New("email").Parse(bodyTemplate))
	return &service{
		client: client,
		config: cfg,
		tmpl:   tmpl,
	}
}

func (s *service) sendEmail(toEmail, subject string, data templateData) error {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Feedback App <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	return s.sendEmail(toEmail, "Welcome to the Feedback App!", templateData{
		Title:    "Welcome to the Feedback App",
		Name:     name,
		Message:  "Thanks for joining! We're excited to have you onboard.",
		Link:     fmt.Sprintf("https://%s/login", s.config.Domain),
		LinkText: "Sign in",
	})
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	return s.sendEmail(toEmail, "Password Reset Request", templateData{
		Title:    "Password Reset Request",
		Name:     name,
		Message:  "Click the link below to reset your password. The link expires in one hour.",
		Link:     fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
		LinkText: "Reset password",
	})
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, subject, message string) error {
	return s.sendEmail(toEmail, subject, templateData{
		Title:   subject,
		Name:    "there",
		Message: message,
	})
}
