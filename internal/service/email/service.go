package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"kejani-backend/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendVerificationDecision(ctx context.Context, toEmail, fullName, propertyTitle, decision string) error
	SendApplicationReceived(ctx context.Context, toEmail, fullName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var bodyTmpl = template.Must(template.New("body").Parse(`
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
	<h2>{{.Title}}</h2>
	<p>Hi {{.Name}},</p>
	<p>{{.Message}}</p>
	{{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
	<p>— The Kejani team</p>
</div>`))

type bodyData struct {
	Title    string
	Name     string
	Message  string
	Link     string
	LinkText string
}

func (s *service) sendEmail(toEmail, subject string, data bodyData) error {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Kejani <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	return s.sendEmail(toEmail, "Welcome to Kejani", bodyData{
		Title:    "Welcome to Kejani",
		Name:     fullName,
		Message:  "Your account is ready. You can now browse listings or submit your own property.",
		Link:     fmt.Sprintf("https://%s/login", s.config.Domain),
		LinkText: "Sign in",
	})
}

func (s *service) SendVerificationDecision(ctx context.Context, toEmail, fullName, propertyTitle, decision string) error {
	return s.sendEmail(toEmail, fmt.Sprintf("Your listing was %s", decision), bodyData{
		Title:   "Listing review complete",
		Name:    fullName,
		Message: fmt.Sprintf("Your property %q has been %s by our verification team.", propertyTitle, decision),
	})
}

func (s *service) SendApplicationReceived(ctx context.Context, toEmail, fullName string) error {
	return s.sendEmail(toEmail, "We received your application", bodyData{
		Title:   "Application received",
		Name:    fullName,
		Message: "Thanks for applying. Our team will review your application and get back to you.",
	})
}
