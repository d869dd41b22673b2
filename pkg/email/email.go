package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"

	"go-touring-backend/config"
	"go-touring-backend/internal/domain"
)

// EmailService delivers contact submissions via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service with Brevo SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
		send:      smtp.SendMail,
	}
}

// contactEmailData is what the template renders; labels are resolved here
type contactEmailData struct {
	ReferenceID  string
	ReceivedAt   string
	Name         string
	Company      string
	Email        string
	Phone        string
	ServiceLabel string
	Message      string
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Nueva solicitud de contacto</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #222; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #111; color: #e040fb; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f7f7f7; }
        .field { margin-bottom: 12px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #e040fb; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Nueva solicitud de contacto</h1></div>
        <div class="content">
            <div class="field"><div class="label">Nombre:</div>{{.Name}}</div>
            <div class="field"><div class="label">Empresa:</div>{{.Company}}</div>
            <div class="field"><div class="label">Email:</div>{{.Email}}</div>
            {{if .Phone}}<div class="field"><div class="label">Teléfono:</div>{{.Phone}}</div>{{end}}
            <div class="field"><div class="label">Servicio:</div>{{.ServiceLabel}}</div>
            <div class="field"><div class="label">Mensaje:</div><div class="message-box">{{.Message}}</div></div>
        </div>
        <div class="footer">
            <p>Referencia {{.ReferenceID}} · {{.ReceivedAt}}</p>
            <p>Para responder, escribe a: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`))

// Notify sends a contact submission to the configured recipient
func (s *EmailService) Notify(ctx context.Context, envelope domain.ContactEnvelope) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}

	msg, err := s.buildMessage(envelope)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) buildMessage(envelope domain.ContactEnvelope) ([]byte, error) {
	sub := envelope.Submission
	data := contactEmailData{
		ReferenceID:  envelope.ReferenceID,
		ReceivedAt:   envelope.ReceivedAt.UTC().Format("2006-01-02 15:04 MST"),
		Name:         sub.Name,
		Company:      sub.Company,
		Email:        sub.Email,
		Phone:        sub.Phone,
		ServiceLabel: serviceLabel(sub.Service),
		Message:      sub.Message,
	}

	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := mime.QEncoding.Encode("utf-8",
		fmt.Sprintf("Contacto web: %s (%s)", headerSafe(sub.Company), data.ServiceLabel))

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		headerSafe(sub.Email),
		subject,
		body.String(),
	))
	return msg, nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

func serviceLabel(id domain.ServiceID) string {
	for _, opt := range domain.ServiceOptions {
		if opt.Value == id {
			return opt.Label
		}
	}
	return string(id)
}

// headerSafe drops CR and LF so submitted values cannot inject headers.
func headerSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
