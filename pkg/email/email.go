package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"go-cv-backend/config"
	"go-cv-backend/internal/domain"
)

var ErrNotConfigured = errors.New("email: SMTP is not configured")

// sendFunc matches smtp.SendMail so tests can capture outgoing messages.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends the application's emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	send      sendFunc
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		send:      smtp.SendMail,
	}
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

type activationData struct {
	Prenom     string
	ConfirmURL string
}

type reminderData struct {
	Prenom string
	Nom    string
}

var (
	activationTmpl = template.Must(template.New("activation").Parse(layoutStart + `
        <h2>Bienvenue {{.Prenom}}</h2>
        <p>Merci pour votre inscription. Veuillez confirmer votre adresse email en cliquant sur le lien ci-dessous :</p>
        <p><a class="button" href="{{.ConfirmURL}}">Confirmer mon compte</a></p>
        <p>Si vous n'êtes pas à l'origine de cette inscription, ignorez ce message.</p>
` + layoutEnd))

	reminderTmpl = template.Must(template.New("reminder").Parse(layoutStart + `
        <h2>Bonjour {{.Prenom}} {{.Nom}},</h2>
        <p>Merci de bien vouloir mettre à jour votre CV sur la plateforme afin que nous disposions d'informations à jour.</p>
        <p>Cordialement,</p>
` + layoutEnd))
)

const layoutStart = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { background: #0066cc; color: white; padding: 10px 18px; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">`

const layoutEnd = `        <div class="footer"><p>Ce message a été envoyé automatiquement, merci de ne pas y répondre.</p></div>
    </div>
</body>
</html>`

func (s *EmailService) SendActivation(ctx context.Context, to, prenom, confirmURL string) error {
	body, err := render(activationTmpl, activationData{Prenom: prenom, ConfirmURL: confirmURL})
	if err != nil {
		return err
	}
	return s.deliver(ctx, []string{to}, "Confirmation de votre compte", htmlMessage(body))
}

func (s *EmailService) SendUpdateReminder(ctx context.Context, r domain.Recipient) error {
	body, err := render(reminderTmpl, reminderData{Prenom: r.Prenom, Nom: r.Nom})
	if err != nil {
		return err
	}
	return s.deliver(ctx, []string{r.Email}, "Mise à jour de votre CV", htmlMessage(body))
}

// SendWithAttachment sends htmlBody (already sanitised by the caller) with one attached file.
func (s *EmailService) SendWithAttachment(ctx context.Context, to []string, subject, htmlBody string, att domain.Attachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	htmlPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=UTF-8"},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return err
	}
	if err := writeBase64(htmlPart, []byte(htmlBody)); err != nil {
		return err
	}

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filePart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": att.Filename})},
	})
	if err != nil {
		return err
	}
	if err := writeBase64(filePart, att.Data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	msg := message{
		contentType: "multipart/mixed; boundary=" + w.Boundary(),
		body:        buf.Bytes(),
	}
	return s.deliver(ctx, to, subject, msg)
}

type message struct {
	contentType string
	body        []byte
}

func htmlMessage(body []byte) message {
	return message{contentType: "text/html; charset=UTF-8", body: body}
}

func (s *EmailService) deliver(ctx context.Context, to []string, subject string, m message) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var raw bytes.Buffer
	fmt.Fprintf(&raw, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&raw, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&raw, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	raw.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&raw, "Content-Type: %s\r\n\r\n", m.contentType)
	raw.Write(m.body)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, to, raw.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func render(t *template.Template, data any) ([]byte, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.Bytes(), nil
}

// writeBase64 wraps encoded output at 76 columns.
func writeBase64(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := w.Write([]byte(enc[:76] + "\r\n")); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err := w.Write([]byte(enc + "\r\n"))
	return err
}
