// Package email renders the German offer email and dispatches it via
// SMTP to the configured fixed recipient.
package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"

	"offer-form-backend/config"
	"offer-form-backend/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Service sends offer emails over SMTP.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	subject   string
}

// NewService creates the mail service from configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.OfferEmailTo,
		subject:   cfg.OfferEmailSubject,
	}
}

// IsConfigured checks if the service has a usable SMTP configuration.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

// German number formatting: comma decimals, dot thousands ("1.234,56").
var dePrinter = message.NewPrinter(language.German)

var tmplFuncs = template.FuncMap{
	"euro": func(v float64) string { return dePrinter.Sprintf("%.2f", v) },
	"num":  func(v float64) string { return dePrinter.Sprintf("%v", v) },
	"pct":  func(v float64) string { return dePrinter.Sprintf("%.0f", v) },
}

const quoteEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family:Arial, sans-serif; line-height:1.5;">
    <h2>Neue Fußmatten-Anfrage</h2>

    <h3>Kundendaten</h3>
    <table cellpadding="6" cellspacing="0" border="1" style="border-collapse:collapse;">
        <tr><td><strong>Vorname</strong></td><td>{{.FirstName}}</td></tr>
        <tr><td><strong>Nachname</strong></td><td>{{.LastName}}</td></tr>
        <tr><td><strong>E-Mail</strong></td><td>{{.Email}}</td></tr>
        <tr><td><strong>Adresse</strong></td><td>{{.Street}}, {{.Zip}} {{.City}}</td></tr>
    </table>

    <h3>Bestellte Fußmatten</h3>
    <table cellpadding="6" cellspacing="0" border="1" style="border-collapse:collapse;">
        <tr>
            <th>Länge (cm)</th>
            <th>Breite (cm)</th>
            <th>Form</th>
            <th>Spezialform</th>
            <th>Fläche (m²)</th>
            <th>Menge</th>
            <th>Preis</th>
            <th>Logo</th>
        </tr>
        {{range .Items}}
        <tr>
            <td>{{num .Length}}</td>
            <td>{{num .Width}}</td>
            <td>{{.Shape}}</td>
            <td>{{if .IsSpecialShape}}Ja{{else}}Nein{{end}}</td>
            <td>{{euro .Area}}</td>
            <td>{{.Amount}}</td>
            <td>{{euro .Price}} €</td>
            <td>{{if .LogoURL}}<img src="{{.LogoURL}}" style="max-width:100px;border:1px solid #ccc;padding:3px;"/>{{else}}&mdash;{{end}}</td>
        </tr>
        {{end}}
        <tr>
            <td colspan="6" style="text-align:right;"><strong>Gesamt</strong></td>
            <td colspan="2"><strong>{{euro .Total}} €</strong></td>
        </tr>
    </table>

    <p style="color:#666; font-size:12px;">Preisbasis: {{euro .PricePerSqm}} €/m²{{if .SurchargePercent}}, Zuschlag Spezialform: {{pct .SurchargePercent}}%{{end}}</p>
</body>
</html>`

// RenderQuoteHTML renders the offer email body. All field values are
// HTML-escaped by the template engine.
func RenderQuoteHTML(data *domain.QuoteEmailData) (string, error) {
	tmpl, err := template.New("quote").Funcs(tmplFuncs).Parse(quoteEmailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendQuoteEmail renders the quote email and dispatches it with the
// given file attachments.
func (s *Service) SendQuoteEmail(ctx context.Context, data *domain.QuoteEmailData, attachments []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	htmlBody, err := RenderQuoteHTML(data)
	if err != nil {
		return err
	}

	from := fmt.Sprintf("Angebotsformular <%s>", s.fromEmail)
	msg, err := buildMessage(from, s.toEmail, data.Email, s.subject, htmlBody, attachments)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send offer email: %w", err)
	}
	return nil
}

// buildMessage constructs the MIME message: a plain HTML mail without
// attachments, multipart/mixed with base64 file parts otherwise.
func buildMessage(from, to, replyTo, subject, htmlBody string, attachments []string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		buf.WriteString(htmlBody)
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlHeader := make(textproto.MIMEHeader)
	htmlHeader.Set("Content-Type", "text/html; charset=UTF-8")
	part, err := writer.CreatePart(htmlHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create html part: %w", err)
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("failed to write html part: %w", err)
	}

	for _, path := range attachments {
		if err := writeAttachment(writer, path); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize message: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAttachment(writer *multipart.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read attachment %s: %w", path, err)
	}

	filename := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", fmt.Sprintf("%s; name=%q", contentType, filename))
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create attachment part: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	// RFC 2045 line length limit.
	for len(encoded) > 76 {
		if _, err := fmt.Fprintf(part, "%s\r\n", encoded[:76]); err != nil {
			return fmt.Errorf("failed to write attachment: %w", err)
		}
		encoded = encoded[76:]
	}
	if _, err := fmt.Fprintf(part, "%s\r\n", encoded); err != nil {
		return fmt.Errorf("failed to write attachment: %w", err)
	}
	return nil
}
