// Package gmailer implements the outbound mail port on the Gmail API.
// Messages are assembled as RFC 822 MIME with optional attachments and sent
// through the authenticated account.
package gmailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"shipments/internal/core/ports"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// OAuth handles OAuth authentication with Gmail.
type OAuth struct {
	config       *oauth2.Config
	refreshToken string
}

// NewOAuth creates an OAuth handler from an offline refresh token.
func NewOAuth(clientID, clientSecret, refreshToken string) *OAuth {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	return &OAuth{
		config:       config,
		refreshToken: refreshToken,
	}
}

// TokenSource returns a token source that can be used with the Gmail API.
func (o *OAuth) TokenSource(ctx context.Context) oauth2.TokenSource {
	token := &oauth2.Token{
		RefreshToken: o.refreshToken,
		Expiry:       time.Now(), // Force refresh
	}

	return o.config.TokenSource(ctx, token)
}

// Mailer sends shipment correspondence through the Gmail API.
type Mailer struct {
	service *gmail.Service
	from    string
	logger  *slog.Logger
}

// NewMailer creates a Gmail-backed mailer sending as the given address.
func NewMailer(ctx context.Context, tokenSource oauth2.TokenSource, from string, logger *slog.Logger) (*Mailer, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &Mailer{
		service: service,
		from:    from,
		logger:  logger.With("component", "gmail_mailer"),
	}, nil
}

// Send assembles the MIME message and dispatches it. Returns the Gmail
// message id assigned to the sent mail.
func (m *Mailer) Send(
	ctx context.Context, to []string, subject, htmlBody string, attachments []ports.Attachment,
) (string, error) {
	raw, err := buildMIME(m.from, to, subject, htmlBody, attachments)
	if err != nil {
		return "", fmt.Errorf("build mime message: %w", err)
	}

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	sent, err := m.service.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("send mail: %w", err)
	}

	m.logger.InfoContext(ctx, "Mail sent", "mail_id", sent.Id, "recipients", len(to))
	return sent.Id, nil
}

// buildMIME assembles an RFC 822 message: plain HTML when there are no
// attachments, multipart/mixed otherwise.
func buildMIME(from string, to []string, subject, htmlBody string, attachments []ports.Attachment) ([]byte, error) {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(htmlBody)
		return []byte(msg.String()), nil
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)

	msg.WriteString("Content-Type: multipart/mixed; boundary=" + writer.Boundary() + "\r\n\r\n")

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=\"UTF-8\"")
	htmlPart, err := writer.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if _, err = htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	for _, attachment := range attachments {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", attachment.MimeType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.Filename))

		part, partErr := writer.CreatePart(header)
		if partErr != nil {
			return nil, partErr
		}

		encoded := base64.StdEncoding.EncodeToString(attachment.Content)
		if _, err = part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err = writer.Close(); err != nil {
		return nil, err
	}

	msg.WriteString(body.String())
	return []byte(msg.String()), nil
}
