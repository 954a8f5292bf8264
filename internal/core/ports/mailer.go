package ports

import "context"

// Attachment is one file attached to an outbound mail.
type Attachment struct {
	Filename string
	MimeType string
	Content  []byte
}

// Mailer is the mail-send collaborator. It is external to the core: no
// template substitution or HTML formatting happens on this side of the
// boundary — subject and body are passed through verbatim.
type Mailer interface {
	// Send dispatches one mail and returns the collaborator-assigned
	// message id.
	Send(ctx context.Context, to []string, subject, htmlBody string, attachments []Attachment) (string, error)
}
