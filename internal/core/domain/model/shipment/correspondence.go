package shipment

import (
	"time"

	"shipments/internal/pkg/errs"
)

// CorrespondenceRecord notes one outbound mail sent about the shipment.
// The mail body itself lives with the mail collaborator; the record only
// keeps enough to audit that the correspondence happened.
type CorrespondenceRecord struct {
	recipients []string
	subject    string
	mailID     string
	sentAt     time.Time
}

// NewCorrespondenceRecord creates a correspondence entry.
func NewCorrespondenceRecord(recipients []string, subject, mailID string, sentAt time.Time) (CorrespondenceRecord, error) {
	if len(recipients) == 0 {
		return CorrespondenceRecord{}, errs.NewValueIsRequiredError("recipients")
	}
	if subject == "" {
		return CorrespondenceRecord{}, errs.NewValueIsRequiredError("subject")
	}
	if sentAt.IsZero() {
		return CorrespondenceRecord{}, errs.NewValueIsRequiredError("sent timestamp")
	}

	return CorrespondenceRecord{
		recipients: append([]string(nil), recipients...),
		subject:    subject,
		mailID:     mailID,
		sentAt:     sentAt,
	}, nil
}

// Recipients returns a copy of the recipient list.
func (c CorrespondenceRecord) Recipients() []string {
	return append([]string(nil), c.recipients...)
}

// Subject returns the mail subject.
func (c CorrespondenceRecord) Subject() string {
	return c.subject
}

// MailID returns the collaborator-assigned message id, if any.
func (c CorrespondenceRecord) MailID() string {
	return c.mailID
}

// SentAt returns when the mail was dispatched.
func (c CorrespondenceRecord) SentAt() time.Time {
	return c.sentAt
}
