package commands

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/pkg/errs"
	"shipments/internal/pkg/guard"
)

var ErrSendCorrespondenceCommandIsNotConstructed = errors.New(
	"SendCorrespondenceCommand must be created via NewSendCorrespondenceCommand constructor",
)

// SendCorrespondenceCommand represents a request to mail shipment paperwork
// to a set of recipients, optionally attaching uploaded checklist documents.
type SendCorrespondenceCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	recipients []string
	subject    string
	htmlBody   string
	attachKeys []shipment.DocumentKey

	guard guard.ConstructorGuard
}

// NewSendCorrespondenceCommand creates a correspondence command. attachKeys
// names uploaded documents to attach; keys with no uploaded record are
// skipped at send time.
func NewSendCorrespondenceCommand(
	shipmentID kernel.UUID, recipients []string, subject, htmlBody string, attachKeys []shipment.DocumentKey,
) (SendCorrespondenceCommand, error) {
	command := SendCorrespondenceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setRecipients(recipients),
		command.setSubject(subject),
	); err != nil {
		return SendCorrespondenceCommand{}, err
	}

	command.htmlBody = htmlBody
	command.attachKeys = append([]shipment.DocumentKey(nil), attachKeys...)
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SendCorrespondenceCommand) Validate() error {
	return c.guard.Validate(ErrSendCorrespondenceCommandIsNotConstructed)
}

// ShipmentID returns the shipment the mail is about.
func (c SendCorrespondenceCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Recipients returns a copy of the recipient list.
func (c SendCorrespondenceCommand) Recipients() []string {
	return append([]string(nil), c.recipients...)
}

// Subject returns the mail subject.
func (c SendCorrespondenceCommand) Subject() string {
	return c.subject
}

// HTMLBody returns the mail body.
func (c SendCorrespondenceCommand) HTMLBody() string {
	return c.htmlBody
}

// AttachKeys returns the document keys to attach.
func (c SendCorrespondenceCommand) AttachKeys() []shipment.DocumentKey {
	return append([]shipment.DocumentKey(nil), c.attachKeys...)
}

func (c *SendCorrespondenceCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *SendCorrespondenceCommand) setRecipients(recipients []string) error {
	if len(recipients) == 0 {
		return errs.NewValueIsRequiredError("recipients")
	}
	c.recipients = append([]string(nil), recipients...)
	return nil
}

func (c *SendCorrespondenceCommand) setSubject(subject string) error {
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}
	c.subject = subject
	return nil
}
