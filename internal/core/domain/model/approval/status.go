package approval

import (
	"fmt"

	"shipments/internal/pkg/errs"
)

// Status represents the resolution state of an approval request.
// It implements a small state machine:
//
//	Pending ──> Approved
//	       └──> Denied
//
// Both Approved and Denied are final. The single pending->resolved
// transition is what gives the interceptor its exactly-once execution
// guarantee: a request can only be approved while still pending.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the guarded action is suspended awaiting resolution.
	StatusPending

	// StatusApproved means the guarded action has been authorized.
	StatusApproved

	// StatusDenied means the guarded action was refused and never runs.
	StatusDenied
)

// getStatusStrings returns the persisted identifier per status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusPending:  "pending",
		StatusApproved: "approved",
		StatusDenied:   "denied",
	}
}

// getValidStatusStrings returns only valid statuses, used for validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:  "pending",
		StatusApproved: "approved",
		StatusDenied:   "denied",
	}
}

// ParseStatus converts a persisted identifier to its Status.
func ParseStatus(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"approval status is invalid",
		fmt.Errorf("%q is not a known approval status", value),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%d is not a valid approval status", s),
		)
	}
	return nil
}

// String returns the persisted identifier of the status.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Approve transitions the status to Approved.
// Only valid from Pending; Approved and Denied are final.
func (s Status) Approve() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s.String()),
		)
	}
	return StatusApproved, nil
}

// Deny transitions the status to Denied.
// Only valid from Pending; Approved and Denied are final.
func (s Status) Deny() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s is not a valid status to deny", s.String()),
		)
	}
	return StatusDenied, nil
}
