package ports

import "shipments/internal/core/domain/model/shipment"

// LifecycleNotifier is the notification surface a display layer may attach
// to. The core invokes it after the corresponding outcome is final; the
// notifier must not block or fail the workflow.
type LifecycleNotifier interface {
	// OnAdvanced fires after a stage transition was committed.
	OnAdvanced(s *shipment.Shipment, from, to shipment.Stage)

	// OnGateBlocked fires when an advance was refused by the gate, carrying
	// the ordered missing-requirements list.
	OnGateBlocked(s *shipment.Shipment, missing []shipment.DocumentKey)

	// OnApprovalResumed fires after an approval-resumed advance completed.
	OnApprovalResumed(s *shipment.Shipment)
}

// NopLifecycleNotifier is a LifecycleNotifier that ignores every event.
type NopLifecycleNotifier struct{}

// OnAdvanced implements LifecycleNotifier.
func (NopLifecycleNotifier) OnAdvanced(*shipment.Shipment, shipment.Stage, shipment.Stage) {}

// OnGateBlocked implements LifecycleNotifier.
func (NopLifecycleNotifier) OnGateBlocked(*shipment.Shipment, []shipment.DocumentKey) {}

// OnApprovalResumed implements LifecycleNotifier.
func (NopLifecycleNotifier) OnApprovalResumed(*shipment.Shipment) {}
