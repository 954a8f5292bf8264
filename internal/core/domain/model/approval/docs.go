// Package approval provides the domain model for approval interception:
// suspending a guarded action pending out-of-band authorization, resumable
// from persisted context alone.
//
// The package includes:
//   - Request: the aggregate root of one suspended guarded action
//   - Status: the pending/approved/denied resolution state machine
//
// Key business rules:
//   - At most one pending request per (action key, context id) pair
//   - Pending is the only state from which approve/deny transitions exist,
//     so a guarded action executes at most once
//   - Context data must be self-sufficient to re-derive the guarded action
//     in any process, without requester-held state
package approval
