// Package interception implements the approval-interception primitive:
// a generic guarded-execution wrapper that either runs an action
// immediately, or suspends it as a persisted approval request and resumes
// it exactly once when an approval verdict arrives.
//
// The resumed action is reconstructed purely from the request's persisted
// context data through a per-action-key executor registry. Authorization
// may be granted minutes later, by a different operator, in a different
// process — none of which requires the original requester to still be
// connected.
package interception
