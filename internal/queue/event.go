// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// SellerVerificationEvent is published when an admin decides a seller
// verification review. It carries enough context for downstream consumers
// to audit the decision without querying the primary database.
type SellerVerificationEvent struct {
	UserID    uint64 `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Decision  string `json:"decision"` // "verified" or "rejected"
	DecidedBy string `json:"decided_by"`
	DecidedAt string `json:"decided_at"`
}
