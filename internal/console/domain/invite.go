package domain

import "time"

// InviteStatus is the lifecycle state of an invite. The only transition
// is pending -> accepted; expiry is computed from ExpiresAt at read time
// and never stored as a status.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
)

// Invite is a single-use onboarding token authorizing one email address
// to complete registration. Consumed and expired invites are retained as
// history, never deleted.
type Invite struct {
	ID        string
	Email     string
	Token     string // opaque high-entropy token, unique
	Status    InviteStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Live reports whether the invite can still be redeemed at the given
// instant: it must be pending and unexpired.
func (i Invite) Live(now time.Time) bool {
	return i.Status == InviteStatusPending && i.ExpiresAt.After(now)
}
