// Package domain contains the invitation lifecycle: model, status
// transitions, token generation and expiry policy.
package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invitation statuses. Pending is the only actionable status; accepted and
// declined are terminal. Expired is never written by the lifecycle itself:
// a pending invitation past its expiry is treated as expired at read time.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
	StatusExpired  = "expired"
)

// Response actions.
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// DefaultExpiryDays is the expiry window for new invitations.
const DefaultExpiryDays = 7

const tokenBytes = 32

// Invitation tracks a pending invite to a team, addressed to an email. The
// token is the sole capability credential for responding.
type Invitation struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	TeamID       snowflake.ID `gorm:"column:team_id;not null;index" json:"team_id"`
	InvitedEmail string       `gorm:"column:invited_email;type:text;not null;index" json:"invited_email"`
	InvitedBy    snowflake.ID `gorm:"column:invited_by;not null;index" json:"invited_by"`
	Role         string       `gorm:"type:text;not null" json:"role"`
	Token        string       `gorm:"type:text;not null;uniqueIndex" json:"-"`
	Status       string       `gorm:"type:text;not null;default:pending" json:"status"`
	ExpiresAt    time.Time    `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invitation) TableName() string { return "team_invitations" }

// Expired reports whether the invitation is past its expiry at the given
// time, regardless of the stored status.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Actionable reports whether the invitation can still be accepted or
// declined: it must be pending and not expired. Accepted and declined are
// terminal for response purposes even when also past expiry.
func (i Invitation) Actionable(now time.Time) bool {
	return i.Status == StatusPending && !i.Expired(now)
}

// NewToken produces an unguessable invitation token. The token alone
// authorizes a response; no separate invitation-id auth exists.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ExpiryDate returns the expiry timestamp for an invitation created at now.
func ExpiryDate(now time.Time, days int) time.Time {
	return now.UTC().Add(time.Duration(days) * 24 * time.Hour)
}
