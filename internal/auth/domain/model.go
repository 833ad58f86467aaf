// Package domain contains core types for the auth service.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Global user roles. A user starts as a basic user and is promoted by
// team-join workflows; nothing in this system demotes a role.
const (
	RoleBasicUser  = "basic_user"
	RoleTeamMember = "team_member"
	RoleTeamLead   = "team_lead"
)

// ValidRole reports whether role is one of the known global roles.
func ValidRole(role string) bool {
	switch role {
	case RoleBasicUser, RoleTeamMember, RoleTeamLead:
		return true
	default:
		return false
	}
}

// User represents a system user account.
type User struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	ExternalID   string            `gorm:"type:text;not null;uniqueIndex" json:"external_id"`
	Email        string            `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FirstName    string            `gorm:"type:text" json:"first_name"`
	LastName     string            `gorm:"type:text" json:"last_name"`
	Role         string            `gorm:"type:text;not null;default:basic_user" json:"role"`
	PasswordHash *string           `gorm:"type:text" json:"-"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// DisplayName returns the user's full name, falling back to the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Email
	}
	return name
}

// Session represents a persisted login session.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
