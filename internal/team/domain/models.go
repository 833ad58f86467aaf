// Package domain contains persistence models and membership rules for teams.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Team represents a collaboration team owned by its creator.
type Team struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Slug      string            `gorm:"type:text;not null;index" json:"slug"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedBy snowflake.ID      `gorm:"column:created_by;not null;index" json:"created_by"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Team) TableName() string { return "teams" }

// Membership links a user to a team. At most one row may exist per
// (team_id, user_id); the unique index is the authoritative guard.
type Membership struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TeamID   snowflake.ID `gorm:"column:team_id;not null;index;uniqueIndex:ux_team_user,priority:1" json:"team_id"`
	UserID   snowflake.ID `gorm:"column:user_id;not null;index;uniqueIndex:ux_team_user,priority:2" json:"user_id"`
	Role     string       `gorm:"type:text;not null" json:"role"`
	JoinedAt time.Time    `gorm:"column:joined_at;not null;default:CURRENT_TIMESTAMP" json:"joined_at"`
}

// TableName sets the database table name.
func (Membership) TableName() string { return "team_memberships" }

// MemberDetail is a membership row joined with user identity fields.
type MemberDetail struct {
	MembershipID snowflake.ID `json:"membership_id"`
	UserID       snowflake.ID `json:"user_id"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Role         string       `json:"role"`
	JoinedAt     time.Time    `json:"joined_at"`
}
