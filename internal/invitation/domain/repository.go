package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// InvitationDetails is an invitation joined with its team and inviter.
type InvitationDetails struct {
	Invitation  Invitation
	TeamName    string
	InviterName string
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invitation *Invitation) error
	FindPendingForTeamAndEmail(ctx context.Context, teamID snowflake.ID, email string) (*Invitation, error)
	FindByTokenWithDetails(ctx context.Context, token string) (*InvitationDetails, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) error
}
