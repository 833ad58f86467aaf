package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
)

type Service interface {
	Invite(ctx context.Context, actorID snowflake.ID, req InviteRequest) (*InviteResult, error)
	GetByToken(ctx context.Context, token string) (*InvitationDetails, error)
	Respond(ctx context.Context, actorID snowflake.ID, req RespondRequest) (*RespondResult, error)
}

type InviteRequest struct {
	TeamID string
	Email  string
	Role   string
}

// InviteResult carries the created invitation plus display facts for the
// boundary layer.
type InviteResult struct {
	Invitation  *Invitation
	TeamName    string
	InviterName string
}

type RespondRequest struct {
	Token  string
	Action string
}

// RespondResult reports what acceptance or decline produced. Membership and
// User are nil on decline; UserPromoted is true when the responder's global
// role was promoted as part of acceptance.
type RespondResult struct {
	Action       string
	TeamName     string
	Membership   *teamdomain.Membership
	User         *authdomain.User
	UserPromoted bool
}

var (
	ErrNotFound          = errors.New("invitation not found")
	ErrExpired           = errors.New("invitation expired")
	ErrNotActionable     = errors.New("invitation not actionable")
	ErrPendingInvitation = errors.New("pending invitation exists")
	ErrForbidden         = errors.New("forbidden")
)
