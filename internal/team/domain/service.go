package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
)

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateTeamRequest) (*CreateTeamResult, error)
	GetByID(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, id string, req UpdateTeamRequest) (*Team, error)
	Delete(ctx context.Context, id string) error
	ListMembers(ctx context.Context, teamID string) ([]MemberDetail, error)
	AddMember(ctx context.Context, actorID snowflake.ID, req AddMemberRequest) (*AddMemberResult, error)
}

type CreateTeamRequest struct {
	Name     string
	Metadata map[string]any
}

// CreateTeamResult reports the created team plus the creator's initial
// membership and whether the creator's global role was promoted.
type CreateTeamResult struct {
	Team         *Team
	Membership   *Membership
	UserPromoted bool
}

type UpdateTeamRequest struct {
	Name     string
	Metadata map[string]any
}

type AddMemberRequest struct {
	TeamID string
	UserID string
}

// AddMemberResult reports the created membership, the user who was added,
// and whether their global role changed as part of the add.
type AddMemberResult struct {
	Membership  *Membership
	User        *authdomain.User
	RoleChanged bool
}

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrInvalidTeam   = errors.New("invalid_team")
	ErrAlreadyMember = errors.New("already a member")
	ErrForbidden     = errors.New("forbidden")
)
