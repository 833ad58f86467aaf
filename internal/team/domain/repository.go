package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateTeam(ctx context.Context, team *Team) error
	FindByID(ctx context.Context, id snowflake.ID) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id snowflake.ID) error
	AddMember(ctx context.Context, member *Membership) error
	ListMemberships(ctx context.Context, teamID snowflake.ID) ([]Membership, error)
	ListMembers(ctx context.Context, teamID snowflake.ID) ([]MemberDetail, error)
}
