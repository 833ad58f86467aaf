package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	"github.com/smallbiznis/teamhub/internal/team/domain"
	"github.com/smallbiznis/teamhub/internal/validation"
	"github.com/smallbiznis/teamhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxTeamNameLength = 100

type service struct {
	log   *zap.Logger
	db    *gorm.DB
	repo  domain.Repository
	users authdomain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, gdb *gorm.DB, repo domain.Repository, users authdomain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("team.service"),
		db:    gdb,
		repo:  repo,
		users: users,
		genID: genID,
	}
}

// Create creates the team and its creator's team_lead membership in one
// transaction, promoting the creator's global role when it ranks below
// team lead. A team is never persisted without its initial membership.
func (s *service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateTeamRequest) (*domain.CreateTeamResult, error) {
	if userID == 0 {
		return nil, authdomain.ErrUserNotFound
	}
	if err := validateTeamInput(req.Name); err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	now := time.Now().UTC()
	team := &domain.Team{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		Metadata:  req.Metadata,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	membership := &domain.Membership{
		ID:       s.genID.Generate(),
		TeamID:   team.ID,
		UserID:   userID,
		Role:     authdomain.RoleTeamLead,
		JoinedAt: now,
	}

	promoted := creator.Role != authdomain.RoleTeamLead
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateTeam(ctx, team); err != nil {
			return err
		}
		if err := repo.AddMember(ctx, membership); err != nil {
			return err
		}
		if promoted {
			if err := s.users.WithTx(tx).UpdateRole(ctx, userID, authdomain.RoleTeamLead); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("created_by", userID.String()),
		zap.Bool("user_promoted", promoted),
	)

	return &domain.CreateTeamResult{
		Team:         team,
		Membership:   membership,
		UserPromoted: promoted,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	teamID, err := parseTeamID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, teamID)
}

func (s *service) List(ctx context.Context) ([]domain.Team, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateTeamRequest) (*domain.Team, error) {
	teamID, err := parseTeamID(id)
	if err != nil {
		return nil, err
	}
	if err := validateTeamInput(req.Name); err != nil {
		return nil, err
	}

	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	team.Name = name
	team.Slug = slug.Make(name)
	if req.Metadata != nil {
		team.Metadata = req.Metadata
	}
	team.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	teamID, err := parseTeamID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, teamID)
}

func (s *service) ListMembers(ctx context.Context, teamID string) ([]domain.MemberDetail, error) {
	id, err := parseTeamID(teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, id)
}

// AddMember adds a user to a team on behalf of a team lead. The assigned
// membership role follows RoleForTeamJoin; a basic user's global promotion
// is persisted in the same transaction as the membership row.
func (s *service) AddMember(ctx context.Context, actorID snowflake.ID, req domain.AddMemberRequest) (*domain.AddMemberResult, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !domain.CanInviteToTeam(actor.Role) {
		return nil, domain.ErrForbidden
	}

	vErr := &validation.Errors{}
	teamID, err := snowflake.ParseString(strings.TrimSpace(req.TeamID))
	if err != nil || teamID == 0 {
		vErr.Add("team_id", "invalid_team_id", "team id is required")
	}
	targetID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || targetID == 0 {
		vErr.Add("user_id", "invalid_user_id", "user id is required")
	}
	if err := vErr.ErrOrNil(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.repo.ListMemberships(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if ok, _ := domain.CanAddUserToTeam(targetID, teamID, memberships); !ok {
		return nil, domain.ErrAlreadyMember
	}

	assignedRole := domain.RoleForTeamJoin(target.Role)
	roleChanged := target.Role != assignedRole

	membership := &domain.Membership{
		ID:       s.genID.Generate(),
		TeamID:   teamID,
		UserID:   targetID,
		Role:     assignedRole,
		JoinedAt: time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).AddMember(ctx, membership); err != nil {
			return err
		}
		if roleChanged {
			if err := s.users.WithTx(tx).UpdateRole(ctx, targetID, assignedRole); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// the unique index is the authoritative conflict signal
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, err
	}

	if roleChanged {
		target.Role = assignedRole
	}

	s.log.Info("member added",
		zap.String("team_id", teamID.String()),
		zap.String("user_id", targetID.String()),
		zap.Bool("role_changed", roleChanged),
	)

	return &domain.AddMemberResult{
		Membership:  membership,
		User:        target,
		RoleChanged: roleChanged,
	}, nil
}

func parseTeamID(raw string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, domain.ErrInvalidTeam
	}
	id, err := snowflake.ParseString(trimmed)
	if err != nil {
		return 0, domain.ErrInvalidTeam
	}
	return id, nil
}

func validateTeamInput(name string) error {
	vErr := &validation.Errors{}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		vErr.Add("name", "required", "team name is required")
	} else if len(trimmed) > maxTeamNameLength {
		vErr.Add("name", "too_long", "team name must be at most 100 characters")
	}
	return vErr.ErrOrNil()
}
