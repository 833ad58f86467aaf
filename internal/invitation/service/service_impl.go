package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	"github.com/smallbiznis/teamhub/internal/clock"
	"github.com/smallbiznis/teamhub/internal/invitation/domain"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
	"github.com/smallbiznis/teamhub/internal/validation"
	"github.com/smallbiznis/teamhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	log   *zap.Logger
	db    *gorm.DB
	repo  domain.Repository
	teams teamdomain.Repository
	users authdomain.Repository
	clock clock.Clock
	genID *snowflake.Node
}

func NewService(
	log *zap.Logger,
	gdb *gorm.DB,
	repo domain.Repository,
	teams teamdomain.Repository,
	users authdomain.Repository,
	clk clock.Clock,
	genID *snowflake.Node,
) domain.Service {
	return &service{
		log:   log.Named("invitation.service"),
		db:    gdb,
		repo:  repo,
		teams: teams,
		users: users,
		clock: clk,
		genID: genID,
	}
}

// Invite creates a pending invitation addressed to an email. Only team leads
// may invite. An email that already holds a membership, or already has a
// pending invitation for the team, is rejected before anything is written;
// the partial unique index on (team_id, invited_email, pending) closes the
// remaining race.
func (s *service) Invite(ctx context.Context, actorID snowflake.ID, req domain.InviteRequest) (*domain.InviteResult, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !teamdomain.CanInviteToTeam(actor.Role) {
		return nil, domain.ErrForbidden
	}

	vErr := &validation.Errors{}
	teamID, err := snowflake.ParseString(strings.TrimSpace(req.TeamID))
	if err != nil || teamID == 0 {
		vErr.Add("team_id", "invalid_team_id", "team id is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		vErr.Add("email", "required", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.Add("email", "invalid_email", "email is not a valid address")
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = authdomain.RoleTeamMember
	}
	if !teamdomain.ValidMembershipRole(role) {
		vErr.Add("role", "invalid_role", "role must be team_member or team_lead")
	}
	if err := vErr.ErrOrNil(); err != nil {
		return nil, err
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	// An existing account with a membership can't be invited again.
	invitee, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		memberships, err := s.teams.ListMemberships(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if ok, _ := teamdomain.CanAddUserToTeam(invitee.ID, teamID, memberships); !ok {
			return nil, teamdomain.ErrAlreadyMember
		}
	case errors.Is(err, authdomain.ErrUserNotFound):
		// the invitee may sign up later; the email is the identity
	default:
		return nil, err
	}

	if _, err := s.repo.FindPendingForTeamAndEmail(ctx, teamID, email); err == nil {
		return nil, domain.ErrPendingInvitation
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	token, err := domain.NewToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	invitation := &domain.Invitation{
		ID:           s.genID.Generate(),
		TeamID:       teamID,
		InvitedEmail: email,
		InvitedBy:    actorID,
		Role:         role,
		Token:        token,
		Status:       domain.StatusPending,
		ExpiresAt:    domain.ExpiryDate(now, domain.DefaultExpiryDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, invitation); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrPendingInvitation
		}
		return nil, err
	}

	s.log.Info("invitation created",
		zap.String("team_id", teamID.String()),
		zap.String("invited_email", email),
		zap.String("invited_by", actorID.String()),
		zap.String("role", role),
	)

	return &domain.InviteResult{
		Invitation:  invitation,
		TeamName:    team.Name,
		InviterName: actor.DisplayName(),
	}, nil
}

func (s *service) GetByToken(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByTokenWithDetails(ctx, token)
}

// Respond accepts or declines the invitation identified by token. Only the
// account whose email matches the invitation may respond. Acceptance writes
// the membership, the status transition and any global role promotion in a
// single transaction.
func (s *service) Respond(ctx context.Context, actorID snowflake.ID, req domain.RespondRequest) (*domain.RespondResult, error) {
	vErr := &validation.Errors{}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		vErr.Add("token", "required", "token is required")
	}
	action := strings.TrimSpace(req.Action)
	if action != domain.ActionAccept && action != domain.ActionDecline {
		vErr.Add("action", "invalid_action", "action must be accept or decline")
	}
	if err := vErr.ErrOrNil(); err != nil {
		return nil, err
	}

	details, err := s.repo.FindByTokenWithDetails(ctx, token)
	if err != nil {
		return nil, err
	}
	invitation := details.Invitation

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(actor.Email, invitation.InvitedEmail) {
		return nil, domain.ErrForbidden
	}

	now := s.clock.Now()
	if !invitation.Actionable(now) {
		if invitation.Status == domain.StatusPending && invitation.Expired(now) {
			return nil, domain.ErrExpired
		}
		return nil, domain.ErrNotActionable
	}

	if action == domain.ActionDecline {
		if err := s.repo.UpdateStatus(ctx, invitation.ID, domain.StatusDeclined); err != nil {
			return nil, err
		}
		s.log.Info("invitation declined",
			zap.String("invitation_id", invitation.ID.String()),
			zap.String("team_id", invitation.TeamID.String()),
		)
		return &domain.RespondResult{
			Action:   domain.ActionDecline,
			TeamName: details.TeamName,
		}, nil
	}

	memberships, err := s.teams.ListMemberships(ctx, invitation.TeamID)
	if err != nil {
		return nil, err
	}
	if ok, _ := teamdomain.CanAddUserToTeam(actor.ID, invitation.TeamID, memberships); !ok {
		return nil, teamdomain.ErrAlreadyMember
	}

	membership := &teamdomain.Membership{
		ID:       s.genID.Generate(),
		TeamID:   invitation.TeamID,
		UserID:   actor.ID,
		Role:     invitation.Role,
		JoinedAt: now,
	}
	promoted := teamdomain.ShouldPromoteOnAccept(actor.Role, invitation.Role)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.teams.WithTx(tx).AddMember(ctx, membership); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, invitation.ID, domain.StatusAccepted); err != nil {
			return err
		}
		if promoted {
			if err := s.users.WithTx(tx).UpdateRole(ctx, actor.ID, teamdomain.RoleForTeamJoin(actor.Role)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, teamdomain.ErrAlreadyMember
		}
		return nil, err
	}

	if promoted {
		actor.Role = teamdomain.RoleForTeamJoin(actor.Role)
	}

	s.log.Info("invitation accepted",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("team_id", invitation.TeamID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Bool("user_promoted", promoted),
	)

	return &domain.RespondResult{
		Action:       domain.ActionAccept,
		TeamName:     details.TeamName,
		Membership:   membership,
		User:         actor,
		UserPromoted: promoted,
	}, nil
}
