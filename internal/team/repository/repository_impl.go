package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/teamhub/internal/team/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateTeam(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *repository) List(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *repository) Update(ctx context.Context, team *domain.Team) error {
	tx := r.db.WithContext(ctx).Model(&domain.Team{}).Where("id = ?", team.ID).Updates(map[string]any{
		"name":       team.Name,
		"slug":       team.Slug,
		"metadata":   team.Metadata,
		"updated_at": team.UpdatedAt,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&domain.Membership{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Team{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrTeamNotFound
		}
		return nil
	})
}

func (r *repository) AddMember(ctx context.Context, member *domain.Membership) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) ListMemberships(ctx context.Context, teamID snowflake.ID) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *repository) ListMembers(ctx context.Context, teamID snowflake.ID) ([]domain.MemberDetail, error) {
	var members []domain.MemberDetail
	err := r.db.WithContext(ctx).Raw(
		`SELECT m.id AS membership_id, u.id AS user_id, u.email, u.first_name, u.last_name, m.role, m.joined_at
		 FROM team_memberships m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.team_id = ?
		 ORDER BY m.joined_at ASC`,
		teamID,
	).Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
