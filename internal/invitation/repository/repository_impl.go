package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/teamhub/internal/invitation/domain"
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

func (r *repository) Create(ctx context.Context, invitation *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *repository) FindPendingForTeamAndEmail(ctx context.Context, teamID snowflake.ID, email string) (*domain.Invitation, error) {
	var invitation domain.Invitation
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND invited_email = ? AND status = ?", teamID, strings.ToLower(strings.TrimSpace(email)), domain.StatusPending).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *repository) FindByTokenWithDetails(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	var invitation domain.Invitation
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	details := &domain.InvitationDetails{Invitation: invitation}

	var row struct {
		TeamName  string
		FirstName string
		LastName  string
		Email     string
	}
	err = r.db.WithContext(ctx).Raw(
		`SELECT t.name AS team_name, u.first_name, u.last_name, u.email
		 FROM teams t
		 LEFT JOIN users u ON u.id = ?
		 WHERE t.id = ?`,
		invitation.InvitedBy,
		invitation.TeamID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	details.TeamName = row.TeamName
	inviter := strings.TrimSpace(strings.TrimSpace(row.FirstName) + " " + strings.TrimSpace(row.LastName))
	if inviter == "" {
		inviter = row.Email
	}
	details.InviterName = inviter

	return details, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id snowflake.ID, status string) error {
	tx := r.db.WithContext(ctx).Model(&domain.Invitation{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
