package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	"github.com/smallbiznis/teamhub/internal/usersearch/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Search(ctx context.Context, exclude snowflake.ID, query, role string, limit int) ([]authdomain.User, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	tx := r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id <> ?", exclude).
		Where("(LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", pattern, pattern, pattern)
	if role != "" {
		tx = tx.Where("role = ?", role)
	}

	var users []authdomain.User
	if err := tx.Order("email ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
