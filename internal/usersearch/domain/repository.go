package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
)

type Repository interface {
	// Search returns up to limit users matching query on email or name,
	// excluding the given user, optionally filtered by role, ordered by
	// email.
	Search(ctx context.Context, exclude snowflake.ID, query, role string, limit int) ([]authdomain.User, error)
}
