package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
	"github.com/smallbiznis/teamhub/internal/usersearch/domain"
	"github.com/smallbiznis/teamhub/internal/validation"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	users authdomain.Repository
}

func NewService(log *zap.Logger, repo domain.Repository, users authdomain.Repository) domain.Service {
	return &service{
		log:   log.Named("usersearch.service"),
		repo:  repo,
		users: users,
	}
}

// Search finds accounts a team lead may add or invite. The actor is always
// excluded from the results.
func (s *service) Search(ctx context.Context, actorID snowflake.ID, req domain.SearchRequest) (*domain.SearchResult, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !teamdomain.HasUserSearchPermission(actor.Role) {
		return nil, domain.ErrForbidden
	}

	vErr := &validation.Errors{}
	query := strings.TrimSpace(req.Query)
	if len(query) > domain.MaxQueryLength {
		vErr.Add("q", "too_long", "query must be at most 100 characters")
	}
	if strings.ContainsAny(query, "<>") {
		vErr.Add("q", "invalid_query", "query must not contain HTML")
	}
	role := strings.TrimSpace(req.Role)
	if role != "" && !authdomain.ValidRole(role) {
		vErr.Add("role", "invalid_role", "unknown role filter")
	}
	if err := vErr.ErrOrNil(); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}

	// fetch one extra row to detect a further page
	users, err := s.repo.Search(ctx, actorID, query, role, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(users) > limit
	if hasMore {
		users = users[:limit]
	}

	return &domain.SearchResult{
		Users:   users,
		Query:   query,
		Limit:   limit,
		Count:   len(users),
		HasMore: hasMore,
	}, nil
}
