// Package domain defines the user search contract used by team leads to
// find accounts to add or invite.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
)

// Limit bounds for a single search.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// MaxQueryLength bounds the free-text query.
const MaxQueryLength = 100

type Service interface {
	Search(ctx context.Context, actorID snowflake.ID, req SearchRequest) (*SearchResult, error)
}

type SearchRequest struct {
	Query string
	Role  string
	Limit int
}

// SearchResult carries the matching users plus paging metadata. HasMore is
// true when more rows matched than the limit allowed.
type SearchResult struct {
	Users   []authdomain.User `json:"users"`
	Query   string            `json:"query"`
	Limit   int               `json:"limit"`
	Count   int               `json:"count"`
	HasMore bool              `json:"has_more"`
}

var ErrForbidden = errors.New("forbidden")
