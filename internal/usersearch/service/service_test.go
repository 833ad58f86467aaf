package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	authrepository "github.com/smallbiznis/teamhub/internal/auth/repository"
	"github.com/smallbiznis/teamhub/internal/usersearch/domain"
	"github.com/smallbiznis/teamhub/internal/usersearch/repository"
	"github.com/smallbiznis/teamhub/internal/validation"
	"github.com/smallbiznis/teamhub/pkg/db"
	"go.uber.org/zap"
)

type testEnv struct {
	svc   domain.Service
	users authdomain.Repository
	node  *snowflake.Node
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	users, _ := authrepository.New(dbConn)
	svc := NewService(zap.NewNop(), repository.NewRepository(dbConn), users)

	return &testEnv{svc: svc, users: users, node: node}
}

func (e *testEnv) createUser(t *testing.T, email, first, last, role string) *authdomain.User {
	t.Helper()

	user := &authdomain.User{
		ID:         e.node.Generate(),
		ExternalID: uuid.NewString(),
		Email:      email,
		FirstName:  first,
		LastName:   last,
		Role:       role,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestSearchRequiresPermission(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "", "", authdomain.RoleTeamMember)

	_, err := env.svc.Search(context.Background(), member.ID, domain.SearchRequest{Query: "a"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSearchExcludesActorAndMatchesNames(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", "Lena", "Ortiz", authdomain.RoleTeamLead)
	env.createUser(t, "anna@example.com", "Anna", "Berg", authdomain.RoleBasicUser)
	env.createUser(t, "bruno@example.com", "Bruno", "Anders", authdomain.RoleBasicUser)
	env.createUser(t, "carla@example.com", "Carla", "Voss", authdomain.RoleBasicUser)

	result, err := env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{Query: "an"})
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Count)
	}
	for _, u := range result.Users {
		if u.ID == lead.ID {
			t.Fatal("actor must be excluded from results")
		}
	}
	if result.Users[0].Email > result.Users[1].Email {
		t.Fatal("expected results ordered by email")
	}
}

func TestSearchRoleFilter(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", "", "", authdomain.RoleTeamLead)
	env.createUser(t, "anna@example.com", "", "", authdomain.RoleBasicUser)
	env.createUser(t, "bruno@example.com", "", "", authdomain.RoleTeamMember)

	result, err := env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{
		Query: "example",
		Role:  authdomain.RoleBasicUser,
	})
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if result.Count != 1 || result.Users[0].Email != "anna@example.com" {
		t.Fatalf("expected only the basic user, got %+v", result.Users)
	}
}

func TestSearchValidation(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", "", "", authdomain.RoleTeamLead)

	_, err := env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{
		Query: strings.Repeat("x", domain.MaxQueryLength+1),
	})
	if validation.As(err) == nil {
		t.Fatalf("expected validation error for long query, got %v", err)
	}

	_, err = env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{Query: "<script>"})
	if validation.As(err) == nil {
		t.Fatalf("expected validation error for HTML query, got %v", err)
	}

	_, err = env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{Role: "superadmin"})
	if validation.As(err) == nil {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestSearchLimitClampAndHasMore(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", "", "", authdomain.RoleTeamLead)
	for i := 0; i < 5; i++ {
		env.createUser(t, fmt.Sprintf("user%02d@example.com", i), "", "", authdomain.RoleBasicUser)
	}

	result, err := env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{
		Query: "user",
		Limit: 3,
	})
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if result.Count != 3 {
		t.Fatalf("expected 3 results, got %d", result.Count)
	}
	if !result.HasMore {
		t.Fatal("expected has_more to be set")
	}

	result, err = env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{
		Query: "user",
		Limit: domain.MaxLimit + 100,
	})
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if result.Limit != domain.MaxLimit {
		t.Fatalf("expected limit clamped to %d, got %d", domain.MaxLimit, result.Limit)
	}

	result, err = env.svc.Search(context.Background(), lead.ID, domain.SearchRequest{Query: "user"})
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if result.Limit != domain.DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", domain.DefaultLimit, result.Limit)
	}
	if result.HasMore {
		t.Fatal("expected no further page at default limit")
	}
}
