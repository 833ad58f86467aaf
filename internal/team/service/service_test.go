package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	authrepository "github.com/smallbiznis/teamhub/internal/auth/repository"
	"github.com/smallbiznis/teamhub/internal/migration"
	"github.com/smallbiznis/teamhub/internal/team/domain"
	"github.com/smallbiznis/teamhub/internal/team/repository"
	"github.com/smallbiznis/teamhub/internal/validation"
	"github.com/smallbiznis/teamhub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
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
	if err := migration.Run(dbConn); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	users, _ := authrepository.New(dbConn)
	repo := repository.NewRepository(dbConn)
	svc := NewService(zap.NewNop(), dbConn, repo, users, node)

	return &testEnv{db: dbConn, svc: svc, users: users, node: node}
}

func (e *testEnv) createUser(t *testing.T, email, role string) *authdomain.User {
	t.Helper()

	user := &authdomain.User{
		ID:         e.node.Generate(),
		ExternalID: uuid.NewString(),
		Email:      email,
		Role:       role,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestCreateTeamPromotesCreator(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "lead@example.com", authdomain.RoleBasicUser)

	result, err := env.svc.Create(context.Background(), creator.ID, domain.CreateTeamRequest{Name: "Platform"})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	if result.Membership.Role != authdomain.RoleTeamLead {
		t.Fatalf("expected creator membership role team_lead, got %s", result.Membership.Role)
	}
	if !result.UserPromoted {
		t.Fatal("expected creator promotion to be reported")
	}
	if result.Team.Slug != "platform" {
		t.Fatalf("expected slug platform, got %s", result.Team.Slug)
	}

	stored, err := env.users.FindByID(context.Background(), creator.ID)
	if err != nil {
		t.Fatalf("failed to load creator: %v", err)
	}
	if stored.Role != authdomain.RoleTeamLead {
		t.Fatalf("expected persisted role team_lead, got %s", stored.Role)
	}
}

func TestCreateTeamByExistingLead(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "lead@example.com", authdomain.RoleTeamLead)

	result, err := env.svc.Create(context.Background(), creator.ID, domain.CreateTeamRequest{Name: "Second Team"})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	if result.UserPromoted {
		t.Fatal("existing lead should not report a promotion")
	}
	if result.Membership.Role != authdomain.RoleTeamLead {
		t.Fatalf("expected membership role team_lead, got %s", result.Membership.Role)
	}
}

func TestCreateTeamValidation(t *testing.T) {
	env := newTestEnv(t)
	creator := env.createUser(t, "lead@example.com", authdomain.RoleBasicUser)

	_, err := env.svc.Create(context.Background(), creator.ID, domain.CreateTeamRequest{Name: "   "})
	vErr := validation.As(err)
	if vErr == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Fields[0].Field != "name" {
		t.Fatalf("expected name field error, got %s", vErr.Fields[0].Field)
	}
}

func TestAddMemberPromotesBasicUser(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", authdomain.RoleBasicUser)
	target := env.createUser(t, "member@example.com", authdomain.RoleBasicUser)

	created, err := env.svc.Create(context.Background(), lead.ID, domain.CreateTeamRequest{Name: "Platform"})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	result, err := env.svc.AddMember(context.Background(), lead.ID, domain.AddMemberRequest{
		TeamID: created.Team.ID.String(),
		UserID: target.ID.String(),
	})
	if err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	if result.Membership.Role != authdomain.RoleTeamMember {
		t.Fatalf("expected membership role team_member, got %s", result.Membership.Role)
	}
	if !result.RoleChanged {
		t.Fatal("expected role change to be reported")
	}

	stored, err := env.users.FindByID(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("failed to load target: %v", err)
	}
	if stored.Role != authdomain.RoleTeamMember {
		t.Fatalf("expected persisted role team_member, got %s", stored.Role)
	}
}

func TestAddMemberTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", authdomain.RoleBasicUser)
	target := env.createUser(t, "member@example.com", authdomain.RoleBasicUser)

	created, err := env.svc.Create(context.Background(), lead.ID, domain.CreateTeamRequest{Name: "Platform"})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	req := domain.AddMemberRequest{
		TeamID: created.Team.ID.String(),
		UserID: target.ID.String(),
	}
	if _, err := env.svc.AddMember(context.Background(), lead.ID, req); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	_, err = env.svc.AddMember(context.Background(), lead.ID, req)
	if !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestAddMemberRequiresTeamLead(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", authdomain.RoleBasicUser)
	outsider := env.createUser(t, "outsider@example.com", authdomain.RoleTeamMember)
	target := env.createUser(t, "member@example.com", authdomain.RoleBasicUser)

	created, err := env.svc.Create(context.Background(), lead.ID, domain.CreateTeamRequest{Name: "Platform"})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = env.svc.AddMember(context.Background(), outsider.ID, domain.AddMemberRequest{
		TeamID: created.Team.ID.String(),
		UserID: target.ID.String(),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAddMemberUnknownTeam(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", authdomain.RoleTeamLead)
	target := env.createUser(t, "member@example.com", authdomain.RoleBasicUser)

	_, err := env.svc.AddMember(context.Background(), lead.ID, domain.AddMemberRequest{
		TeamID: env.node.Generate().String(),
		UserID: target.ID.String(),
	})
	if !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	lead := env.createUser(t, "lead@example.com", authdomain.RoleBasicUser)
	target := env.createUser(t, "member@example.com", authdomain.RoleBasicUser)

	created, err := env.svc.Create(context.Background(), lead.ID, domain.CreateTeamRequest{Name: "Platform"})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	if _, err := env.svc.AddMember(context.Background(), lead.ID, domain.AddMemberRequest{
		TeamID: created.Team.ID.String(),
		UserID: target.ID.String(),
	}); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	members, err := env.svc.ListMembers(context.Background(), created.Team.ID.String())
	if err != nil {
		t.Fatalf("failed to list members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].Role != authdomain.RoleTeamLead {
		t.Fatalf("expected first member to be the lead, got role %s", members[0].Role)
	}
}
