package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	"github.com/smallbiznis/teamhub/internal/auth/repository"
	"github.com/smallbiznis/teamhub/internal/validation"
	"github.com/smallbiznis/teamhub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node)
}

func TestCreateUserDefaults(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:     "Alice@Example.com",
		Password:  "strong-password",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Role != authdomain.RoleBasicUser {
		t.Fatalf("expected role basic_user, got %s", user.Role)
	}
	if _, err := uuid.Parse(user.ExternalID); err != nil {
		t.Fatalf("expected external id UUID, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	req := authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "strong-password",
	}
	if _, err := svc.CreateUser(context.Background(), req); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	req.Email = "ALICE@example.com"
	_, err := svc.CreateUser(context.Background(), req)
	if !errors.Is(err, authdomain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserShortPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "short",
	})
	vErr := validation.As(err)
	if vErr == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Fields[0].Field != "password" {
		t.Fatalf("expected password field error, got %s", vErr.Fields[0].Field)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateSession(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("expected a raw token")
	}

	user, session, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatal("expected session to resolve to the created user")
	}
	if session.SessionTokenHash == result.RawToken {
		t.Fatal("raw token must not be stored")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}

	_, _, err = svc.Authenticate(context.Background(), result.RawToken)
	if !errors.Is(err, authdomain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Authenticate(context.Background(), "no-such-token")
	if !errors.Is(err, authdomain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
