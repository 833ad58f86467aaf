package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
)

func TestCanAddUserToTeam(t *testing.T) {
	teamID := snowflake.ID(100)
	userID := snowflake.ID(200)

	existing := []Membership{
		{TeamID: teamID, UserID: snowflake.ID(201)},
		{TeamID: snowflake.ID(101), UserID: userID},
	}

	ok, reason := CanAddUserToTeam(userID, teamID, existing)
	if !ok || reason != "" {
		t.Fatalf("expected add to be allowed, got ok=%v reason=%q", ok, reason)
	}

	existing = append(existing, Membership{TeamID: teamID, UserID: userID})
	ok, reason = CanAddUserToTeam(userID, teamID, existing)
	if ok {
		t.Fatal("expected add to be rejected for existing membership")
	}
	if reason != ConflictAlreadyMember {
		t.Fatalf("expected reason %q, got %q", ConflictAlreadyMember, reason)
	}
}

func TestCanAddUserToTeamEmptySet(t *testing.T) {
	ok, reason := CanAddUserToTeam(snowflake.ID(1), snowflake.ID(2), nil)
	if !ok || reason != "" {
		t.Fatalf("expected add to be allowed on empty set, got ok=%v reason=%q", ok, reason)
	}
}
