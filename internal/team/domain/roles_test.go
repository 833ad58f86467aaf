package domain

import (
	"testing"

	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
)

func TestRoleForTeamJoin(t *testing.T) {
	cases := []struct {
		name    string
		current string
		want    string
	}{
		{"basic user is promoted", authdomain.RoleBasicUser, authdomain.RoleTeamMember},
		{"team member is kept", authdomain.RoleTeamMember, authdomain.RoleTeamMember},
		{"team lead is kept", authdomain.RoleTeamLead, authdomain.RoleTeamLead},
		{"unknown role passes through", "auditor", "auditor"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleForTeamJoin(tc.current); got != tc.want {
				t.Fatalf("RoleForTeamJoin(%q) = %q, want %q", tc.current, got, tc.want)
			}
		})
	}
}

func TestShouldPromoteOnAccept(t *testing.T) {
	cases := []struct {
		name    string
		current string
		invited string
		want    bool
	}{
		{"basic user accepting member invite", authdomain.RoleBasicUser, authdomain.RoleTeamMember, true},
		{"basic user accepting lead invite", authdomain.RoleBasicUser, authdomain.RoleTeamLead, true},
		{"team member accepting", authdomain.RoleTeamMember, authdomain.RoleTeamMember, false},
		{"team lead accepting", authdomain.RoleTeamLead, authdomain.RoleTeamMember, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldPromoteOnAccept(tc.current, tc.invited); got != tc.want {
				t.Fatalf("ShouldPromoteOnAccept(%q, %q) = %v, want %v", tc.current, tc.invited, got, tc.want)
			}
		})
	}
}

func TestCanInviteToTeam(t *testing.T) {
	if !CanInviteToTeam(authdomain.RoleTeamLead) {
		t.Fatal("team lead should be able to invite")
	}
	if CanInviteToTeam(authdomain.RoleTeamMember) {
		t.Fatal("team member should not be able to invite")
	}
	if CanInviteToTeam(authdomain.RoleBasicUser) {
		t.Fatal("basic user should not be able to invite")
	}
}

func TestValidMembershipRole(t *testing.T) {
	if !ValidMembershipRole(authdomain.RoleTeamMember) || !ValidMembershipRole(authdomain.RoleTeamLead) {
		t.Fatal("team roles should be valid membership roles")
	}
	if ValidMembershipRole(authdomain.RoleBasicUser) {
		t.Fatal("basic_user is not a membership role")
	}
	if ValidMembershipRole("") {
		t.Fatal("empty role is not a membership role")
	}
}
