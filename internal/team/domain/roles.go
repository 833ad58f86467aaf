package domain

import authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"

// RoleForTeamJoin maps a user's current global role to the role they hold
// after any team-joining action. A basic user is promoted to team member;
// existing qualifying roles are kept. Total over all roles.
func RoleForTeamJoin(current string) string {
	if current == authdomain.RoleBasicUser {
		return authdomain.RoleTeamMember
	}
	return current
}

// ShouldPromoteOnAccept reports whether accepting an invitation requires
// persisting a promoted role on the user row, separately from the
// membership row.
func ShouldPromoteOnAccept(current, invited string) bool {
	_ = invited
	return current == authdomain.RoleBasicUser
}

// CanInviteToTeam reports whether a role may send team invitations.
func CanInviteToTeam(role string) bool {
	return role == authdomain.RoleTeamLead
}

// HasUserSearchPermission reports whether a role may search users for team
// management. Currently identical to CanInviteToTeam; kept separate so the
// policies can diverge.
func HasUserSearchPermission(role string) bool {
	return role == authdomain.RoleTeamLead
}

// ValidMembershipRole reports whether role may be held on a team.
func ValidMembershipRole(role string) bool {
	switch role {
	case authdomain.RoleTeamMember, authdomain.RoleTeamLead:
		return true
	default:
		return false
	}
}
