package domain

import "github.com/bwmarrin/snowflake"

// ConflictAlreadyMember is the reason reported when a (team, user) pair
// already holds a membership.
const ConflictAlreadyMember = "already a member of this team"

// CanAddUserToTeam scans the supplied membership set for an existing
// (team, user) row. It takes the set explicitly so the direct-add and
// invitation-acceptance paths run the exact same check; the storage unique
// index remains the authoritative guard against races.
func CanAddUserToTeam(userID, teamID snowflake.ID, existing []Membership) (bool, string) {
	for _, m := range existing {
		if m.TeamID == teamID && m.UserID == userID {
			return false, ConflictAlreadyMember
		}
	}
	return true, ""
}
