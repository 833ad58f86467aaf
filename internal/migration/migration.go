// Package migration creates the schema on startup so the service is usable
// out of the box for local and self-hosted environments.
package migration

import (
	"fmt"

	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	invitationdomain "github.com/smallbiznis/teamhub/internal/invitation/domain"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
	"gorm.io/gorm"
)

// Run applies the schema for every model and the conditional indexes gorm
// tags cannot express.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&teamdomain.Team{},
		&teamdomain.Membership{},
		&invitationdomain.Invitation{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := createPartialIndexes(db); err != nil {
		return fmt.Errorf("create partial indexes: %w", err)
	}
	return nil
}

// createPartialIndexes adds the uniqueness guard for pending invitations:
// at most one pending invitation per (team, email), while accepted and
// declined rows accumulate freely. Postgres and sqlite support partial
// unique indexes; on mysql the service-level pending check is the only
// guard.
func createPartialIndexes(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		return db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_pending_invitation
			 ON team_invitations (team_id, invited_email)
			 WHERE status = 'pending'`,
		).Error
	default:
		return nil
	}
}
