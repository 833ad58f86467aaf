package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type uniqueRow struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func TestIsDuplicateKeyErr(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&uniqueRow{}))

	require.NoError(t, conn.Create(&uniqueRow{ID: 1, Name: "a"}).Error)

	dupErr := conn.Create(&uniqueRow{ID: 2, Name: "a"}).Error
	require.Error(t, dupErr)
	require.True(t, IsDuplicateKeyErr(dupErr))
}

func TestIsDuplicateKeyErrByMessage(t *testing.T) {
	require.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	require.True(t, IsDuplicateKeyErr(errors.New(`duplicate key value violates unique constraint "ux_team_user"`)))
	require.True(t, IsDuplicateKeyErr(errors.New("Error 1062 (23000): Duplicate entry")))
	require.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: team_memberships.team_id")))
	require.False(t, IsDuplicateKeyErr(nil))
	require.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
	require.False(t, IsDuplicateKeyErr(gorm.ErrRecordNotFound))
}
