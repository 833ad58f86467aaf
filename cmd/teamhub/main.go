package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/teamhub/internal/clock"
	"github.com/smallbiznis/teamhub/internal/config"
	"github.com/smallbiznis/teamhub/internal/migration"
	"github.com/smallbiznis/teamhub/internal/observability"
	"github.com/smallbiznis/teamhub/internal/server"
	"github.com/smallbiznis/teamhub/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
