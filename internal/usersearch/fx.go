package usersearch

import (
	"github.com/smallbiznis/teamhub/internal/usersearch/repository"
	"github.com/smallbiznis/teamhub/internal/usersearch/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usersearch.service",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)
