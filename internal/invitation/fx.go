package invitation

import (
	"github.com/smallbiznis/teamhub/internal/invitation/repository"
	"github.com/smallbiznis/teamhub/internal/invitation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invitation.service",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)
