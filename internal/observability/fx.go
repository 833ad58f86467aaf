package observability

import (
	"github.com/smallbiznis/teamhub/internal/config"
	"github.com/smallbiznis/teamhub/internal/observability/logger"
	"github.com/smallbiznis/teamhub/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(newLoggerConfig),
	fx.Provide(logger.New),
	fx.Provide(metrics.NewHTTPMetrics),
)

func newLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	}
}
