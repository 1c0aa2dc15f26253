package bootstrap

import (
	"context"

	"hotel-backoffice/internal/infra/cache"
	"hotel-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewCache,
	),
)

func NewCache(lc fx.Lifecycle, cfg config.Config) *cache.Cache {
	c := cache.New(cfg.Redis)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.Ping(ctx)
		},
		OnStop: func(_ context.Context) error {
			return c.Close()
		},
	})

	return c
}
