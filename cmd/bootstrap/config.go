package bootstrap

import (
	"room-reservation-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.QueueConfig { return cfg.Queue },
		func(cfg config.Config) config.MailConfig { return cfg.Mail },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
	),
)
