package components

import (
	"room-reservation-api/internal/handler"
	"room-reservation-api/internal/handler/api"
	"room-reservation-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewEmailJobHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
