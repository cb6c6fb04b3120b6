package components

import (
	"room-reservation-api/internal/pkg/clock"
	"room-reservation-api/internal/usecase"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewEmailEnqueuer,
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewPaymentCommands,
		commands.NewEmailJobCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewEmailJobQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
