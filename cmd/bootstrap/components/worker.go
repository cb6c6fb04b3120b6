package components

import (
	"context"

	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewDispatcher,
		func(d *worker.Dispatcher) commands.Waker { return d },
	),
	fx.Invoke(registerDispatcher),
)

func registerDispatcher(lc fx.Lifecycle, dispatcher *worker.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return dispatcher.Stop(ctx)
		},
	})
}
