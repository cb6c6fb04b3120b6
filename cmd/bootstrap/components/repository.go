package components

import (
	"room-reservation-api/internal/infra/db"
	"room-reservation-api/internal/infra/mail"
	"room-reservation-api/internal/infra/payment"
	repo_impl "room-reservation-api/internal/infra/repository"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/internal/usecase/queries"
	"room-reservation-api/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			db.NewRunner,
			fx.As(new(commands.TxRunner)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(commands.RoomRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(commands.ReservationViews)),
			fx.As(new(queries.ReservationReader)),
		),
		fx.Annotate(
			repo_impl.NewEmailJobRepository,
			fx.As(new(commands.EmailJobRepository)),
			fx.As(new(queries.EmailJobReader)),
		),
		fx.Annotate(
			repo_impl.NewPaymentEventRepository,
			fx.As(new(commands.PaymentEventRepository)),
		),
		fx.Annotate(
			mail.NewClient,
			fx.As(new(worker.Mailer)),
		),
		fx.Annotate(
			payment.NewClient,
			fx.As(new(commands.PaymentProvider)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
