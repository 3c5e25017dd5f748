package components

import (
	"parklot/internal/infra/db"
	"parklot/internal/infra/readstore"
	"parklot/internal/infra/uow"
	"parklot/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork owns its transactions; readstores below serve the
		// query side straight off the pool.
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewLotReadStore,
			fx.As(new(queries.LotReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
