package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/aurumdent/goldbuy/internal/config"
	"github.com/aurumdent/goldbuy/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.PriceRepository { return s.Prices() },
		func(s *Storage) repository.RequestRepository { return s.Requests() },
		func(s *Storage) repository.SettlementRepository { return s.Settlements() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
