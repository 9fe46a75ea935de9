package di

import (
	"github.com/aurumdent/goldbuy/internal/adapter/marketprice"
	"github.com/aurumdent/goldbuy/internal/adapter/objectstore"
	"github.com/aurumdent/goldbuy/internal/app"
	"github.com/aurumdent/goldbuy/internal/config"
	"github.com/aurumdent/goldbuy/internal/logger"
	"github.com/aurumdent/goldbuy/internal/pkg/auth"
	"github.com/aurumdent/goldbuy/internal/server/http/handlers"
	"github.com/aurumdent/goldbuy/internal/server/http/router"
	"github.com/aurumdent/goldbuy/internal/storage/postgres"
	"github.com/aurumdent/goldbuy/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		marketprice.Module,
		objectstore.Module,
		usecase.Module,
		fx.Provide(func(facade *app.GoldFacade) handlers.GoldFacade { return facade }),
		fx.Provide(func(storage *postgres.Storage) router.HealthChecker { return storage }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
