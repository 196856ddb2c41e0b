package di

import (
	"github.com/garmentix/marketplace/internal/adapter/checkout"
	"github.com/garmentix/marketplace/internal/adapter/images"
	"github.com/garmentix/marketplace/internal/app"
	"github.com/garmentix/marketplace/internal/config"
	"github.com/garmentix/marketplace/internal/logger"
	"github.com/garmentix/marketplace/internal/pkg/auth"
	"github.com/garmentix/marketplace/internal/server/http/handlers"
	"github.com/garmentix/marketplace/internal/server/http/router"
	"github.com/garmentix/marketplace/internal/storage/postgres"
	"github.com/garmentix/marketplace/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		checkout.Module,
		images.Module,
		usecase.Module,
		fx.Provide(func(facade *app.MarketplaceFacade) handlers.MarketplaceFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
