package checkout

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/garmentix/marketplace/internal/config"
)

// Module exposes checkout client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.CheckoutProviderAddress, p.Logger)
}
