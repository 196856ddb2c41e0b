package images

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/garmentix/marketplace/internal/config"
)

// Module exposes image uploader implementation to fx graph.
var Module = fx.Provide(newUploader)

type uploaderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newUploader(p uploaderParams) Uploader {
	return NewHTTPUploader(p.Config.ImageHostingAddress, p.Config.ImageHostingKey, p.Logger)
}
