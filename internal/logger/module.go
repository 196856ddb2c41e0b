package logger

import "go.uber.org/fx"

// Module provides the process-wide slog logger.
var Module = fx.Provide(New)
