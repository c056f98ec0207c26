package night_options

import (
	"context"

	nightOptions "github.com/m04kA/SMC-AvailabilityService/internal/usecase/night_options"
)

type NightOptionsUseCase interface {
	Execute(ctx context.Context, req *nightOptions.Request) (*nightOptions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
