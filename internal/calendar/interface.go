package calendar

import (
	"context"

	"calendar-assistant/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Execute runs one natural-language command end to end.
	Execute(ctx context.Context, sc model.Scope, input CommandInput) (CommandOutput, error)

	// Reads
	List(ctx context.Context, sc model.Scope, input ListEventsInput) (ListEventsOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (DetailEventOutput, error)
	Export(ctx context.Context, sc model.Scope, input ExportInput) (ExportOutput, error)
}
