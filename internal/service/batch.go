package service

import (
	"context"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
)

// RunBatch processes rows one transaction per row. A failing row rolls back
// only its own writes and is recorded with its file line number (index + 2,
// counting the header); the batch always runs to the end. Committed rows are
// visible to readers while later rows are still being processed.
func RunBatch[R any](ctx context.Context, uow db.UnitOfWork, rows []R, fn func(ctx context.Context, tx db.DBTX, row R) error) *domain.ImportResult {
	result := &domain.ImportResult{Errors: []domain.RowError{}}
	for i, row := range rows {
		err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return fn(ctx, tx, row)
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{Row: i + 2, Reason: err.Error()})
			continue
		}
		result.Successful++
	}
	return result
}
