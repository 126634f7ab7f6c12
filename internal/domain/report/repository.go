package report

import (
	"context"
)

// Repository is write-only from the API's perspective.
type Repository interface {
	Create(ctx context.Context, ownerID int64, params CreateReportParams) (*Report, error)
}
