package tag

import (
	"context"
)

// Repository is owner-scoped: absent, soft-deleted and foreign rows are all
// reported identically so callers cannot probe other users' tags.
type Repository interface {
	Create(ctx context.Context, ownerID int64, params CreateTagParams) (*Tag, error)
	GetByID(ctx context.Context, ownerID, id int64) (*Tag, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Tag, error)
	Update(ctx context.Context, ownerID, id int64, params UpdateTagParams) (*Tag, error)
	SoftDelete(ctx context.Context, ownerID, id int64) error
}
