package transaction

import (
	"context"
)

// Repository defines transaction data access. Every method is scoped to an
// owner and sees only live (non-deleted) rows.
//
// List and Search intentionally return up to limit+1 rows; callers resolve
// the window with ResolveCursorWindow / ResolvePageWindow.
type Repository interface {
	Create(ctx context.Context, ownerID int64, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, ownerID, id int64) (*Transaction, error)
	// List fetches a cursor window in (date desc, id desc) order for the
	// next direction, and ascending away from the cursor for prev.
	List(ctx context.Context, ownerID int64, f Filter, p CursorPage) ([]*Transaction, error)
	// Search runs the compound full-text/filter query with skip/limit.
	Search(ctx context.Context, ownerID int64, q SearchQuery, p Page) ([]*Transaction, error)
	Update(ctx context.Context, ownerID, id int64, params UpdateParams) (*Transaction, error)
	SoftDelete(ctx context.Context, ownerID, id int64) error
}
