package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"paisa/internal/domain/transaction"
)

const transactionColumns = "t.id, t.owner_id, t.label, t.amount, t.type, t.date, t.deleted, t.created_at, t.updated_at"

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, ownerID int64, params transaction.CreateParams) (*transaction.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := validateTagRefs(ctx, tx, ownerID, params.TagIDs); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (owner_id, label, amount, type, date)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING id, owner_id, label, amount, type, date, deleted, created_at, updated_at
	`

	var t transaction.Transaction
	err = tx.QueryRowContext(ctx, query, ownerID, params.Label, params.Amount, string(params.Type), params.Date).Scan(
		&t.ID, &t.OwnerID, &t.Label, &t.Amount, &t.Type, &t.Date, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := replaceTagRefs(ctx, tx, t.ID, params.TagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.TagIDs = append([]int64{}, params.TagIDs...)
	return &t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, ownerID, id int64) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.owner_id = $2 AND t.deleted = false
	`

	var t transaction.Transaction
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Label, &t.Amount, &t.Type, &t.Date, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := r.loadTags(ctx, []*transaction.Transaction{&t}); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TransactionRepository) List(ctx context.Context, ownerID int64, f transaction.Filter, p transaction.CursorPage) ([]*transaction.Transaction, error) {
	clauses, args := filterClauses(f, ownerID)

	order := "t.date DESC, t.id DESC"
	if p.Cursor != nil {
		op := "<"
		if p.Direction == transaction.DirectionPrev {
			op = ">"
		}
		args = append(args, *p.Cursor)
		// A cursor naming a missing row makes the subquery empty and the
		// comparison NULL, which yields an empty page rather than an error.
		clauses = append(clauses, fmt.Sprintf(
			"(t.date, t.id) %s (SELECT s.date, s.id FROM transactions s WHERE s.id = $%d)", op, len(args)))
	}
	if p.Direction == transaction.DirectionPrev {
		order = "t.date ASC, t.id ASC"
	}

	args = append(args, p.Limit+1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		WHERE %s
		ORDER BY %s
		LIMIT $%d
	`, transactionColumns, strings.Join(clauses, " AND "), order, len(args))

	return r.queryTransactions(ctx, query, args)
}

func (r *TransactionRepository) Search(ctx context.Context, ownerID int64, q transaction.SearchQuery, p transaction.Page) ([]*transaction.Transaction, error) {
	clauses, args := filterClauses(q.Filter, ownerID)

	if q.Label != "" {
		args = append(args, q.Label)
		clauses = append(clauses, fmt.Sprintf(
			"to_tsvector('simple', t.label) @@ plainto_tsquery('simple', $%d)", len(args)))
	}

	args = append(args, p.Limit+1, p.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		WHERE %s
		ORDER BY t.date DESC, t.id DESC
		LIMIT $%d OFFSET $%d
	`, transactionColumns, strings.Join(clauses, " AND "), len(args)-1, len(args))

	return r.queryTransactions(ctx, query, args)
}

func (r *TransactionRepository) Update(ctx context.Context, ownerID, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if params.TagIDs != nil {
		if err := validateTagRefs(ctx, tx, ownerID, params.TagIDs); err != nil {
			return nil, err
		}
	}

	query := `
		UPDATE transactions
		SET label = COALESCE($1, label),
		    amount = COALESCE($2, amount),
		    date = COALESCE($3, date),
		    updated_at = now()
		WHERE id = $4 AND owner_id = $5 AND deleted = false
		RETURNING id, owner_id, label, amount, type, date, deleted, created_at, updated_at
	`

	var t transaction.Transaction
	err = tx.QueryRowContext(ctx, query, params.Label, params.Amount, params.Date, id, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Label, &t.Amount, &t.Type, &t.Date, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if params.TagIDs != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_tags WHERE transaction_id = $1", t.ID); err != nil {
			return nil, fmt.Errorf("failed to clear transaction tags: %w", err)
		}
		if err := replaceTagRefs(ctx, tx, t.ID, params.TagIDs); err != nil {
			return nil, err
		}
		t.TagIDs = append([]int64{}, params.TagIDs...)
	} else {
		ids, err := currentTagRefs(ctx, tx, t.ID)
		if err != nil {
			return nil, err
		}
		t.TagIDs = ids
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &t, nil
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, ownerID, id int64) error {
	query := `
		UPDATE transactions
		SET deleted = true, updated_at = now()
		WHERE id = $1 AND owner_id = $2 AND deleted = false
	`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted transaction: %w", err)
	}
	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

// filterClauses renders a Filter as WHERE fragments over the aliased
// transactions table t. The owner and deleted predicates are always present.
func filterClauses(f transaction.Filter, ownerID int64) ([]string, []any) {
	args := []any{ownerID}
	clauses := []string{"t.owner_id = $1", "t.deleted = false"}

	add := func(format string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}

	if f.Type != nil {
		add("t.type = $%d", string(*f.Type))
	}
	if len(f.TagIDs) > 0 {
		add("EXISTS (SELECT 1 FROM transaction_tags tt WHERE tt.transaction_id = t.id AND tt.tag_id = ANY($%d))", pq.Array(f.TagIDs))
	}
	if f.Untagged {
		clauses = append(clauses, "NOT EXISTS (SELECT 1 FROM transaction_tags tt WHERE tt.transaction_id = t.id)")
	}
	if f.StartDate != nil {
		add("t.date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("t.date <= $%d", *f.EndDate)
	}
	if len(f.IDs) > 0 {
		add("t.id = ANY($%d)", pq.Array(f.IDs))
	}

	return clauses, args
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args []any) ([]*transaction.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*transaction.Transaction, 0)
	for rows.Next() {
		var t transaction.Transaction
		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Label, &t.Amount, &t.Type, &t.Date, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	if err := r.loadTags(ctx, transactions); err != nil {
		return nil, err
	}

	return transactions, nil
}

// loadTags fills TagIDs for a batch of transactions with a single query.
// Transactions without tags get an empty, non-nil slice.
func (r *TransactionRepository) loadTags(ctx context.Context, transactions []*transaction.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	byID := make(map[int64]*transaction.Transaction, len(transactions))
	ids := make([]int64, 0, len(transactions))
	for _, t := range transactions {
		t.TagIDs = []int64{}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query := `
		SELECT transaction_id, tag_id
		FROM transaction_tags
		WHERE transaction_id = ANY($1)
		ORDER BY tag_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load transaction tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var transactionID, tagID int64
		if err := rows.Scan(&transactionID, &tagID); err != nil {
			return fmt.Errorf("failed to scan transaction tag: %w", err)
		}
		if t, ok := byID[transactionID]; ok {
			t.TagIDs = append(t.TagIDs, tagID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transaction tags: %w", err)
	}

	return nil
}

// validateTagRefs ensures every referenced tag is a live tag owned by the
// caller; anything else is ErrUnknownTag, including another user's tag.
func validateTagRefs(ctx context.Context, tx *sql.Tx, ownerID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		SELECT COUNT(*)
		FROM tags
		WHERE id = ANY($1) AND owner_id = $2 AND deleted = false
	`

	var count int
	if err := tx.QueryRowContext(ctx, query, pq.Array(tagIDs), ownerID).Scan(&count); err != nil {
		return fmt.Errorf("failed to validate tags: %w", err)
	}
	if count != len(tagIDs) {
		return transaction.ErrUnknownTag
	}

	return nil
}

func replaceTagRefs(ctx context.Context, tx *sql.Tx, transactionID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO transaction_tags (transaction_id, tag_id)
		SELECT $1, unnest($2::bigint[])
	`

	if _, err := tx.ExecContext(ctx, query, transactionID, pq.Array(tagIDs)); err != nil {
		return fmt.Errorf("failed to attach transaction tags: %w", err)
	}

	return nil
}

func currentTagRefs(ctx context.Context, tx *sql.Tx, transactionID int64) ([]int64, error) {
	query := `
		SELECT tag_id
		FROM transaction_tags
		WHERE transaction_id = $1
		ORDER BY tag_id ASC
	`

	rows, err := tx.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction tags: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan transaction tag: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction tags: %w", err)
	}

	return ids, nil
}
