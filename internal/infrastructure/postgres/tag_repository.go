package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"paisa/internal/domain/tag"
)

type TagRepository struct {
	db *DB
}

func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, ownerID int64, params tag.CreateTagParams) (*tag.Tag, error) {
	query := `
		INSERT INTO tags (owner_id, label)
		VALUES ($1, $2)
		RETURNING id, owner_id, label, deleted, created_at, updated_at
	`

	var t tag.Tag
	err := r.db.QueryRowContext(ctx, query, ownerID, params.Label).Scan(
		&t.ID, &t.OwnerID, &t.Label, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &t, nil
}

func (r *TagRepository) GetByID(ctx context.Context, ownerID, id int64) (*tag.Tag, error) {
	query := `
		SELECT id, owner_id, label, deleted, created_at, updated_at
		FROM tags
		WHERE id = $1 AND owner_id = $2 AND deleted = false
	`

	var t tag.Tag
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Label, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &t, nil
}

func (r *TagRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*tag.Tag, error) {
	query := `
		SELECT id, owner_id, label, deleted, created_at, updated_at
		FROM tags
		WHERE owner_id = $1 AND deleted = false
		ORDER BY label ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*tag.Tag, 0)
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Label, &t.Deleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}

func (r *TagRepository) Update(ctx context.Context, ownerID, id int64, params tag.UpdateTagParams) (*tag.Tag, error) {
	query := `
		UPDATE tags
		SET label = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3 AND deleted = false
		RETURNING id, owner_id, label, deleted, created_at, updated_at
	`

	var t tag.Tag
	err := r.db.QueryRowContext(ctx, query, params.Label, id, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Label, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return &t, nil
}

func (r *TagRepository) SoftDelete(ctx context.Context, ownerID, id int64) error {
	query := `
		UPDATE tags
		SET deleted = true, updated_at = now()
		WHERE id = $1 AND owner_id = $2 AND deleted = false
	`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted tag: %w", err)
	}
	if affected == 0 {
		return tag.ErrTagNotFound
	}

	return nil
}
