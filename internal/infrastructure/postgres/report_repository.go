package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"paisa/internal/domain/report"
)

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, ownerID int64, params report.CreateReportParams) (*report.Report, error) {
	messages, err := json.Marshal(params.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report messages: %w", err)
	}

	query := `
		INSERT INTO user_reports (owner_id, type, description, messages)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, type, description, deleted, created_at, updated_at
	`

	var rep report.Report
	err = r.db.QueryRowContext(ctx, query, ownerID, string(params.Type), params.Description, messages).Scan(
		&rep.ID, &rep.OwnerID, &rep.Type, &rep.Description, &rep.Deleted, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	rep.Messages = params.Messages
	return &rep, nil
}
