package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dealbridge/dealbridge/internal/domain/valuation"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

type postgresValuationRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewValuationRepo builds the PostgreSQL valuation repository.
func NewValuationRepo(conn *postgres.Connection, log logging.Logger) valuation.Repository {
	return &postgresValuationRepo{conn: conn, log: log, executor: conn.DB()}
}

func (r *postgresValuationRepo) Create(ctx context.Context, rec *valuation.Record) error {
	if rec.ID.IsZero() {
		rec.ID = common.NewID()
	}
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode valuation inputs")
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode valuation result")
	}

	query := `
		INSERT INTO valuations (id, listing_id, user_id, step_data, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err = r.executor.QueryRowContext(ctx, query, rec.ID, rec.ListingID, rec.UserID, data, result).
		Scan(&rec.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to create valuation")
	}
	return nil
}

func (r *postgresValuationRepo) GetByID(ctx context.Context, id common.ID) (*valuation.Record, error) {
	query := `
		SELECT id, listing_id, user_id, step_data, result, created_at
		FROM valuations WHERE id = $1`

	rec, err := scanValuation(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrCodeValuationNotFound, "valuation not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to get valuation")
	}
	return rec, nil
}

func (r *postgresValuationRepo) ListByListing(ctx context.Context, listingID common.ID) ([]*valuation.Record, error) {
	query := `
		SELECT id, listing_id, user_id, step_data, result, created_at
		FROM valuations
		WHERE listing_id = $1
		ORDER BY created_at DESC`

	rows, err := r.executor.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to list valuations")
	}
	defer rows.Close()

	return collectValuations(rows)
}

func (r *postgresValuationRepo) ListByUser(ctx context.Context, userID common.ID, page common.Pagination) ([]*valuation.Record, error) {
	query := `
		SELECT id, listing_id, user_id, step_data, result, created_at
		FROM valuations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.executor.QueryContext(ctx, query, userID, page.PageSize, page.Offset())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to list valuations")
	}
	defer rows.Close()

	return collectValuations(rows)
}

func scanValuation(row rowScanner) (*valuation.Record, error) {
	var rec valuation.Record
	var data, result []byte

	err := row.Scan(&rec.ID, &rec.ListingID, &rec.UserID, &data, &result, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode valuation inputs")
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode valuation result")
	}
	return &rec, nil
}

func collectValuations(rows *sql.Rows) ([]*valuation.Record, error) {
	var out []*valuation.Record
	for rows.Next() {
		rec, err := scanValuation(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan valuation")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to iterate valuations")
	}
	return out, nil
}
