package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dealbridge/dealbridge/internal/domain/matching"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

type postgresScoreRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewScoreRepo builds the PostgreSQL match score repository.
func NewScoreRepo(conn *postgres.Connection, log logging.Logger) matching.ScoreRepository {
	return &postgresScoreRepo{conn: conn, log: log, executor: conn.DB()}
}

// Upsert inserts or replaces the score for the (buyer, listing) pair.  A
// replaced row keeps its original id and created_at.
func (r *postgresScoreRepo) Upsert(ctx context.Context, s *matching.Score) error {
	if s.ID.IsZero() {
		s.ID = common.NewID()
	}
	details, err := json.Marshal(s.Details)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode score details")
	}

	query := `
		INSERT INTO match_scores (id, buyer_id, listing_id, details)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (buyer_id, listing_id) DO UPDATE
			SET details = EXCLUDED.details, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err = r.executor.QueryRowContext(ctx, query, s.ID, s.BuyerID, s.ListingID, details).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to upsert match score")
	}
	return nil
}

func (r *postgresScoreRepo) Get(ctx context.Context, buyerID, listingID common.ID) (*matching.Score, error) {
	query := `
		SELECT id, buyer_id, listing_id, details, created_at, updated_at
		FROM match_scores
		WHERE buyer_id = $1 AND listing_id = $2`

	s, err := scanScore(r.executor.QueryRowContext(ctx, query, buyerID, listingID))
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrCodeMatchScoreNotFound, "match score not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to get match score")
	}
	return s, nil
}

func (r *postgresScoreRepo) ListByBuyer(ctx context.Context, buyerID common.ID, page common.Pagination) ([]*matching.Score, error) {
	query := `
		SELECT id, buyer_id, listing_id, details, created_at, updated_at
		FROM match_scores
		WHERE buyer_id = $1
		ORDER BY (details->>'totalScore')::int DESC, updated_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.executor.QueryContext(ctx, query, buyerID, page.PageSize, page.Offset())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to list match scores")
	}
	defer rows.Close()

	var out []*matching.Score
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan match score")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to iterate match scores")
	}
	return out, nil
}

func (r *postgresScoreRepo) DeleteByListing(ctx context.Context, listingID common.ID) (int, error) {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM match_scores WHERE listing_id = $1`, listingID)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to delete match scores")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to read rows affected")
	}
	return int(n), nil
}

func scanScore(row rowScanner) (*matching.Score, error) {
	var s matching.Score
	var details []byte

	err := row.Scan(&s.ID, &s.BuyerID, &s.ListingID, &details, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &s.Details); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode score details")
	}
	return &s, nil
}
