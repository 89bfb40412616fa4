package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dealbridge/dealbridge/internal/domain/listing"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

const listingColumns = `
	id, seller_id, title, description, industry, sub_industry, location, locations,
	asking_price, minimum_price, annual_revenue, annual_profit, ebitda, gross_margin, debt,
	employees, year_established, management_staying, property_included, relocatable,
	franchise_opportunity, training_provided, growth_opportunities, nda_required,
	status, created_at, updated_at`

type postgresListingRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewListingRepo builds the PostgreSQL listing repository.
func NewListingRepo(conn *postgres.Connection, log logging.Logger) listing.Repository {
	return &postgresListingRepo{conn: conn, log: log, executor: conn.DB()}
}

func (r *postgresListingRepo) Create(ctx context.Context, l *listing.Listing) error {
	if l.ID.IsZero() {
		l.ID = common.NewID()
	}
	locations, _ := json.Marshal(l.Locations)

	query := `
		INSERT INTO listings (
			id, seller_id, title, description, industry, sub_industry, location, locations,
			asking_price, minimum_price, annual_revenue, annual_profit, ebitda, gross_margin, debt,
			employees, year_established, management_staying, property_included, relocatable,
			franchise_opportunity, training_provided, growth_opportunities, nda_required, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
		RETURNING created_at, updated_at`

	err := r.executor.QueryRowContext(ctx, query,
		l.ID, l.SellerID, l.Title, l.Description, l.Industry, l.SubIndustry, l.Location, locations,
		l.AskingPrice, l.MinimumPrice, l.AnnualRevenue, l.AnnualProfit, l.EBITDA, l.GrossMargin, l.Debt,
		l.Employees, l.YearEstablished, l.ManagementStaying, l.PropertyIncluded, l.Relocatable,
		l.FranchiseOpportunity, l.TrainingProvided, l.GrowthOpportunities, l.NDARequired, l.Status,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to create listing")
	}
	return nil
}

func (r *postgresListingRepo) GetByID(ctx context.Context, id common.ID) (*listing.Listing, error) {
	query := `SELECT` + listingColumns + ` FROM listings WHERE id = $1`
	l, err := scanListing(r.executor.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrCodeListingNotFound, "listing not found").WithDetail(id.String())
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to get listing")
	}
	return l, nil
}

func (r *postgresListingRepo) GetByIDs(ctx context.Context, ids []common.ID) ([]*listing.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT` + listingColumns + ` FROM listings WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to get listings")
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *postgresListingRepo) List(ctx context.Context, filter listing.Filter, page common.Pagination) ([]*listing.Listing, int, error) {
	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Industry != "" {
		where = append(where, "industry = "+arg(filter.Industry))
	}
	if filter.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+filter.Location+"%"))
	}
	if filter.Status != "" {
		where = append(where, "status = "+arg(string(filter.Status)))
	}
	if filter.MinPrice != nil {
		where = append(where, "asking_price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where = append(where, "asking_price <= "+arg(*filter.MaxPrice))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM listings WHERE ` + cond
	if err := r.executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to count listings")
	}

	query := `SELECT` + listingColumns + ` FROM listings WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(page.PageSize) + ` OFFSET ` + arg(page.Offset())

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to list listings")
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *postgresListingRepo) Update(ctx context.Context, l *listing.Listing) error {
	locations, _ := json.Marshal(l.Locations)

	query := `
		UPDATE listings SET
			title = $2, description = $3, industry = $4, sub_industry = $5, location = $6, locations = $7,
			asking_price = $8, minimum_price = $9, annual_revenue = $10, annual_profit = $11,
			ebitda = $12, gross_margin = $13, debt = $14, employees = $15, year_established = $16,
			management_staying = $17, property_included = $18, relocatable = $19,
			franchise_opportunity = $20, training_provided = $21, growth_opportunities = $22,
			nda_required = $23, status = $24, updated_at = NOW()
		WHERE id = $1`

	res, err := r.executor.ExecContext(ctx, query,
		l.ID, l.Title, l.Description, l.Industry, l.SubIndustry, l.Location, locations,
		l.AskingPrice, l.MinimumPrice, l.AnnualRevenue, l.AnnualProfit,
		l.EBITDA, l.GrossMargin, l.Debt, l.Employees, l.YearEstablished,
		l.ManagementStaying, l.PropertyIncluded, l.Relocatable,
		l.FranchiseOpportunity, l.TrainingProvided, l.GrowthOpportunities,
		l.NDARequired, l.Status,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to update listing")
	}
	return requireRowAffected(res, apperrors.ErrCodeListingNotFound, "listing not found")
}

func (r *postgresListingRepo) UpdateStatus(ctx context.Context, id common.ID, status common.Status) error {
	res, err := r.executor.ExecContext(ctx,
		`UPDATE listings SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to update listing status")
	}
	return requireRowAffected(res, apperrors.ErrCodeListingNotFound, "listing not found")
}

func (r *postgresListingRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to delete listing")
	}
	return requireRowAffected(res, apperrors.ErrCodeListingNotFound, "listing not found")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*listing.Listing, error) {
	var l listing.Listing
	var locations []byte

	err := row.Scan(
		&l.ID, &l.SellerID, &l.Title, &l.Description, &l.Industry, &l.SubIndustry, &l.Location, &locations,
		&l.AskingPrice, &l.MinimumPrice, &l.AnnualRevenue, &l.AnnualProfit, &l.EBITDA, &l.GrossMargin, &l.Debt,
		&l.Employees, &l.YearEstablished, &l.ManagementStaying, &l.PropertyIncluded, &l.Relocatable,
		&l.FranchiseOpportunity, &l.TrainingProvided, &l.GrowthOpportunities, &l.NDARequired,
		&l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(locations) > 0 {
		if err := json.Unmarshal(locations, &l.Locations); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to decode listing locations")
		}
	}
	return &l, nil
}

func collectListings(rows *sql.Rows) ([]*listing.Listing, error) {
	var out []*listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to scan listing")
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to iterate listings")
	}
	return out, nil
}

func requireRowAffected(res sql.Result, code apperrors.ErrorCode, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to read rows affected")
	}
	if n == 0 {
		return apperrors.New(code, msg)
	}
	return nil
}
