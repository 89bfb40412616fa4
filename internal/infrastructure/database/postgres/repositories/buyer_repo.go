package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

const buyerColumns = `
	id, user_id, industries, min_budget, max_budget,
	preferred_locations, location_flexibility,
	min_revenue, max_revenue, min_ebitda, max_ebitda,
	min_employees, max_employees,
	management_stay, property_included, relocation,
	verified, financing_approved, synergies, created_at, updated_at`

type postgresBuyerRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewBuyerRepo builds the PostgreSQL buyer profile repository.
func NewBuyerRepo(conn *postgres.Connection, log logging.Logger) buyer.Repository {
	return &postgresBuyerRepo{conn: conn, log: log, executor: conn.DB()}
}

func (r *postgresBuyerRepo) Create(ctx context.Context, p *buyer.Profile) error {
	if p.ID.IsZero() {
		p.ID = common.NewID()
	}
	industries, _ := json.Marshal(p.Industries)
	locations, _ := json.Marshal(p.PreferredLocations)

	query := `
		INSERT INTO buyer_profiles (
			id, user_id, industries, min_budget, max_budget,
			preferred_locations, location_flexibility,
			min_revenue, max_revenue, min_ebitda, max_ebitda,
			min_employees, max_employees,
			management_stay, property_included, relocation,
			verified, financing_approved, synergies
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING created_at, updated_at`

	err := r.executor.QueryRowContext(ctx, query,
		p.ID, p.UserID, industries, p.MinBudget, p.MaxBudget,
		locations, string(p.LocationFlexibility),
		p.MinRevenue, p.MaxRevenue, p.MinEBITDA, p.MaxEBITDA,
		p.MinEmployees, p.MaxEmployees,
		string(p.ManagementStay), string(p.PropertyIncluded), string(p.Relocation),
		p.Verified, p.FinancingApproved, p.Synergies,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to create buyer profile")
	}
	return nil
}

func (r *postgresBuyerRepo) GetByID(ctx context.Context, id common.ID) (*buyer.Profile, error) {
	query := `SELECT` + buyerColumns + ` FROM buyer_profiles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresBuyerRepo) GetByUserID(ctx context.Context, userID common.ID) (*buyer.Profile, error) {
	query := `SELECT` + buyerColumns + ` FROM buyer_profiles WHERE user_id = $1`
	return r.getOne(ctx, query, userID)
}

func (r *postgresBuyerRepo) getOne(ctx context.Context, query string, arg any) (*buyer.Profile, error) {
	p, err := scanBuyerProfile(r.executor.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrCodeBuyerNotFound, "buyer profile not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to get buyer profile")
	}
	return p, nil
}

func (r *postgresBuyerRepo) Update(ctx context.Context, p *buyer.Profile) error {
	industries, _ := json.Marshal(p.Industries)
	locations, _ := json.Marshal(p.PreferredLocations)

	query := `
		UPDATE buyer_profiles SET
			industries = $2, min_budget = $3, max_budget = $4,
			preferred_locations = $5, location_flexibility = $6,
			min_revenue = $7, max_revenue = $8, min_ebitda = $9, max_ebitda = $10,
			min_employees = $11, max_employees = $12,
			management_stay = $13, property_included = $14, relocation = $15,
			verified = $16, financing_approved = $17, synergies = $18,
			updated_at = NOW()
		WHERE id = $1`

	res, err := r.executor.ExecContext(ctx, query,
		p.ID, industries, p.MinBudget, p.MaxBudget,
		locations, string(p.LocationFlexibility),
		p.MinRevenue, p.MaxRevenue, p.MinEBITDA, p.MaxEBITDA,
		p.MinEmployees, p.MaxEmployees,
		string(p.ManagementStay), string(p.PropertyIncluded), string(p.Relocation),
		p.Verified, p.FinancingApproved, p.Synergies,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to update buyer profile")
	}
	return requireRowAffected(res, apperrors.ErrCodeBuyerNotFound, "buyer profile not found")
}

func (r *postgresBuyerRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM buyer_profiles WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to delete buyer profile")
	}
	return requireRowAffected(res, apperrors.ErrCodeBuyerNotFound, "buyer profile not found")
}

func scanBuyerProfile(row rowScanner) (*buyer.Profile, error) {
	var p buyer.Profile
	var industries, locations []byte
	var flexibility, managementStay, propertyIncluded, relocation string

	err := row.Scan(
		&p.ID, &p.UserID, &industries, &p.MinBudget, &p.MaxBudget,
		&locations, &flexibility,
		&p.MinRevenue, &p.MaxRevenue, &p.MinEBITDA, &p.MaxEBITDA,
		&p.MinEmployees, &p.MaxEmployees,
		&managementStay, &propertyIncluded, &relocation,
		&p.Verified, &p.FinancingApproved, &p.Synergies,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(industries) > 0 {
		if err := json.Unmarshal(industries, &p.Industries); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to decode buyer industries")
		}
	}
	if len(locations) > 0 {
		if err := json.Unmarshal(locations, &p.PreferredLocations); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to decode buyer locations")
		}
	}
	p.LocationFlexibility = buyer.LocationFlexibility(flexibility)
	p.ManagementStay = buyer.PreferenceLevel(managementStay)
	p.PropertyIncluded = buyer.PreferenceLevel(propertyIncluded)
	p.Relocation = buyer.PreferenceLevel(relocation)
	return &p, nil
}
