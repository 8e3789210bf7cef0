package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clubsanmartin/club-api/internal/models"
)

// FamilyRepository manages family plans.
type FamilyRepository struct {
	db *sqlx.DB
}

// NewFamilyRepository builds the repository.
func NewFamilyRepository(db *sqlx.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a family plan.
func (r *FamilyRepository) Create(ctx context.Context, family *models.Family) error {
	if family.ID == "" {
		family.ID = uuid.NewString()
	}
	const query = `INSERT INTO families (id, last_name, discount) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, family.ID, family.LastName, family.Discount); err != nil {
		return fmt.Errorf("create family: %w", err)
	}
	return nil
}

// FindByID loads a family.
func (r *FamilyRepository) FindByID(ctx context.Context, id string) (*models.Family, error) {
	var family models.Family
	if err := r.db.GetContext(ctx, &family, `SELECT id, last_name, discount FROM families WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find family %s: %w", id, err)
	}
	return &family, nil
}

// List returns every family plan.
func (r *FamilyRepository) List(ctx context.Context) ([]models.Family, error) {
	var families []models.Family
	if err := r.db.SelectContext(ctx, &families, `SELECT id, last_name, discount FROM families ORDER BY last_name ASC`); err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	return families, nil
}

// Delete removes a family plan. Member links must be detached first.
func (r *FamilyRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	res, err := r.exec(exec).ExecContext(ctx, `DELETE FROM families WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete family %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete family %s rows affected: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
