package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clubsanmartin/club-api/internal/models"
)

// TrainerRepository manages trainers.
type TrainerRepository struct {
	db *sqlx.DB
}

// NewTrainerRepository builds the repository.
func NewTrainerRepository(db *sqlx.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

// Create inserts a trainer.
func (r *TrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	if trainer.ID == "" {
		trainer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now
	const query = `
INSERT INTO trainers (id, first_name, last_name, dni, email, phone, sport, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query,
		trainer.ID, trainer.FirstName, trainer.LastName, trainer.DNI, trainer.Email, trainer.Phone,
		trainer.Sport, trainer.Active, trainer.CreatedAt, trainer.UpdatedAt); err != nil {
		return fmt.Errorf("create trainer: %w", err)
	}
	return nil
}

// FindByID loads a trainer.
func (r *TrainerRepository) FindByID(ctx context.Context, id string) (*models.Trainer, error) {
	const query = `SELECT id, first_name, last_name, dni, email, phone, sport, active, created_at, updated_at FROM trainers WHERE id = $1`
	var trainer models.Trainer
	if err := r.db.GetContext(ctx, &trainer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find trainer %s: %w", id, err)
	}
	return &trainer, nil
}

// FindByIDs loads the trainers matching the provided ids.
func (r *TrainerRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Trainer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(
		"SELECT id, first_name, last_name, dni, email, phone, sport, active, created_at, updated_at FROM trainers WHERE id IN (%s)",
		strings.Join(placeholders, ", "))
	var trainers []models.Trainer
	if err := r.db.SelectContext(ctx, &trainers, query, args...); err != nil {
		return nil, fmt.Errorf("find trainers by ids: %w", err)
	}
	return trainers, nil
}

// List returns every trainer ordered by name.
func (r *TrainerRepository) List(ctx context.Context) ([]models.Trainer, error) {
	const query = `SELECT id, first_name, last_name, dni, email, phone, sport, active, created_at, updated_at FROM trainers ORDER BY last_name ASC, first_name ASC`
	var trainers []models.Trainer
	if err := r.db.SelectContext(ctx, &trainers, query); err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	return trainers, nil
}
