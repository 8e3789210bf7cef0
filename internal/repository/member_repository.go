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

// MemberRepository manages club members.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository builds the repository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a member.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.Status == "" {
		member.Status = models.MemberActive
	}
	const query = `
INSERT INTO members (id, first_name, last_name, dni, email, phone, plan_type, status, family_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query,
		member.ID, member.FirstName, member.LastName, member.DNI, member.Email, member.Phone,
		member.PlanType, member.Status, member.FamilyID, member.CreatedAt, member.UpdatedAt); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// Update persists member fields.
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `
UPDATE members SET first_name = $1, last_name = $2, email = $3, phone = $4, plan_type = $5, status = $6, family_id = $7, updated_at = $8
WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		member.FirstName, member.LastName, member.Email, member.Phone, member.PlanType, member.Status, member.FamilyID, member.UpdatedAt, member.ID)
	if err != nil {
		return fmt.Errorf("update member %s: %w", member.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update member %s rows affected: %w", member.ID, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads a member.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	const query = `SELECT id, first_name, last_name, dni, email, phone, plan_type, status, family_id, created_at, updated_at FROM members WHERE id = $1`
	var member models.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find member %s: %w", id, err)
	}
	return &member, nil
}

// List returns members matching the filter with pagination metadata.
func (r *MemberRepository) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, *models.Pagination, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR dni LIKE $%d)", idx, idx, idx))
	}
	if filter.PlanType != "" {
		args = append(args, filter.PlanType)
		conditions = append(conditions, fmt.Sprintf("plan_type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.FamilyID != "" {
		args = append(args, filter.FamilyID)
		conditions = append(conditions, fmt.Sprintf("family_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM members"+where, args...); err != nil {
		return nil, nil, fmt.Errorf("count members: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(
		"SELECT id, first_name, last_name, dni, email, phone, plan_type, status, family_id, created_at, updated_at FROM members%s ORDER BY last_name ASC, first_name ASC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}
	return members, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// DetachFamily clears the family link for every member of a family.
func (r *MemberRepository) DetachFamily(ctx context.Context, exec sqlx.ExtContext, familyID string) error {
	target := sqlx.ExtContext(r.db)
	if exec != nil {
		target = exec
	}
	if _, err := target.ExecContext(ctx, `UPDATE members SET family_id = NULL WHERE family_id = $1`, familyID); err != nil {
		return fmt.Errorf("detach members from family %s: %w", familyID, err)
	}
	return nil
}
