package repository

import (
	"context"
	"time"

	"hotel-backoffice/internal/domain/staff"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type StaffRepository struct {
	db store.Querier
}

func NewStaffRepository(db store.Querier) *StaffRepository {
	return &StaffRepository{db: db}
}

const createStaffSQL = `
INSERT INTO staff (
    id, name, email, password_hash, role, is_active, last_login_at,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *StaffRepository) Create(ctx context.Context, s *staff.Staff) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createStaffSQL,
		s.ID(), s.Name(), s.Email(), s.PasswordHash(), s.Role().String(),
		s.IsActive(), pgconv.TimePtrToPgtype(s.LastLoginAt()),
		s.CreatedAt(), s.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create staff", err)
	}
	return id, nil
}

const findStaffByEmailSQL = `
SELECT id, name, email, password_hash, role, is_active, last_login_at,
       created_at, updated_at
FROM staff
WHERE email = $1`

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	var (
		id                   uuid.UUID
		name, mail           string
		passwordHash, role   string
		isActive             bool
		lastLoginAt          pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findStaffByEmailSQL, email).Scan(
		&id, &name, &mail, &passwordHash, &role, &isActive, &lastLoginAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("staff not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find staff by email", err)
	}

	return staff.ReconstructStaff(
		id, name, mail, passwordHash, staff.Role(role), isActive,
		pgconv.TimePtrFromPgtype(lastLoginAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const updateStaffLastLoginSQL = `
UPDATE staff SET last_login_at = $2, updated_at = $2 WHERE id = $1`

func (r *StaffRepository) UpdateLastLogin(ctx context.Context, staffID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, updateStaffLastLoginSQL, staffID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("staff not found", nil, infra.KindNotFound)
	}
	return nil
}
