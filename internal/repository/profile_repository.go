package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geek-records/support-desk/internal/domain"
)

// ProfileRepository reads provisioned profiles. Profiles are created and
// role-managed by an external process; this service never writes them.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	CredentialsByEmail(ctx context.Context, email string) (*domain.Profile, string, error)
	EmailsByIDs(ctx context.Context, ids []string) (map[string]string, error)
	RolesByIDs(ctx context.Context, ids []string) (map[string]domain.Role, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `
        SELECT id, email, role, created_at
        FROM profiles WHERE id=$1`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) CredentialsByEmail(ctx context.Context, email string) (*domain.Profile, string, error) {
	const query = `
        SELECT id, email, role, created_at, password_hash
        FROM profiles WHERE email=$1`

	var profile domain.Profile
	var hash string
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
		&hash,
	); err != nil {
		return nil, "", err
	}
	return &profile, hash, nil
}

func (r *profileRepository) EmailsByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `SELECT id, email FROM profiles WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, err
		}
		result[id] = email
	}
	return result, rows.Err()
}

func (r *profileRepository) RolesByIDs(ctx context.Context, ids []string) (map[string]domain.Role, error) {
	result := make(map[string]domain.Role, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `SELECT id, role FROM profiles WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var role domain.Role
		if err := rows.Scan(&id, &role); err != nil {
			return nil, err
		}
		result[id] = role
	}
	return result, rows.Err()
}
