package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// UserPatch carries a partial role-store update. Nil fields are untouched;
// the set fields are applied atomically in one statement.
type UserPatch struct {
	Name    *string
	Role    *domain.Role
	IsFraud *bool
}

// Empty reports whether the patch carries no fields.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Role == nil && p.IsFraud == nil
}

// UserRepository defines persistence access for role-store records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListFraudVendorEmails(ctx context.Context) ([]string, error)
	Patch(ctx context.Context, id string, patch UserPatch) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, name, role, is_fraud)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Role,
		user.IsFraud,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, email, name, role, is_fraud, created_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, name, role, is_fraud, created_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.IsFraud,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id, email, name, role, is_fraud, created_at
        FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Role,
			&user.IsFraud,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) ListFraudVendorEmails(ctx context.Context) ([]string, error) {
	const query = `SELECT email FROM users WHERE role='vendor' AND is_fraud`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *userRepository) Patch(ctx context.Context, id string, patch UserPatch) error {
	sets := []string{}
	args := []any{}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name=$%d", len(args)))
	}
	if patch.Role != nil {
		args = append(args, *patch.Role)
		sets = append(sets, fmt.Sprintf("role=$%d", len(args)))
	}
	if patch.IsFraud != nil {
		args = append(args, *patch.IsFraud)
		sets = append(sets, fmt.Sprintf("is_fraud=$%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
