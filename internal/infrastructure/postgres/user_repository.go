package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreyes/auth-service/internal/domain/entity"
	"github.com/dreyes/auth-service/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

// Create inserts the user and its phones in one transaction. A collision
// on the unique email index surfaces as repository.ErrDuplicateEmail so
// the engine can resolve the check-then-insert race.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password, created, last_login, token, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, u.Name, u.Email, u.Password, u.Created, u.LastLogin, u.Token, u.IsActive)

	if err := row.Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}

	for _, p := range u.Phones {
		if _, err := tx.Exec(ctx, `
			INSERT INTO phones (user_id, number, city_code, country_code)
			VALUES ($1, $2, $3, $4)
		`, u.ID, p.Number, p.CityCode, p.CountryCode); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `
		SELECT id, name, email, password, created, last_login, token, is_active
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `
		SELECT id, name, email, password, created, last_login, token, is_active
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Created,
		&u.LastLogin, &u.Token, &u.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	phones, err := r.phonesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Phones = phones
	return u, nil
}

func (r *UserRepository) phonesFor(ctx context.Context, userID string) ([]entity.Phone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT number, city_code, country_code
		FROM phones
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []entity.Phone
	for rows.Next() {
		var p entity.Phone
		if err := rows.Scan(&p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

// Update persists the mutable fields (last_login, token). Phones and
// identity fields never change after sign-up.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET last_login = $1, token = $2, is_active = $3
		WHERE id = $4
	`, u.LastLogin, u.Token, u.IsActive, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
