package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/model"
)

// Queries wraps database queries
type Queries struct {
	*pgxpool.Pool
}

// NewQueries creates a new Queries instance
func NewQueries(pool *pgxpool.Pool) *Queries {
	return &Queries{Pool: pool}
}

// User is a user row including the password hash. The hash never crosses
// the db package boundary except through CheckPassword in the auth package.
type User struct {
	model.User
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, username, email, passwordHash string, role model.Role) (User, error) {
	var u User
	err := q.Pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password_hash, role`,
		username, email, passwordHash, string(role),
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := q.Pool.QueryRow(ctx,
		"SELECT id, username, email, password_hash, role FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := q.Pool.QueryRow(ctx,
		"SELECT id, username, email, password_hash, role FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := q.Pool.QueryRow(ctx,
		"SELECT id, username, email, password_hash, role FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}
