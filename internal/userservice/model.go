package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Email,
		u.FirstName,
		u.LastName,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "users_username_key"):
			return ErrDuplicateUsername
		case common.UniqueViolationError(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, password, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Password.hash, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getProfile returns the user row together with the current article and
// comment counts. The counts are computed per call so they can never go
// stale against the stored rows.
func (m *DBModel) getProfile(ctx context.Context, id int) (*Profile, error) {
	query := `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name,
			(SELECT count(*) FROM articles a WHERE a.user_id = u.id),
			(SELECT count(*) FROM comments c WHERE c.user_id = u.id)
		FROM users u
		WHERE u.id = $1`

	var p Profile

	err := m.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Username, &p.Email, &p.FirstName, &p.LastName, &p.ArticleCount, &p.CommentCount)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &p, nil
}

// updateProfile writes only the fields the caller supplied. The username
// column is deliberately absent from the statement.
func (m *DBModel) updateProfile(ctx context.Context, id int, email, firstName, lastName *string) error {
	query := `
		UPDATE users
		SET email = COALESCE($1, email),
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			updated_at = now(),
			version = version + 1
		WHERE id = $4`

	res, err := m.db.ExecContext(ctx, query, email, firstName, lastName, id)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
