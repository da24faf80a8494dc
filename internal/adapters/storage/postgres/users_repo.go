package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-marketplace/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, profile_image, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, u.ID, u.Name, strings.ToLower(u.Email), u.Password, u.ProfileImage, u.CreatedAt)
	return mapErr(err)
}

// Update solo toca campos de perfil; email es inmutable.
func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, profile_image = $3
		WHERE id = $1
	`, u.ID, u.Name, u.ProfileImage)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, strings.TrimSpace(id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UsersRepo) getOne(ctx context.Context, where string, arg string) (users.User, error) {
	if arg == "" {
		return users.User{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, profile_image, created_at
		FROM users
		`+where, arg)

	var u users.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.ProfileImage, &u.CreatedAt); err != nil {
		return users.User{}, mapErr(err)
	}
	return u, nil
}
