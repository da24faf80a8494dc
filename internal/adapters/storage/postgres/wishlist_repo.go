package postgres

import (
	"context"
	"database/sql"

	"pet-adoption-marketplace/internal/domain/wishlist"
)

type WishlistRepo struct {
	db *sql.DB
}

func NewWishlistRepo(db *sql.DB) *WishlistRepo {
	return &WishlistRepo{db: db}
}

func (r *WishlistRepo) Add(ctx context.Context, it wishlist.Item) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, pet_id, created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, pet_id) DO NOTHING
	`, it.UserID, it.PetID, it.CreatedAt)
	if err != nil {
		return false, mapErr(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, petID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND pet_id = $2
	`, userID, petID)
	if err != nil {
		return false, mapErr(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *WishlistRepo) Has(ctx context.Context, userID, petID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND pet_id = $2)
	`, userID, petID).Scan(&ok)
	return ok, mapErr(err)
}

func (r *WishlistRepo) ListPetIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_id
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
