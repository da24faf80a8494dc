package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

const notificationColumns = `id, type, message, pet_id, from_user_id, user_id, is_read, created_at`

const insertNotificationSQL = `
	INSERT INTO notifications (` + notificationColumns + `)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertNotification(ctx context.Context, db execer, n notifications.Notification) error {
	_, err := db.ExecContext(ctx, insertNotificationSQL,
		n.ID,
		string(n.Type),
		n.Message,
		nullString(n.PetID),
		nullString(n.FromUserID),
		n.ToUserID,
		n.IsRead,
		n.CreatedAt,
	)
	return mapErr(err)
}

// Create: el índice notifications_unread_interest_uniq convierte un interest duplicado en ErrConflict.
func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	return insertNotification(ctx, r.db, n)
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE id = $1
	`, id)
	n, err := scanNotification(row)
	if err != nil {
		return notifications.Notification{}, mapErr(err)
	}
	return n, nil
}

func (r *NotificationsRepo) ListByRecipient(ctx context.Context, userID string) ([]notifications.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var c int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE
	`, userID).Scan(&c)
	return c, mapErr(err)
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND is_read = FALSE
	`, id)
	if err != nil {
		return false, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}

	// 0 filas: ya estaba leída o no existe.
	exists, err := notificationExists(ctx, r.db, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	if err != nil {
		return 0, mapErr(err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Respond marca el original y crea la respuesta en la misma transacción.
// El UPDATE condicionado a is_read = FALSE toma el lock de la fila: dos respuestas concurrentes
// no pueden pasar ambas.
func (r *NotificationsRepo) Respond(ctx context.Context, originalID string, reply notifications.Notification) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND is_read = FALSE
	`, originalID)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		exists, xerr := notificationExists(ctx, tx, originalID)
		if xerr != nil {
			return xerr
		}
		if !exists {
			return ErrNotFound
		}
		return apperr.Conflict("notification %s already read", originalID)
	}

	if err = insertNotification(ctx, tx, reply); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit respond: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func notificationExists(ctx context.Context, db queryRower, id string) (bool, error) {
	var ok bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1)`, id).Scan(&ok)
	return ok, mapErr(err)
}

func scanNotification(s rowScanner) (notifications.Notification, error) {
	var (
		n        notifications.Notification
		typ      string
		petID    sql.NullString
		fromUser sql.NullString
	)
	if err := s.Scan(&n.ID, &typ, &n.Message, &petID, &fromUser, &n.ToUserID, &n.IsRead, &n.CreatedAt); err != nil {
		return notifications.Notification{}, err
	}
	n.Type = notifications.Type(typ)
	n.PetID = petID.String
	n.FromUserID = fromUser.String
	return n, nil
}
