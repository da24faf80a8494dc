package postgres

import (
	"context"
	"database/sql"

	"pet-adoption-marketplace/internal/domain/messages"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Create(ctx context.Context, m messages.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, content, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, m.ID, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt)
	return mapErr(err)
}

// Conversation: seq desempata mensajes con el mismo created_at (orden de inserción).
func (r *MessagesRepo) Conversation(ctx context.Context, userA, userB string) ([]messages.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC, seq ASC
	`, userA, userB)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]messages.Message, 0)
	for rows.Next() {
		var m messages.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MessagesRepo) Counterparts(ctx context.Context, userID string) ([]messages.Thread, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT counterpart_id, MAX(created_at) AS last_at, MAX(seq) AS last_seq
		FROM (
			SELECT
				CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS counterpart_id,
				created_at,
				seq
			FROM messages
			WHERE sender_id = $1 OR receiver_id = $1
		) t
		GROUP BY counterpart_id
		ORDER BY last_at DESC, last_seq DESC
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]messages.Thread, 0)
	for rows.Next() {
		var (
			t   messages.Thread
			seq int64
		)
		if err := rows.Scan(&t.CounterpartID, &t.LastMessageAt, &seq); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
