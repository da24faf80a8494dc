package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/messages"
	"pet-adoption-marketplace/internal/domain/notifications"
	"pet-adoption-marketplace/internal/domain/pets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func TestMigrate_AppliesSchema(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_CreateDuplicateInterestIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "notifications_unread_interest_uniq"})

	err := repo.Create(context.Background(), notifications.Notification{
		ID: "n2", Type: notifications.TypeInterest, Message: "m",
		PetID: "p1", FromUserID: "u7", ToUserID: "u9", CreatedAt: t0,
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_RespondCommitsBothWrites(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE id = $1 AND is_read = FALSE")).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WithArgs("r1", "confirmation", "ok", "p1", "u9", "u7", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Respond(context.Background(), "n1", notifications.Notification{
		ID: "r1", Type: notifications.TypeConfirmation, Message: "ok",
		PetID: "p1", FromUserID: "u9", ToUserID: "u7", CreatedAt: t0,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_RespondAlreadyReadRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE")).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.Respond(context.Background(), "n1", notifications.Notification{ID: "r1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_RespondMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.Respond(context.Background(), "nope", notifications.Notification{ID: "r1"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_RespondInsertFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.Respond(context.Background(), "n1", notifications.Notification{ID: "r1", Type: notifications.TypeRejection})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_MarkReadIdempotent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE id = $1")).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	changed, err := repo.MarkRead(context.Background(), "n1")
	require.NoError(t, err)
	assert.False(t, changed)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = repo.MarkRead(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRepo_ListByRecipient(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationsRepo(db)

	rows := sqlmock.NewRows([]string{"id", "type", "message", "pet_id", "from_user_id", "user_id", "is_read", "created_at"}).
		AddRow("n2", "system", "welcome", nil, nil, "u9", true, t0).
		AddRow("n1", "interest", "hi", "p1", "u7", "u9", false, t0.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, seq DESC")).
		WithArgs("u9").
		WillReturnRows(rows)

	items, err := repo.ListByRecipient(context.Background(), "u9")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "", items[0].PetID)
	assert.Equal(t, notifications.TypeInterest, items[1].Type)
	assert.Equal(t, "u7", items[1].FromUserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagesRepo_ConversationBothDirections(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMessagesRepo(db)

	rows := sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "content", "created_at"}).
		AddRow("m1", "a", "b", "hi", t0).
		AddRow("m2", "b", "a", "hey", t0)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC, seq ASC")).
		WithArgs("a", "b").
		WillReturnRows(rows)

	got, err := repo.Conversation(context.Background(), "a", "b")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, messages.Message{ID: "m2", SenderID: "b", ReceiverID: "a", Content: "hey", CreatedAt: t0}, got[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagesRepo_Counterparts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMessagesRepo(db)

	rows := sqlmock.NewRows([]string{"counterpart_id", "last_at", "last_seq"}).
		AddRow("c", t0.Add(time.Minute), int64(9)).
		AddRow("b", t0, int64(3))

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY counterpart_id")).
		WithArgs("a").
		WillReturnRows(rows)

	got, err := repo.Counterparts(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].CounterpartID)
	assert.Equal(t, t0, got[1].LastMessageAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM pets")).
		WithArgs("p1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "p1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_ListBuildsFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	cols := []string{"id", "owner_id", "name", "age", "breed", "type", "description", "location", "image", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE type = $1 AND (name ILIKE $2 OR breed ILIKE $2 OR location ILIKE $2)")).
		WithArgs("dog", `%50\%%`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p1", "u1", "Buddy", "3", "Beagle", "dog", "d", "NY", "", t0, t0))

	got, err := repo.List(context.Background(), pets.Filter{Type: pets.TypeDog, Query: "50%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pets.TypeDog, got[0].Type)
	assert.Equal(t, "u1", got[0].OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_CreateUnknownOwnerIsValidation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pets")).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "pets_owner_id_fkey"})

	err := repo.Create(context.Background(), pets.Pet{ID: "p1", OwnerID: "ghost", Type: pets.TypeCat, CreatedAt: t0, UpdatedAt: t0})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepo_AddOnConflictDoNothing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWishlistRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, pet_id) DO NOTHING")).
		WithArgs("u1", "p1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.Add(context.Background(), wishlistItem("u1", "p1"))
	require.NoError(t, err)
	assert.False(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_EmailTakenIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), userFixture())
	assert.ErrorIs(t, err, apperr.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
