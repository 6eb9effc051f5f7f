package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenchat/lumen/api/domain"
)

// setupMockContext injects the mock through the transaction context key so
// conn() resolves to it instead of the (nil) pool.
func setupMockContext(mock pgxmock.PgxPoolIface) context.Context {
	return context.WithValue(context.Background(), txKey{}, mock)
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Store, context.Context) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &Store{pool: nil}, setupMockContext(mock)
}

// The consume statement must carry both the token and expiry predicates:
// lookup, expiry check, and invalidation are a single atomic DELETE.
const consumeTicketSQL = `DELETE FROM ws_tickets WHERE token = \$1 AND expires_at > now\(\) RETURNING user_id`

func TestConsumeTicket(t *testing.T) {
	mock, s, ctx := newMock(t)

	mock.ExpectQuery(consumeTicketSQL).
		WithArgs("tok_valid").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(42)))

	userID, err := s.ConsumeTicket(ctx, "tok_valid")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeTicket_MissingOrExpired(t *testing.T) {
	mock, s, ctx := newMock(t)

	// Missing, expired, and already-consumed all look the same to the
	// DELETE: zero rows.
	mock.ExpectQuery(consumeTicketSQL).
		WithArgs("tok_gone").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.ConsumeTicket(ctx, "tok_gone")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeTicket_SecondUseFails(t *testing.T) {
	mock, s, ctx := newMock(t)

	mock.ExpectQuery(consumeTicketSQL).
		WithArgs("tok_once").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(7)))
	mock.ExpectQuery(consumeTicketSQL).
		WithArgs("tok_once").
		WillReturnError(pgx.ErrNoRows)

	userID, err := s.ConsumeTicket(ctx, "tok_once")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	_, err = s.ConsumeTicket(ctx, "tok_once")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTicket(t *testing.T) {
	mock, s, ctx := newMock(t)

	mock.ExpectExec("DELETE FROM ws_tickets WHERE expires_at").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO ws_tickets").
		WithArgs(pgxmock.AnyArg(), int64(42), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ticket, err := s.CreateTicket(ctx, 42, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Token)
	assert.Equal(t, int64(42), ticket.UserID)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Minute), ticket.ExpiresAt, 5*time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTicket_SweepsAndInsertsInOneTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	s := New(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ws_tickets WHERE expires_at").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("INSERT INTO ws_tickets").
		WithArgs(pgxmock.AnyArg(), int64(42), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ticket, err := s.CreateTicket(context.Background(), 42, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Token)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTicket_RollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	s := New(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ws_tickets WHERE expires_at").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = s.CreateTicket(context.Background(), 42, time.Minute)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_AssignsIdentity(t *testing.T) {
	mock, s, ctx := newMock(t)

	created := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ada", "", "ada@example.com", domain.AuthProviderGoogle, "google-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), created))

	user := &domain.User{
		Name:           "Ada",
		Email:          "ada@example.com",
		AuthProvider:   domain.AuthProviderGoogle,
		ProviderUserID: "google-123",
	}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, created, user.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMessage_AssignsIdentity(t *testing.T) {
	mock, s, ctx := newMock(t)

	created := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO messages").
		WithArgs(int64(3), "hello", false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(101), created))

	msg := &domain.Message{ThreadID: 3, Content: "hello", IsBot: false}
	require.NoError(t, s.CreateMessage(ctx, msg))
	assert.Equal(t, int64(101), msg.ID)
	assert.Equal(t, created, msg.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetThreadByUser(t *testing.T) {
	mock, s, ctx := newMock(t)

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_id, title, created_at").
		WithArgs(int64(3), int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "created_at"}).
			AddRow(int64(3), int64(42), "Trip planning", created))

	thread, err := s.GetThreadByUser(ctx, 3, 42)
	require.NoError(t, err)
	assert.Equal(t, "Trip planning", thread.Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetThreadByUser_NotOwned(t *testing.T) {
	mock, s, ctx := newMock(t)

	mock.ExpectQuery("SELECT id, user_id, title, created_at").
		WithArgs(int64(3), int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetThreadByUser(ctx, 3, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessages(t *testing.T) {
	mock, s, ctx := newMock(t)

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, thread_id, content, is_bot, created_at").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "thread_id", "content", "is_bot", "created_at"}).
			AddRow(int64(1), int64(3), "hi", false, created).
			AddRow(int64(2), int64(3), "hello there", true, created))

	msgs, err := s.ListMessages(ctx, 3)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].IsBot)
	assert.True(t, msgs[1].IsBot)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	mock, s, ctx := newMock(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteUser(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
