package services

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/store"
)

func newUserService(t *testing.T) (pgxmock.PgxPoolIface, *UserService) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserService(store.New(mock))
}

func TestUserCreateProvisionsAccount(t *testing.T) {
	mock, svc := newUserService(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ada", "", "ada@example.com", domain.AuthProviderGoogle, "google-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(5), time.Now().UTC()))

	user := &domain.User{
		Name:           "Ada",
		Email:          "ada@example.com",
		AuthProvider:   domain.AuthProviderGoogle,
		ProviderUserID: "google-123",
	}
	require.NoError(t, svc.Create(context.Background(), user))
	assert.Equal(t, int64(5), user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateRejectsUnknownProvider(t *testing.T) {
	mock, svc := newUserService(t)

	err := svc.Create(context.Background(), &domain.User{
		Email:        "ada@example.com",
		AuthProvider: "carrier-pigeon",
	})
	assert.Error(t, err)

	// Nothing reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateRequiresEmail(t *testing.T) {
	_, svc := newUserService(t)

	err := svc.Create(context.Background(), &domain.User{
		AuthProvider: domain.AuthProviderApple,
	})
	assert.Error(t, err)
}
