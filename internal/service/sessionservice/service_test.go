package sessionservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"
	"gostore/internal/service/sessionservice"
)

type MockCarts struct{ mock.Mock }

func (m *MockCarts) SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error {
	return m.Called(ctx, sessionID, items).Error(0)
}

func TestCreate(t *testing.T) {
	carts := new(MockCarts)
	carts.On("SaveCart", mock.Anything, mock.AnythingOfType("string"), []domain.CartItem{}).Return(nil)
	tokens := token.NewService("test-secret", time.Hour)

	session, err := sessionservice.NewService(tokens, carts, token.RoleGuest, logger.NewNop()).Create(context.Background())

	require.NoError(t, err)
	_, parseErr := uuid.Parse(session.ID)
	assert.NoError(t, parseErr)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	claims, err := tokens.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.SessionID)
	assert.Equal(t, token.RoleGuest, claims.Role)
	carts.AssertExpectations(t)
}

func TestCreate_StoreFailure(t *testing.T) {
	carts := new(MockCarts)
	carts.On("SaveCart", mock.Anything, mock.Anything, mock.Anything).
		Return(apperror.NewPersistenceError("falha ao gravar a sessão", errors.New("redis down")))

	_, err := sessionservice.NewService(token.NewService("s", time.Hour), carts, token.RoleGuest, logger.NewNop()).
		Create(context.Background())

	var persistence *apperror.PersistenceError
	assert.ErrorAs(t, err, &persistence)
}
