package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestStore(t), logger.Discard())

	user, err := svc.RegisterUser(ctx, &models.User{Name: "Alice", Username: "alice", Email: "alice@cafe.test"})
	require.NoError(t, err)
	assert.NotEqual(t, models.UnsavedID, user.ID)

	byEmail, err := svc.GetUser(ctx, "alice@cafe.test")
	require.NoError(t, err)
	assert.Equal(t, user, byEmail)

	byName, err := svc.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = svc.GetUser(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterUserRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestStore(t), logger.Discard())
	_, err := svc.RegisterUser(ctx, &models.User{Name: "Alice", Username: "alice", Email: "alice@cafe.test"})
	require.NoError(t, err)

	tests := []struct {
		name string
		user *models.User
		want error
	}{
		{name: "nil", user: nil, want: ErrValidation},
		{name: "no username", user: &models.User{Name: "B", Email: "b@cafe.test"}, want: ErrValidation},
		{name: "bad email", user: &models.User{Name: "B", Username: "b", Email: "b.cafe.test"}, want: ErrValidation},
		{name: "no name", user: &models.User{Username: "b", Email: "b@cafe.test"}, want: ErrValidation},
		{name: "taken username", user: &models.User{Name: "A2", Username: "alice", Email: "other@cafe.test"}, want: ErrConflict},
		{name: "taken email", user: &models.User{Name: "A2", Username: "alice2", Email: "alice@cafe.test"}, want: ErrConflict},
		{name: "username equal to an email", user: &models.User{Name: "A3", Username: "alice@cafe.test", Email: "a3@cafe.test"}, want: ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, tt.user)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
