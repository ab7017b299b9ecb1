package user_test

import (
	"context"
	"testing"

	"github.com/rpggio/tally/internal/domain/user"
	"github.com/rpggio/tally/internal/repository"
	"github.com/rpggio/tally/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_SignInCreatesNewUser(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetByEmail", ctx, "ana@example.com").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

	svc := user.NewService(repo, nil)
	u, err := svc.SignIn(ctx, user.Profile{Email: " Ana@Example.com ", Name: "Ana"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "ana@example.com", u.Email)
	require.Equal(t, "Ana", u.Name)
	repo.AssertExpectations(t)
}

func TestUserService_SignInReturnsExisting(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	existing := &user.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}
	repo.On("GetByEmail", ctx, "ana@example.com").Return(existing, nil)

	svc := user.NewService(repo, nil)
	u, err := svc.SignIn(ctx, user.Profile{Email: "ana@example.com", Name: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, existing, u)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_SignInRequiresEmail(t *testing.T) {
	svc := user.NewService(&mocks.UserRepository{}, nil)
	_, err := svc.SignIn(context.Background(), user.Profile{Name: "Ana"})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUserService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := user.NewService(repo, nil).Get(ctx, "missing")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
