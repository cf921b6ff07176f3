package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shareit/internal/repository"
	"shareit/internal/service"
	mock_repository "shareit/internal/service/mocks"
)

func strPtr(s string) *string { return &s }

func newUserService(t *testing.T) (*service.UserService, *mock_repository.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mock_repository.NewMockUserRepository(ctrl)
	return service.NewUserService(users), users
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *repository.User) (int64, error) {
				assert.Equal(t, "alice@example.com", u.Email)
				return 3, nil
			})

		view, err := svc.Create(ctx, service.UserInput{Email: strPtr("alice@example.com"), Name: strPtr("Alice")})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), view.ID)
		assert.Equal(t, "Alice", view.Name)
	})

	t.Run("missing email", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.Create(ctx, service.UserInput{Name: strPtr("Alice")})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("missing name", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.Create(ctx, service.UserInput{Email: strPtr("alice@example.com")})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().Create(ctx, gomock.Any()).Return(int64(0), repository.ErrEmailTaken)

		_, err := svc.Create(ctx, service.UserInput{Email: strPtr("alice@example.com"), Name: strPtr("Alice")})
		assert.ErrorIs(t, err, service.ErrConflict)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().GetByID(ctx, int64(3)).
			Return(&repository.User{ID: 3, Email: "alice@example.com", Name: "Alice"}, nil)

		view, err := svc.Get(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", view.Email)
	})

	t.Run("not found", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().GetByID(ctx, int64(404)).Return(nil, repository.ErrObjectNotFound)

		_, err := svc.Get(ctx, 404)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patch name only keeps email", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().GetByID(ctx, int64(3)).
			Return(&repository.User{ID: 3, Email: "alice@example.com", Name: "Alice"}, nil)
		users.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *repository.User) error {
				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, "Alyssa", u.Name)
				return nil
			})

		view, err := svc.Update(ctx, 3, service.UserInput{Name: strPtr("Alyssa")})
		assert.NoError(t, err)
		assert.Equal(t, "Alyssa", view.Name)
		assert.Equal(t, "alice@example.com", view.Email)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().GetByID(ctx, int64(3)).
			Return(&repository.User{ID: 3, Email: "alice@example.com", Name: "Alice"}, nil)
		users.EXPECT().EmailTakenByOther(ctx, "bob@example.com", int64(3)).Return(true, nil)

		_, err := svc.Update(ctx, 3, service.UserInput{Email: strPtr("bob@example.com")})
		assert.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, users := newUserService(t)

		users.EXPECT().GetByID(ctx, int64(404)).Return(nil, repository.ErrObjectNotFound)

		_, err := svc.Update(ctx, 404, service.UserInput{Name: strPtr("X")})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("database error passes through", func(t *testing.T) {
		svc, users := newUserService(t)

		expectedErr := errors.New("database error")
		users.EXPECT().GetByID(ctx, int64(3)).Return(&repository.User{ID: 3}, nil)
		users.EXPECT().Update(ctx, gomock.Any()).Return(expectedErr)

		_, err := svc.Update(ctx, 3, service.UserInput{Name: strPtr("X")})
		assert.Equal(t, expectedErr, err)
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	svc, users := newUserService(t)

	users.EXPECT().GetAll(ctx).Return([]repository.User{
		{ID: 1, Email: "a@example.com", Name: "A"},
		{ID: 2, Email: "b@example.com", Name: "B"},
	}, nil)

	views, err := svc.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(2), views[1].ID)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	svc, users := newUserService(t)

	users.EXPECT().Delete(ctx, int64(3)).Return(nil)

	assert.NoError(t, svc.Delete(ctx, 3))
}
