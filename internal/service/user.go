package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"shareit/internal/repository"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*UserView, error) {
	if input.Email == nil || *input.Email == "" {
		return nil, BadRequestf("email must not be empty")
	}
	if input.Name == nil || *input.Name == "" {
		return nil, BadRequestf("name must not be empty")
	}

	user := &repository.User{Email: *input.Email, Name: *input.Name}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, Conflictf("user with email %s already exists", user.Email)
		}
		return nil, err
	}
	zap.L().Info("user created", zap.Int64("user_id", id))
	return &UserView{ID: id, Email: user.Email, Name: user.Name}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*UserView, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("user %d not found", id)
		}
		return nil, err
	}
	return &UserView{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]UserView, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{ID: u.ID, Email: u.Email, Name: u.Name})
	}
	return views, nil
}

// Update applies a partial patch: only the fields present in the input change.
func (s *UserService) Update(ctx context.Context, id int64, input UserInput) (*UserView, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, NotFoundf("user %d not found", id)
		}
		return nil, err
	}

	if input.Email != nil {
		taken, err := s.users.EmailTakenByOther(ctx, *input.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Conflictf("user with email %s already exists", *input.Email)
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, Conflictf("user with email %s already exists", user.Email)
		}
		return nil, err
	}
	return &UserView{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
