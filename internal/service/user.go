package service

import (
	"context"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/repository/users"
)

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error)
	// Delete removes a user. An admin deleting their own account is
	// rejected.
	Delete(ctx context.Context, actorID, id string) error
}

type userService struct {
	users users.Repository
}

func NewUserService(u users.Repository) UserService {
	return &userService{users: u}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, common.ErrInvalidRole
	}
	return s.users.UpdateRole(ctx, id, role)
}

func (s *userService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return common.ErrSelfDelete
	}
	return s.users.Delete(ctx, id)
}
