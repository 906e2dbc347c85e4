package repository

import (
	"context"

	"revorz/internal/domain/model"
)

type UserRepository interface {
	// username重複はErrConflict
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)

	// 管理者向け。登録の新しい順。
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	DeleteByID(ctx context.Context, userID int64) error
}
