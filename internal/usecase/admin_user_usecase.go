package usecase

import (
	"context"
	"errors"
	"strings"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
)

// AdminUserUsecase は管理者向けのユーザー管理です。
type AdminUserUsecase struct {
	tx       repo.TransactionManager
	userRepo repo.UserRepository
}

func NewAdminUserUsecase(
	tx repo.TransactionManager,
	userRepo repo.UserRepository,
) *AdminUserUsecase {
	return &AdminUserUsecase{tx: tx, userRepo: userRepo}
}

// ユーザー一覧（登録の新しい順）
func (u *AdminUserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewStorageError("db error")
	}
	return users, nil
}

// ロール変更（user/adminのみ）。監査ログを残す。
func (u *AdminUserUsecase) UpdateRole(ctx context.Context, actorAdminUserID int64, userID int64, newRole string) error {
	if actorAdminUserID <= 0 {
		return NewValidationError("unauthorized")
	}
	if userID <= 0 {
		return NewValidationError("invalid user_id")
	}

	role := model.Role(strings.TrimSpace(newRole))
	switch role {
	case model.RoleUser, model.RoleAdmin:
		// OK
	default:
		return NewValidationError("invalid role")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("user not found")
		}
		if err != nil {
			return NewStorageError("db error")
		}

		// すでに同じなら何もしない
		if user.Role == role {
			return nil
		}

		before := string(user.Role)
		if err := r.Users().UpdateRole(ctx, userID, role); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("user not found")
			}
			return NewStorageError("db error")
		}

		// 監査ログ（UPDATE_USER_ROLE）
		beforeJSON := `{"role":"` + before + `"}`
		afterJSON := `{"role":"` + string(role) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateUserRole,
			ResourceType: model.AuditResourceUser,
			ResourceID:   userID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
		}); err != nil {
			return NewStorageError("db error")
		}
		return nil
	})
}

// ユーザー削除。自分自身は消せない。本人のカートもまとめて消す。
func (u *AdminUserUsecase) Delete(ctx context.Context, actorAdminUserID int64, userID int64) error {
	if actorAdminUserID <= 0 {
		return NewValidationError("unauthorized")
	}
	if userID <= 0 {
		return NewValidationError("invalid user_id")
	}
	if actorAdminUserID == userID {
		return NewValidationError("cannot delete own account")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("user not found")
		}
		if err != nil {
			return NewStorageError("db error")
		}

		if err := r.Carts().DeleteByUserID(ctx, userID); err != nil {
			return NewStorageError("db error")
		}

		if err := r.Users().DeleteByID(ctx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("user not found")
			}
			return NewStorageError("db error")
		}

		// 監査ログ（DELETE_USER）
		beforeJSON := `{"username":"` + user.Username + `","role":"` + string(user.Role) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionDeleteUser,
			ResourceType: model.AuditResourceUser,
			ResourceID:   userID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    "{}",
		}); err != nil {
			return NewStorageError("db error")
		}
		return nil
	})
}
