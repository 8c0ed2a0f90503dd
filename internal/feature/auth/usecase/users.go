package usecase

import (
	"context"
	"errors"
	"fmt"

	"waste_backend/internal/feature/auth/domain/entity"
)

// ProfileUpdate は更新対象フィールドのみ非nilで渡すプロフィール更新指示です。
type ProfileUpdate struct {
	Email      *string
	Department *string
	JobTitle   *string
}

// UpdateProfile はユーザーのプロフィールを部分更新します。
// 新しいメールアドレスが他のユーザーと衝突する場合は ErrEmailTaken を返します。
// 未登録の職位名は Signup と同様にディクショナリへ追加されます。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		other, err := u.users.FindByEmail(ctx, *update.Email)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = *update.Email
	}

	if update.Department != nil {
		if !entity.ValidDepartment(*update.Department) {
			return nil, ErrInvalidDepartment
		}
		user.Department = *update.Department
	}

	if update.JobTitle != nil {
		if err := u.titles.Ensure(ctx, *update.JobTitle); err != nil {
			return nil, fmt.Errorf("failed to register job title: %w", err)
		}
		user.JobTitle = *update.JobTitle
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser はIDでユーザーを取得します。
func (u *authUsecase) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// ListUsers は全ユーザーを返します（管理画面用）。
func (u *authUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// DeleteUser はユーザーと関連する2FAレコードを削除します。
// カスケード削除はadapters側で同一トランザクションとして実行されます。
func (u *authUsecase) DeleteUser(ctx context.Context, username string) error {
	return u.users.Delete(ctx, username)
}

// GetJobTitles は登録済みの職位名を全件返します。
func (u *authUsecase) GetJobTitles(ctx context.Context) ([]string, error) {
	return u.titles.List(ctx)
}
