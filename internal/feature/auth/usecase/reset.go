package usecase

import (
	"context"
	"errors"
	"time"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/platform/password"
	"waste_backend/internal/platform/totp"
)

// resetTokenTTL はリセットトークンの有効期間です。
const resetTokenTTL = 24 * time.Hour

// RequestPasswordReset はユーザーのパスワードリセットトークンを発行します。
// ユーザーが存在しない場合はエラーではなく空トークンを返し、ユーザーの存在を
// 漏らしません。
func (u *authUsecase) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := totp.RandomToken()
	if err != nil {
		return "", err
	}

	reset := &entity.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := u.resets.Create(ctx, reset); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyPasswordResetToken はリセットトークンを検証して消費します。
// 成功時はトークン行を削除してユーザーIDを返すため、同じトークンの再検証は
// 失敗します。期限切れの場合は失効行を削除した上で ErrInvalidResetToken を
// 返します（遅延クリーンアップ。定期スイープは存在しません）。
func (u *authUsecase) VerifyPasswordResetToken(ctx context.Context, token string) (uint, error) {
	reset, err := u.resets.FindByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if reset.Expired(time.Now()) {
		if err := u.resets.Delete(ctx, reset.ID); err != nil {
			return 0, err
		}
		return 0, ErrInvalidResetToken
	}
	if err := u.resets.Delete(ctx, reset.ID); err != nil {
		return 0, err
	}
	return reset.UserID, nil
}

// ConfirmPasswordReset はトークンを検証・消費し、新しいパスワードを設定します。
func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	userID, err := u.VerifyPasswordResetToken(ctx, token)
	if err != nil {
		return err
	}
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, userID, hashed)
}

// ResetPassword はトークンを介さない管理者向けのパスワード再設定です。
// 呼び出し元のアクセス制御（管理者ルート・運用CLI）でのみ到達可能にして
// ください。
func (u *authUsecase) ResetPassword(ctx context.Context, username, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, user.ID, hashed)
}
