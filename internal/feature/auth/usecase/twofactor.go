package usecase

import (
	"context"
	"errors"
	"fmt"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/platform/totp"
)

// SetupTwoFactor は2FA登録用のシークレットとotpauth URIを返します。
// 既にシークレットが保存されている場合はそれを再利用します（検証前に設定画面へ
// 再入場してもシークレットはローテーションされません）。two_factor_enabled
// フラグはここでは変更しません。
func (u *authUsecase) SetupTwoFactor(ctx context.Context, userID uint) (uri, secret string, err error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	tfa, err := u.twoFactor.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		// 既存のシークレットを再利用
	case errors.Is(err, ErrTwoFactorNotSetUp):
		key, genErr := totp.GenerateSecret()
		if genErr != nil {
			return "", "", genErr
		}
		tfa = &entity.TwoFactorAuth{UserID: userID, SecretKey: key}
		if err := u.twoFactor.Create(ctx, tfa); err != nil {
			return "", "", fmt.Errorf("failed to store 2FA secret: %w", err)
		}
	default:
		return "", "", err
	}

	uri = totp.ProvisioningURI(tfa.SecretKey, user.Email, u.issuer)
	return uri, tfa.SecretKey, nil
}

// VerifyTwoFactorSetup は登録時の確認コードを検証し、成功した場合のみ
// two_factor_enabled フラグを true に設定します。フラグを立てる経路は
// これが唯一であり、フラグとシークレットの整合性を保証します。
func (u *authUsecase) VerifyTwoFactorSetup(ctx context.Context, userID uint, code string) error {
	tfa, err := u.twoFactor.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !totp.Verify(tfa.SecretKey, code) {
		return ErrInvalidCredentials
	}
	return u.twoFactor.Enable(ctx, userID)
}

// DisableTwoFactor は2FAレコードの削除とフラグのクリアを行います。
// 両方の変更は同一トランザクションで適用されます（adapters側で保証）。
func (u *authUsecase) DisableTwoFactor(ctx context.Context, userID uint) error {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return u.twoFactor.Disable(ctx, userID)
}
