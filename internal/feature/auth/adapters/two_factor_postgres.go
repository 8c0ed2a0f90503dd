package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/usecase"
)

// twoFactorPostgres はTwoFactorRepositoryインターフェースのPostgreSQL実装です。
type twoFactorPostgres struct {
	db *gorm.DB
}

var _ usecase.TwoFactorRepository = (*twoFactorPostgres)(nil)

// NewTwoFactorRepository はtwoFactorPostgresの新しいインスタンスを生成します。
func NewTwoFactorRepository(db *gorm.DB) *twoFactorPostgres {
	return &twoFactorPostgres{db: db}
}

// FindByUserID はユーザーの2FAレコードを取得します。
// レコードが存在しない場合、usecase.ErrTwoFactorNotSetUpを返します。
func (r *twoFactorPostgres) FindByUserID(ctx context.Context, userID uint) (*entity.TwoFactorAuth, error) {
	var tfa entity.TwoFactorAuth
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&tfa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTwoFactorNotSetUp
		}
		return nil, err
	}
	return &tfa, nil
}

// Create は新しい2FAレコードを永続化します。
// user_idのユニーク制約により、ユーザーごとに1件を超えることはありません。
func (r *twoFactorPostgres) Create(ctx context.Context, tfa *entity.TwoFactorAuth) error {
	return r.db.WithContext(ctx).Create(tfa).Error
}

// Enable はユーザーの two_factor_enabled フラグを true に設定します。
// 対応する2FAレコードが存在しない場合はフラグを立てずにエラーを返し、
// 「フラグtrue・シークレット無し」の不整合状態を防ぎます。
func (r *twoFactorPostgres) Enable(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tfa entity.TwoFactorAuth
		if err := tx.Where("user_id = ?", userID).First(&tfa).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrTwoFactorNotSetUp
			}
			return err
		}
		res := tx.Model(&entity.User{}).Where("id = ?", userID).
			Update("two_factor_enabled", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}

// Disable は2FAレコードの削除とフラグのクリアを同一トランザクションで行います。
// 部分適用（フラグのみクリアされレコードが残る等）は発生しません。
func (r *twoFactorPostgres) Disable(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.TwoFactorAuth{}).Error; err != nil {
			return err
		}
		res := tx.Model(&entity.User{}).Where("id = ?", userID).
			Update("two_factor_enabled", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}
