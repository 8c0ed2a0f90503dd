package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/usecase"
)

// passwordResetPostgres はPasswordResetRepositoryインターフェースのPostgreSQL実装です。
type passwordResetPostgres struct {
	db *gorm.DB
}

var _ usecase.PasswordResetRepository = (*passwordResetPostgres)(nil)

// NewPasswordResetRepository はpasswordResetPostgresの新しいインスタンスを生成します。
func NewPasswordResetRepository(db *gorm.DB) *passwordResetPostgres {
	return &passwordResetPostgres{db: db}
}

// Create は新しいリセットトークン行を永続化します。
func (r *passwordResetPostgres) Create(ctx context.Context, reset *entity.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// FindByToken はトークン文字列でレコードを取得します。
// 存在しない場合、usecase.ErrInvalidResetTokenを返します。
func (r *passwordResetPostgres) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	var reset entity.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInvalidResetToken
		}
		return nil, err
	}
	return &reset, nil
}

// Delete はレコードをIDで削除します。
func (r *passwordResetPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.PasswordReset{}, id).Error
}
