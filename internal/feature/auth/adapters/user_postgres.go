// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/usecase"
)

// userPostgres はUserRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserRepository は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserRepository(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// isUniqueViolation はドライバ固有のユニーク制約違反エラーを判定します。
// PostgreSQLはSQLSTATE 23505、テスト用SQLiteはGORMのエラー変換に依存します。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create はユーザーをデータベースに追加します。
// ユニーク制約違反時は衝突したキーを特定し、usecase.ErrDuplicateUsername
// または usecase.ErrDuplicateEmail を返します。事前チェックではなく制約を
// 正として扱うため、同時サインアップでも重複は発生しません。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			var count int64
			r.db.WithContext(ctx).Model(&entity.User{}).
				Where("username = ?", u.Username).Count(&count)
			if count > 0 {
				return usecase.ErrDuplicateUsername
			}
			return usecase.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindByUsername はユーザー名でユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update は既存ユーザーの全属性を保存します。
// メールアドレスのユニーク制約違反時は usecase.ErrEmailTaken を返します。
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdatePassword はユーザーのパスワードハッシュのみを更新します。
func (r *userPostgres) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete はユーザーと関連する2FAレコードを同一トランザクションで削除します。
// どちらかの削除が失敗した場合は全体がロールバックされます。
func (r *userPostgres) Delete(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u entity.User
		if err := tx.Where("username = ?", username).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&entity.TwoFactorAuth{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

// List は全ユーザーをID昇順で返します。
func (r *userPostgres) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
