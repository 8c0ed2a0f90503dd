package usecase

import (
	"context"
	"errors"
	"fmt"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/platform/password"
	"waste_backend/internal/platform/totp"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// ユーザー名またはメールアドレスが既に存在する場合、ErrDuplicateUsername /
	// ErrDuplicateEmail を返します。一意性はストレージ側のユニーク制約が保証します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update は既存ユーザーの属性を保存します。
	Update(ctx context.Context, user *entity.User) error

	// UpdatePassword はユーザーのパスワードハッシュのみを更新します。
	UpdatePassword(ctx context.Context, userID uint, hash string) error

	// Delete はユーザーと関連する2FAレコードを同一トランザクションで削除します。
	Delete(ctx context.Context, username string) error

	// List は全ユーザーを取得します。
	List(ctx context.Context) ([]entity.User, error)
}

// JobTitleRepository は職位名ディクショナリの永続化層を抽象化します。
type JobTitleRepository interface {
	// Ensure は未登録の職位名を追加します。既に存在する場合は何もしません。
	Ensure(ctx context.Context, title string) error

	// List は登録済みの職位名を全件返します。
	List(ctx context.Context) ([]string, error)
}

// TwoFactorRepository は2FAシークレットの永続化層を抽象化します。
type TwoFactorRepository interface {
	// FindByUserID はユーザーの2FAレコードを取得します。
	// レコードが存在しない場合、ErrTwoFactorNotSetUp を返します。
	FindByUserID(ctx context.Context, userID uint) (*entity.TwoFactorAuth, error)

	// Create は新しい2FAレコードを永続化します。ユーザーごとに最大1件です。
	Create(ctx context.Context, tfa *entity.TwoFactorAuth) error

	// Enable はユーザーの two_factor_enabled フラグを true に設定します。
	Enable(ctx context.Context, userID uint) error

	// Disable は2FAレコードの削除とフラグのクリアを同一トランザクションで行います。
	Disable(ctx context.Context, userID uint) error
}

// PasswordResetRepository はパスワードリセットトークンの永続化層を抽象化します。
type PasswordResetRepository interface {
	// Create は新しいリセットトークンを永続化します。
	Create(ctx context.Context, reset *entity.PasswordReset) error

	// FindByToken はトークン文字列でレコードを取得します。
	// 存在しない場合、ErrInvalidResetToken を返します。
	FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error)

	// Delete はレコードをIDで削除します。
	Delete(ctx context.Context, id uint) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users     UserRepository
	titles    JobTitleRepository
	twoFactor TwoFactorRepository
	resets    PasswordResetRepository
	issuer    string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// issuer は2FA登録用otpauth URIに埋め込まれる発行者名です。
func NewAuthUsecase(users UserRepository, titles JobTitleRepository,
	twoFactor TwoFactorRepository, resets PasswordResetRepository, issuer string) *authUsecase {
	return &authUsecase{
		users:     users,
		titles:    titles,
		twoFactor: twoFactor,
		resets:    resets,
		issuer:    issuer,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// 未登録の職位名は job_titles ディクショナリに追加されます。
func (u *authUsecase) Signup(ctx context.Context, username, email, pw, department, jobTitle string) (*entity.User, error) {
	if err := validatePassword(pw); err != nil {
		return nil, err
	}
	if !entity.ValidDepartment(department) {
		return nil, ErrInvalidDepartment
	}

	if err := u.titles.Ensure(ctx, jobTitle); err != nil {
		return nil, fmt.Errorf("failed to register job title: %w", err)
	}

	hashed, err := password.Hash(pw)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:   username,
		Email:      email,
		Password:   hashed,
		Department: department,
		JobTitle:   jobTitle,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate はユーザー名とパスワード（および2FA有効時はワンタイムコード）で
// ユーザーを認証します。2番目の戻り値がtrueの場合、パスワードは検証済みだが
// ワンタイムコードの入力が必要です。その場合もユーザーを返しますが、呼び出し元は
// コード検証が完了するまで認証済みとして扱ってはいけません。
//
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// ユーザー名・パスワード・コードのどれが誤っていても ErrInvalidCredentials を返し、
// どの要素が失敗したかを漏らしません。
func (u *authUsecase) Authenticate(ctx context.Context, username, pw, code string) (*entity.User, bool, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	// ユーザー未検出時のダミーハッシュ。bcrypt比較が常に実行されることを保証する。
	hash := password.DummyHash
	if err == nil {
		hash = user.Password
	}
	ok := password.Verify(hash, pw)
	if err != nil || !ok {
		return nil, false, ErrInvalidCredentials
	}

	if !user.TwoFactorEnabled {
		return user, false, nil
	}

	if code == "" {
		return user, true, nil
	}

	tfa, err := u.twoFactor.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrTwoFactorNotSetUp) {
			// フラグが立っているのにシークレットが無い状態は到達不能のはずだが、
			// 到達した場合も認証失敗として扱う。
			return nil, false, ErrInvalidCredentials
		}
		return nil, false, err
	}
	if !totp.Verify(tfa.SecretKey, code) {
		return nil, false, ErrInvalidCredentials
	}
	return user, false, nil
}

// VerifyTOTP は既にパスワード検証済みのユーザーに対してワンタイムコードのみを
// 検証します。Redisチャレンジ経由の2段階ログインで使用します。
func (u *authUsecase) VerifyTOTP(ctx context.Context, userID uint, code string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	tfa, err := u.twoFactor.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrTwoFactorNotSetUp) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !totp.Verify(tfa.SecretKey, code) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
