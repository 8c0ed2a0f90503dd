// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignupReq は/signupエンドポイントのリクエストボディを表します。
// 必須フィールド、メール形式、パスワード長のバリデーションを含みます。
type SignupReq struct {
	Username   string `json:"username" binding:"required,max=80"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department" binding:"required"`
	JobTitle   string `json:"job_title" binding:"required,max=100"`
}

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// Codeは2FA有効ユーザーのワンショットログイン用で省略可能です。
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Code     string `json:"code" binding:"omitempty,len=6"`
}

// TwoFactorLoginReq は/login/2faエンドポイントのリクエストボディを表します。
type TwoFactorLoginReq struct {
	Challenge string `json:"challenge" binding:"required"`
	Code      string `json:"code" binding:"required,len=6"`
}

// VerifyTwoFactorReq は/2fa/verifyエンドポイントのリクエストボディを表します。
type VerifyTwoFactorReq struct {
	Code string `json:"code" binding:"required,len=6"`
}

// UpdateProfileReq は/meエンドポイントの部分更新ボディを表します。
// nilのフィールドは変更されません。
type UpdateProfileReq struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	Department *string `json:"department" binding:"omitempty"`
	JobTitle   *string `json:"job_title" binding:"omitempty,max=100"`
}

// ResetRequestReq は/password-reset/requestエンドポイントのリクエストボディを表します。
type ResetRequestReq struct {
	Username string `json:"username" binding:"required"`
}

// ResetConfirmReq は/password-reset/confirmエンドポイントのリクエストボディを表します。
type ResetConfirmReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AdminResetPasswordReq は管理者によるパスワード再設定のリクエストボディを表します。
type AdminResetPasswordReq struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
