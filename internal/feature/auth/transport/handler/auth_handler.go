// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/transport/http/dto"
	"waste_backend/internal/feature/auth/usecase"
	"waste_backend/internal/platform/challenge"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録します。
	Signup(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error)
	// Authenticate はユーザー名・パスワード（・ワンタイムコード）で認証します。
	Authenticate(ctx context.Context, username, password, code string) (*entity.User, bool, error)
	// VerifyTOTP はパスワード検証済みユーザーのワンタイムコードのみを検証します。
	VerifyTOTP(ctx context.Context, userID uint, code string) (*entity.User, error)
	// RequestPasswordReset はリセットトークンを発行します。
	RequestPasswordReset(ctx context.Context, username string) (string, error)
	// ConfirmPasswordReset はトークンを消費して新パスワードを設定します。
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// ChallengeStore は2段階ログインの保留状態ストアを定義します。
type ChallengeStore interface {
	Create(ctx context.Context, userID uint, username string) (string, error)
	Consume(ctx context.Context, token string) (*challenge.PendingLogin, error)
}

// TokenGenerator はセッショントークン生成のインターフェースを定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, username string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// challengesはRedis未接続時nilで、その場合2段階ログインは
// ユーザー名・パスワード・コードのワンショット送信のみになります。
type AuthHandler struct {
	auth       AuthUsecase
	challenges ChallengeStore
	tokens     TokenGenerator
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAuthHandler(auth AuthUsecase, challenges ChallengeStore, tokens TokenGenerator) *AuthHandler {
	return &AuthHandler{auth: auth, challenges: challenges, tokens: tokens}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名・メール重複時は409を返却
// - 成功時は201でユーザーを返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.Department, req.JobTitle)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateUsername), errors.Is(err, usecase.ErrDuplicateEmail):
			slog.Warn("signup conflict", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrInvalidDepartment):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("signup failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "signup failed"})
		}
		return
	}
	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時は、どの資格情報が誤っていたかを区別せず401を返却
// - 2FA有効かつコード未提供時は challenge トークンを発行して200を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	user, twoFactorRequired, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password, req.Code)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid username or password"})
		return
	}

	if twoFactorRequired {
		resp := dto.LoginResponse{TwoFactorRequired: true}
		if h.challenges != nil {
			token, err := h.challenges.Create(c.Request.Context(), user.ID, user.Username)
			if err != nil {
				slog.Error("failed to create login challenge", "error", err, "username", req.Username)
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "login failed"})
				return
			}
			resp.Challenge = token
		}
		slog.Info("login awaiting second factor", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, resp)
		return
	}

	h.issueToken(c, user)
}

// LoginTwoFactor は2段階ログインの2ステップ目を処理します。
// challengeトークンは一度しか使えず、期限切れ・未知・消費済みは区別されません。
func (h *AuthHandler) LoginTwoFactor(c *gin.Context) {
	if h.challenges == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "two-step login unavailable"})
		return
	}
	var req dto.TwoFactorLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	pending, err := h.challenges.Consume(c.Request.Context(), req.Challenge)
	if err != nil {
		slog.Warn("2fa challenge rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired challenge"})
		return
	}
	user, err := h.auth.VerifyTOTP(c.Request.Context(), pending.UserID, req.Code)
	if err != nil {
		slog.Warn("2fa code rejected", "username", pending.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid username or password"})
		return
	}

	h.issueToken(c, user)
}

// RequestPasswordReset はリセットトークンの発行を受け付けます。
// ユーザーの存在有無に関わらず同一のレスポンスを返します。
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.ResetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.RequestPasswordReset(c.Request.Context(), req.Username)
	if err != nil {
		slog.Error("password reset request failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "reset request failed"})
		return
	}
	// トークンはメール等の帯域外で配送される想定。レスポンスには含めない。
	_ = token
	slog.Info("password reset requested", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "if the account exists, a reset token has been issued"})
}

// ConfirmPasswordReset はリセットトークンを消費して新パスワードを設定します。
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ResetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		slog.Warn("password reset confirm rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired reset token"})
		return
	}
	slog.Info("password reset completed", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

// issueToken は認証完了ユーザーへJWTを発行します。
func (h *AuthHandler) issueToken(c *gin.Context, user *entity.User) {
	token, err := h.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "username", user.Username)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "login failed"})
		return
	}
	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
