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
	jwtmw "waste_backend/internal/platform/jwt"
)

// ProfileUsecase はログイン中ユーザー自身の操作のユースケースを定義します。
type ProfileUsecase interface {
	GetUser(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, update usecase.ProfileUpdate) (*entity.User, error)
	SetupTwoFactor(ctx context.Context, userID uint) (uri, secret string, err error)
	VerifyTwoFactorSetup(ctx context.Context, userID uint, code string) error
	DisableTwoFactor(ctx context.Context, userID uint) error
}

// ProfileHandler はログイン中ユーザー自身のプロフィールと2FA設定を処理します。
type ProfileHandler struct {
	profile ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(profile ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// currentUserID はAuthRequiredミドルウェアが格納したユーザーIDを取り出します。
// 取得できない場合は401を返してfalseを返します。
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing bearer token"})
		return 0, false
	}
	return id, true
}

// Me はログイン中ユーザーのプロフィールを返します。
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.profile.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe はプロフィールの部分更新を処理します。
// - メール衝突時は409を返却
// - 不正な部署は400を返却
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.profile.UpdateProfile(c.Request.Context(), userID, usecase.ProfileUpdate{
		Email:      req.Email,
		Department: req.Department,
		JobTitle:   req.JobTitle,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrInvalidDepartment):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("profile update failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SetupTwoFactor は2FA登録データを返します。既存シークレットがあれば
// 再利用されるため、何度呼んでも同じシークレットが返ります。
func (h *ProfileHandler) SetupTwoFactor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	uri, secret, err := h.profile.SetupTwoFactor(c.Request.Context(), userID)
	if err != nil {
		slog.Error("2fa setup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "2fa setup failed"})
		return
	}
	c.JSON(http.StatusOK, dto.SetupTwoFactorResponse{ProvisioningURI: uri, Secret: secret})
}

// VerifyTwoFactor は登録確認コードを検証し、2FAを有効化します。
func (h *ProfileHandler) VerifyTwoFactor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.VerifyTwoFactorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.profile.VerifyTwoFactorSetup(c.Request.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTwoFactorNotSetUp):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid verification code"})
		default:
			slog.Error("2fa verify failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "2fa verify failed"})
		}
		return
	}
	slog.Info("2fa enabled", "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "two-factor authentication enabled"})
}

// DisableTwoFactor は2FAレコードの削除とフラグのクリアを行います。
func (h *ProfileHandler) DisableTwoFactor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.profile.DisableTwoFactor(c.Request.Context(), userID); err != nil {
		slog.Error("2fa disable failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "2fa disable failed"})
		return
	}
	slog.Info("2fa disabled", "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "two-factor authentication disabled"})
}
