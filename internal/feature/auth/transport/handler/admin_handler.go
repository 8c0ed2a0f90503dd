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
)

// AdminUsecase は管理者専用操作のユースケースを定義します。
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	DeleteUser(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username, newPassword string) error
	GetJobTitles(ctx context.Context) ([]string, error)
}

// AdminHandler は管理者専用のユーザー管理エンドポイントを処理します。
// ルーターでAdminRequiredミドルウェアの内側に配置してください。
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler はAdminHandlerの新しいインスタンスを生成します。
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers は全ユーザーを返します。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "list users failed"})
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// DeleteUser はユーザーと関連2FAレコードを削除します。
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.admin.DeleteUser(c.Request.Context(), username); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("delete user failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "delete failed"})
		return
	}
	slog.Info("user deleted", "username", username)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}

// ResetUserPassword はトークンを介さない管理者パスワード再設定です。
// AdminRequiredミドルウェアだけが到達経路であり、一般ユーザーには公開されません。
func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	username := c.Param("username")
	var req dto.AdminResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.admin.ResetPassword(c.Request.Context(), username, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("admin password reset failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "reset failed"})
		return
	}
	slog.Info("admin password reset", "username", username)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset"})
}

// ListJobTitles は職位名ディクショナリを返します。
func (h *AdminHandler) ListJobTitles(c *gin.Context) {
	titles, err := h.admin.GetJobTitles(c.Request.Context())
	if err != nil {
		slog.Error("list job titles failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "list job titles failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_titles": titles})
}
