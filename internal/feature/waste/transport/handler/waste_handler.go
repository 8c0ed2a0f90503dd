// Package handler はwasteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	authentity "waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/waste/domain/entity"
	"waste_backend/internal/feature/waste/transport/http/dto"
	"waste_backend/internal/feature/waste/usecase"
	jwtmw "waste_backend/internal/platform/jwt"
)

// WasteUsecase は廃棄物記録操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type WasteUsecase interface {
	Record(ctx context.Context, userID uint, department, wasteType string, amount float64, ts time.Time) (*entity.WasteEntry, error)
	List(ctx context.Context, days int, department string) ([]entity.WasteEntry, error)
	DailyTotals(ctx context.Context, days int) ([]entity.DailyTotal, error)
}

// UserGetter は記録者の所属部署解決に使用します。
type UserGetter interface {
	GetUser(ctx context.Context, userID uint) (*authentity.User, error)
}

// WasteHandler は廃棄物記録のHTTPリクエストを処理します。
type WasteHandler struct {
	waste WasteUsecase
	users UserGetter
}

// NewWasteHandler はWasteHandlerの新しいインスタンスを生成します。
func NewWasteHandler(waste WasteUsecase, users UserGetter) *WasteHandler {
	return &WasteHandler{waste: waste, users: users}
}

// Record は廃棄物記録1件の登録を処理します。
// Departmentが省略された場合は記録者の所属部署を使用します。
func (h *WasteHandler) Record(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	var req dto.RecordWasteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	department := req.Department
	if department == "" {
		user, err := h.users.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		department = user.Department
	}

	var ts time.Time
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	entry, err := h.waste.Record(c.Request.Context(), userID, department, req.WasteType, req.Amount, ts)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidWasteType), errors.Is(err, usecase.ErrNegativeAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("waste record failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "record failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.NewWasteEntryResponse(entry))
}

// List は直近の記録を返します。クエリ: days（デフォルト30）, department。
func (h *WasteHandler) List(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	entries, err := h.waste.List(c.Request.Context(), days, c.Query("department"))
	if err != nil {
		slog.Error("waste list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]dto.WasteEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.NewWasteEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Summary は種別ごとの日次合計を返します。クエリ: days（デフォルト30）。
func (h *WasteHandler) Summary(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	totals, err := h.waste.DailyTotals(c.Request.Context(), days)
	if err != nil {
		slog.Error("waste summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	out := make([]dto.DailyTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.NewDailyTotalResponse(t))
	}
	c.JSON(http.StatusOK, out)
}
