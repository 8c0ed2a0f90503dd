// Package handler はforecastフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"waste_backend/internal/feature/forecast/domain/entity"
	"waste_backend/internal/feature/forecast/usecase"
)

// ForecastUsecase は予測操作のユースケースを定義します。
type ForecastUsecase interface {
	Predict(ctx context.Context, horizonDays int) ([]entity.Prediction, error)
}

// ForecastHandler は廃棄物量予測のHTTPリクエストを処理します。
type ForecastHandler struct {
	forecast ForecastUsecase
}

// NewForecastHandler はForecastHandlerの新しいインスタンスを生成します。
func NewForecastHandler(forecast ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{forecast: forecast}
}

// predictionResponse は予測1点の公開ビューです。
type predictionResponse struct {
	Date      string  `json:"date"`
	WasteType string  `json:"waste_type"`
	Amount    float64 `json:"amount"`
}

// Forecast は種別ごとの線形トレンド予測を返します。クエリ: days（デフォルト30）。
func (h *ForecastHandler) Forecast(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	predictions, err := h.forecast.Predict(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, usecase.ErrNoHistory) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no historical data to forecast from"})
			return
		}
		slog.Error("forecast failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "forecast failed"})
		return
	}
	out := make([]predictionResponse, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, predictionResponse{
			Date:      p.Date.UTC().Format(time.DateOnly),
			WasteType: p.WasteType,
			Amount:    p.Amount,
		})
	}
	c.JSON(http.StatusOK, out)
}
