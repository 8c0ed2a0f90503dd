// Package dto はwasteフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"waste_backend/internal/feature/waste/domain/entity"
)

// RecordWasteReq は/wasteエンドポイントのリクエストボディを表します。
// Departmentを省略すると記録者の所属部署が使用されます。
// Timestampを省略すると現在時刻が使用されます。
type RecordWasteReq struct {
	WasteType  string     `json:"waste_type" binding:"required"`
	Amount     float64    `json:"amount" binding:"required,gte=0"`
	Department string     `json:"department" binding:"omitempty"`
	Timestamp  *time.Time `json:"timestamp" binding:"omitempty"`
}

// WasteEntryResponse は記録1件の公開ビューです。
type WasteEntryResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Department string    `json:"department"`
	WasteType  string    `json:"waste_type"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewWasteEntryResponse maps a domain entry to its public view.
func NewWasteEntryResponse(e *entity.WasteEntry) WasteEntryResponse {
	return WasteEntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Department: e.Department,
		WasteType:  e.WasteType,
		Amount:     e.Amount,
		Timestamp:  e.Timestamp,
	}
}

// DailyTotalResponse は1日×1種別の集計値です。
type DailyTotalResponse struct {
	Date      string  `json:"date"`
	WasteType string  `json:"waste_type"`
	Total     float64 `json:"total"`
}

// NewDailyTotalResponse maps a daily total to its public view.
func NewDailyTotalResponse(t entity.DailyTotal) DailyTotalResponse {
	return DailyTotalResponse{
		Date:      t.Date.UTC().Format("2006-01-02"),
		WasteType: t.WasteType,
		Total:     t.Total,
	}
}
