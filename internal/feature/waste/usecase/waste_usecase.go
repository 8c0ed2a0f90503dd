// Package usecase は廃棄物記録のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"time"

	"waste_backend/internal/feature/waste/domain/entity"
)

const (
	// DefaultHistoryDays は日次集計のデフォルト対象期間です。
	DefaultHistoryDays = 30
	// MaxHistoryDays は日次集計の最大対象期間です。
	MaxHistoryDays = 365
)

var (
	// ErrInvalidWasteType is returned when the waste type is not tracked.
	ErrInvalidWasteType = errors.New("unknown waste type")

	// ErrNegativeAmount is returned when a recorded amount is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// WasteRepository は廃棄物記録の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WasteRepository interface {
	// Create は新しい記録を永続化します。
	Create(ctx context.Context, e *entity.WasteEntry) error

	// Find は期間と部署（空文字で全部署）で記録を検索します。
	Find(ctx context.Context, from, to time.Time, department string) ([]entity.WasteEntry, error)

	// DailyTotals は期間内の廃棄物種別ごとの日次合計を返します。
	DailyTotals(ctx context.Context, from, to time.Time) ([]entity.DailyTotal, error)
}

// wasteUsecase は廃棄物記録のユースケースを実装します。
type wasteUsecase struct {
	waste WasteRepository
}

// NewWasteUsecase はwasteUsecaseの新しいインスタンスを生成します。
func NewWasteUsecase(waste WasteRepository) *wasteUsecase {
	return &wasteUsecase{waste: waste}
}

// Record は1件の廃棄物記録を検証して保存します。
// タイムスタンプがゼロ値の場合は現在時刻を使用します。
func (wu *wasteUsecase) Record(ctx context.Context, userID uint, department, wasteType string, amount float64, ts time.Time) (*entity.WasteEntry, error) {
	if !entity.ValidWasteType(wasteType) {
		return nil, ErrInvalidWasteType
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	e := &entity.WasteEntry{
		UserID:     userID,
		Department: department,
		WasteType:  wasteType,
		Amount:     amount,
		Timestamp:  ts,
	}
	if err := wu.waste.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List は直近days日分の記録を返します。departmentが空の場合は全部署が対象です。
func (wu *wasteUsecase) List(ctx context.Context, days int, department string) ([]entity.WasteEntry, error) {
	days = clampDays(days)
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return wu.waste.Find(ctx, from, to, department)
}

// DailyTotals は直近days日分の種別ごとの日次合計を返します。
func (wu *wasteUsecase) DailyTotals(ctx context.Context, days int) ([]entity.DailyTotal, error) {
	days = clampDays(days)
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return wu.waste.DailyTotals(ctx, from, to)
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		return MaxHistoryDays
	}
	return days
}
