// Package usecase は廃棄物量の線形トレンド予測を実装します。
package usecase

import (
	"context"
	"errors"
	"sort"

	"waste_backend/internal/feature/forecast/domain/entity"
	wasteentity "waste_backend/internal/feature/waste/domain/entity"
)

const (
	// DefaultHorizonDays は予測のデフォルト日数です。
	DefaultHorizonDays = 30
	// MaxHorizonDays は予測の最大日数です。
	MaxHorizonDays = 365
	// historyDays は回帰に使用する過去データの日数です。
	historyDays = 30
)

// ErrNoHistory is returned when there is no historical data to fit against.
var ErrNoHistory = errors.New("no historical waste data")

// HistoryProvider は予測の入力となる日次集計の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HistoryProvider interface {
	// DailyTotals は直近days日分の種別ごとの日次合計を返します。
	DailyTotals(ctx context.Context, days int) ([]wasteentity.DailyTotal, error)
}

// forecastUsecase は廃棄物種別ごとの最小二乗法による線形トレンド予測を
// 実装します。統計的な精度は対象外で、トレンドラインのみを提供します。
type forecastUsecase struct {
	history HistoryProvider
}

// NewForecastUsecase はforecastUsecaseの新しいインスタンスを生成します。
func NewForecastUsecase(history HistoryProvider) *forecastUsecase {
	return &forecastUsecase{history: history}
}

// Predict は廃棄物種別ごとに日次合計を日インデックスで単回帰し、
// horizonDays日分の将来値を外挿します。予測値は0未満にはなりません。
func (fu *forecastUsecase) Predict(ctx context.Context, horizonDays int) ([]entity.Prediction, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if horizonDays > MaxHorizonDays {
		horizonDays = MaxHorizonDays
	}

	totals, err := fu.history.DailyTotals(ctx, historyDays)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, ErrNoHistory
	}

	// 種別ごとに日付・値の系列へ分解（DailyTotalsは日付昇順）
	series := make(map[string][]wasteentity.DailyTotal)
	lastDate := totals[0].Date
	for _, t := range totals {
		series[t.WasteType] = append(series[t.WasteType], t)
		if t.Date.After(lastDate) {
			lastDate = t.Date
		}
	}

	var predictions []entity.Prediction
	for wasteType, points := range series {
		slope, intercept := fit(points)
		base := points[0].Date
		for d := 1; d <= horizonDays; d++ {
			date := lastDate.AddDate(0, 0, d)
			x := float64(int(date.Sub(base).Hours() / 24))
			amount := intercept + slope*x
			if amount < 0 {
				amount = 0
			}
			predictions = append(predictions, entity.Prediction{
				Date:      date,
				WasteType: wasteType,
				Amount:    amount,
			})
		}
	}

	sort.Slice(predictions, func(i, j int) bool {
		if !predictions[i].Date.Equal(predictions[j].Date) {
			return predictions[i].Date.Before(predictions[j].Date)
		}
		return predictions[i].WasteType < predictions[j].WasteType
	})
	return predictions, nil
}

// fit は通常の最小二乗法で傾きと切片を求めます。
// xは系列先頭からの経過日数です。点が1つしかない場合は水平線になります。
func fit(points []wasteentity.DailyTotal) (slope, intercept float64) {
	n := float64(len(points))
	base := points[0].Date

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := p.Date.Sub(base).Hours() / 24
		y := p.Total
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
