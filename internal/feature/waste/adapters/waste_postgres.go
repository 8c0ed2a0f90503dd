// Package adapters はwasteフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"waste_backend/internal/feature/waste/domain/entity"
	"waste_backend/internal/feature/waste/usecase"
)

// wastePostgres はWasteRepositoryインターフェースのPostgreSQL実装です。
type wastePostgres struct {
	db *gorm.DB
}

var _ usecase.WasteRepository = (*wastePostgres)(nil)

// NewWasteRepository はwastePostgresの新しいインスタンスを生成します。
func NewWasteRepository(db *gorm.DB) *wastePostgres {
	return &wastePostgres{db: db}
}

// Create は記録をデータベースに追加します。
func (r *wastePostgres) Create(ctx context.Context, e *entity.WasteEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Find は期間内の記録を時刻昇順で返します。departmentが空の場合は全部署が対象です。
func (r *wastePostgres) Find(ctx context.Context, from, to time.Time, department string) ([]entity.WasteEntry, error) {
	q := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", from, to).
		Order("timestamp")
	if department != "" {
		q = q.Where("department = ?", department)
	}
	var rows []entity.WasteEntry
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyTotals は期間内の記録をUTC日付単位でバケットし、種別ごとの日次合計を
// 日付・種別の昇順で返します。日付の切り捨てはDBドライバ間で表現が揺れるため
// アプリケーション側で行います。
func (r *wastePostgres) DailyTotals(ctx context.Context, from, to time.Time) ([]entity.DailyTotal, error) {
	rows, err := r.Find(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	type bucket struct {
		date      time.Time
		wasteType string
	}
	sums := make(map[bucket]float64)
	for _, e := range rows {
		day := e.Timestamp.UTC().Truncate(24 * time.Hour)
		sums[bucket{date: day, wasteType: e.WasteType}] += e.Amount
	}

	totals := make([]entity.DailyTotal, 0, len(sums))
	for b, total := range sums {
		totals = append(totals, entity.DailyTotal{
			Date:      b.date,
			WasteType: b.wasteType,
			Total:     total,
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Date.Equal(totals[j].Date) {
			return totals[i].Date.Before(totals[j].Date)
		}
		return totals[i].WasteType < totals[j].WasteType
	})
	return totals, nil
}
