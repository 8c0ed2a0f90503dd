package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/usecase"
)

// jobTitlePostgres はJobTitleRepositoryインターフェースのPostgreSQL実装です。
type jobTitlePostgres struct {
	db *gorm.DB
}

var _ usecase.JobTitleRepository = (*jobTitlePostgres)(nil)

// NewJobTitleRepository はjobTitlePostgresの新しいインスタンスを生成します。
func NewJobTitleRepository(db *gorm.DB) *jobTitlePostgres {
	return &jobTitlePostgres{db: db}
}

// Ensure は未登録の職位名を追加します。既存の場合は何もしません。
// ON CONFLICT DO NOTHING により同時登録でも重複エラーになりません。
func (r *jobTitlePostgres) Ensure(ctx context.Context, title string) error {
	jt := entity.JobTitle{Title: title}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}},
		DoNothing: true,
	}).Create(&jt).Error
}

// List は登録済みの職位名をタイトル昇順で返します。
func (r *jobTitlePostgres) List(ctx context.Context) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&entity.JobTitle{}).
		Order("title").Pluck("title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}
