package weatherlog

import (
	"context"
	"time"

	"github.com/brewplanhq/brewplan-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists daily weather rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to weather log operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes one row keyed by record date; a conflict overwrites every
// non-key column with the new observation.
func (r *Repository) Upsert(ctx context.Context, row *models.DailyWeather) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "record_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"avg_temp_c", "day_of_week", "month", "weather_code", "updated_at",
			}),
		}).
		Create(row).Error
}

// FindByDate loads the row for one calendar date.
func (r *Repository) FindByDate(ctx context.Context, date time.Time) (*models.DailyWeather, error) {
	var row models.DailyWeather
	if err := r.db.WithContext(ctx).
		Where("record_date = ?", date).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
