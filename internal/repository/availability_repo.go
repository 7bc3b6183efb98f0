package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KaanYilmazz/117RosterMaker/internal/model"
)

// AvailabilityRepository 空闲时间数据访问接口
type AvailabilityRepository interface {
	// Upsert 按 (employee_id, day) 写入，已存在则整体覆盖
	Upsert(ctx context.Context, availability *model.Availability) error
	GetByEmployeeAndDay(ctx context.Context, employeeID, day string) (*model.Availability, error)
	List(ctx context.Context) ([]model.Availability, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.Availability, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type availabilityRepo struct {
	db *gorm.DB
}

// NewAvailabilityRepo 创建 AvailabilityRepository 实现
func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Upsert(ctx context.Context, availability *model.Availability) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_time", "end_time", "is_available", "updated_at", "updated_by",
			}),
		}).
		Create(availability).Error
}

func (r *availabilityRepo) GetByEmployeeAndDay(ctx context.Context, employeeID, day string) (*model.Availability, error) {
	var availability model.Availability
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND day = ?", employeeID, day).
		First(&availability).Error
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepo) List(ctx context.Context) ([]model.Availability, error) {
	var availabilities []model.Availability
	err := r.db.WithContext(ctx).
		Find(&availabilities).Error
	return availabilities, err
}

func (r *availabilityRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.Availability, error) {
	var availabilities []model.Availability
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Find(&availabilities).Error
	return availabilities, err
}

func (r *availabilityRepo) DeleteByEmployee(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&model.Availability{}).Error
}

