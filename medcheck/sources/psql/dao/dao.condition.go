package dao

import (
	"context"

	"medcheck/medcheck/sources/psql/models"

	"gorm.io/gorm"
)

type ConditionDAO struct {
	DB *gorm.DB
}

func NewConditionDAO(db *gorm.DB) *ConditionDAO {
	return &ConditionDAO{DB: db}
}

func (dao *ConditionDAO) SaveCondition(ctx context.Context, condition *models.Condition) error {
	return dao.DB.WithContext(ctx).Create(condition).Error
}

func (dao *ConditionDAO) ListConditions(ctx context.Context, limit int) ([]models.Condition, error) {
	var conditions []models.Condition
	q := dao.DB.WithContext(ctx).Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&conditions).Error; err != nil {
		return nil, err
	}
	return conditions, nil
}

func (dao *ConditionDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.Condition{}).Count(&count).Error
	return count, err
}
