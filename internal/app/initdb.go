package app

import (
	"time"

	"go.uber.org/zap"
	"tinymart/internal/domain"
)

// checkCategories initializes the default category reference list
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{Name: "Fiction"},
		{Name: "Non-fiction"},
		{Name: "Graphic Novels"},
		{Name: "Stationery"},
	}

	for _, c := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("name = ?", c.Name).Count(&count)
		if count == 0 {
			c.CreatedAt = time.Now()
			c.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&c).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("name", c.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", c.Name))
			}
		}
	}
}

// checkTags initializes the default tag reference list
func (a *Application) checkTags() {
	defaultTags := []domain.Tag{
		{Name: "bestseller"},
		{Name: "new-arrival"},
		{Name: "clearance"},
		{Name: "limited"},
	}

	for _, t := range defaultTags {
		var count int64
		a.gormDB.Model(&domain.Tag{}).Where("name = ?", t.Name).Count(&count)
		if count == 0 {
			t.CreatedAt = time.Now()
			t.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&t).Error; err != nil {
				zap.L().Error("failed to create default tag", zap.String("name", t.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default tag", zap.String("name", t.Name))
			}
		}
	}
}
