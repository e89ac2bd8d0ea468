package services

import (
	"context"
	"errors"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/models"

	"gorm.io/gorm"
)

// GormConsumedEntryStore is the production ConsumedEntryStore.
type GormConsumedEntryStore struct {
	db *gorm.DB
}

func NewGormConsumedEntryStore(db *gorm.DB) *GormConsumedEntryStore {
	return &GormConsumedEntryStore{db: db}
}

func (s *GormConsumedEntryStore) FindConsumedInRange(ctx context.Context, userID uint, start, end time.Time) ([]models.ConsumedProduct, error) {
	var entries []models.ConsumedProduct
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND consumed_at BETWEEN ? AND ?", userID, start, end).
		Order("consumed_at ASC").
		Find(&entries).Error
	return entries, err
}

func (s *GormConsumedEntryStore) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
