package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
	"github.com/alikalatearabi/salemina-main-app-backend/utils"

	"gorm.io/gorm"
)

// ConsumptionService owns the write path for consumed products. Serving
// sizes are normalized to grams/ml here, once; the aggregation engine reads
// them back as-is.
type ConsumptionService struct {
	db *gorm.DB
}

func NewConsumptionService(db *gorm.DB) *ConsumptionService {
	return &ConsumptionService{db: db}
}

type AddConsumedInput struct {
	UserID      uint
	ProductID   uint
	Quantity    float64
	ServingSize *float64
	Unit        string
	MealType    string
	ConsumedAt  *time.Time
}

func (s *ConsumptionService) AddConsumed(ctx context.Context, in AddConsumedInput) (*models.ConsumedProduct, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	mealType := strings.ToUpper(in.MealType)
	if !models.ValidMealType(mealType) {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, in.MealType)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var servingSize *float64
	if in.ServingSize != nil {
		v := utils.NormalizeServing(*in.ServingSize, in.Unit)
		servingSize = &v
	}

	consumedAt := time.Now()
	if in.ConsumedAt != nil {
		consumedAt = *in.ConsumedAt
	}

	entry := &models.ConsumedProduct{
		UserID:      in.UserID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		ServingSize: servingSize,
		Unit:        in.Unit,
		MealType:    mealType,
		ConsumedAt:  consumedAt,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	entry.Product = product

	s.checkDailyIntake(ctx, &user, consumedAt)

	return entry, nil
}

// checkDailyIntake emits an alert when the day's calories pass the user's
// recommended intake. Alerting is best-effort; a failure never fails the write.
func (s *ConsumptionService) checkDailyIntake(ctx context.Context, user *models.User, day time.Time) {
	var entries []models.ConsumedProduct
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND consumed_at BETWEEN ? AND ?", user.ID, dayStart(day), dayEnd(day)).
		Find(&entries).Error; err != nil {
		return
	}

	totals := ReduceEntries(entries)
	limits := ResolveRecommendedIntake(user)
	if limits.Calories > 0 && totals.Calories > limits.Calories {
		EmitIntakeAlert(user, "calories", totals.Calories, limits.Calories)
	}
}

func (s *ConsumptionService) ListConsumed(ctx context.Context, userID uint, start, end *time.Time, mealType string) ([]models.ConsumedProduct, error) {
	q := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("consumed_at DESC")

	if start != nil {
		q = q.Where("consumed_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("consumed_at <= ?", *end)
	}
	if mealType != "" {
		q = q.Where("meal_type = ?", strings.ToUpper(mealType))
	}

	var entries []models.ConsumedProduct
	err := q.Find(&entries).Error
	return entries, err
}

func (s *ConsumptionService) DeleteConsumed(ctx context.Context, id uint) error {
	var entry models.ConsumedProduct
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConsumedNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&entry).Error
}
