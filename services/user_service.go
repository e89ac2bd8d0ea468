package services

import (
	"errors"

	"github.com/alikalatearabi/salemina-main-app-backend/config"
	"github.com/alikalatearabi/salemina-main-app-backend/models"
	"github.com/alikalatearabi/salemina-main-app-backend/utils"

	"gorm.io/gorm"
)

func GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := config.DB.Order("id ASC").Find(&users).Error
	return users, err
}

func GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type UserUpdateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`

	// Optional daily-intake overrides; nil leaves the stored value alone.
	RecommendedDailyCalories        *float64 `json:"recommendedDailyCalories"`
	RecommendedDailyFat             *float64 `json:"recommendedDailyFat"`
	RecommendedDailySugar           *float64 `json:"recommendedDailySugar"`
	RecommendedDailySalt            *float64 `json:"recommendedDailySalt"`
	RecommendedDailyTransFattyAcids *float64 `json:"recommendedDailyTransFattyAcids"`
}

func UpdateUser(userID uint, in UserUpdateInput) (*models.User, error) {
	user, err := GetUser(userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.RecommendedDailyCalories != nil {
		user.RecommendedDailyCalories = in.RecommendedDailyCalories
	}
	if in.RecommendedDailyFat != nil {
		user.RecommendedDailyFat = in.RecommendedDailyFat
	}
	if in.RecommendedDailySugar != nil {
		user.RecommendedDailySugar = in.RecommendedDailySugar
	}
	if in.RecommendedDailySalt != nil {
		user.RecommendedDailySalt = in.RecommendedDailySalt
	}
	if in.RecommendedDailyTransFattyAcids != nil {
		user.RecommendedDailyTransFattyAcids = in.RecommendedDailyTransFattyAcids
	}

	return user, config.DB.Save(user).Error
}

func DeleteUser(userID uint) error {
	user, err := GetUser(userID)
	if err != nil {
		return err
	}
	return config.DB.Delete(user).Error
}

// AuthenticateUser checks phone + password and mints a token.
func AuthenticateUser(phone, password string) (string, error) {
	user, err := FindUserByPhone(phone)
	if err != nil {
		return "", err
	}
	if user.Password == "" || !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}
	return utils.GenerateJWT(user.ID, user.Phone)
}
