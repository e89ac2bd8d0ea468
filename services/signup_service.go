package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/config"
	"github.com/alikalatearabi/salemina-main-app-backend/models"
	"github.com/alikalatearabi/salemina-main-app-backend/utils"

	"gorm.io/gorm"
)

// Signup is a wizard: each step writes its fields onto the user record and
// the next step is derived from which fields are still unset.

const (
	StepBasicInfo          = "basic-info"
	StepPhysicalAttributes = "physical-attributes"
	StepHealthInfo         = "health-info"
	StepDietaryPreferences = "dietary-preferences"
	StepAllergies          = "allergies"
	StepWaterIntake        = "water-intake"
	StepComplete           = "complete"
)

type SignupStatus struct {
	UserID         uint     `json:"userId"`
	SignupComplete bool     `json:"signupComplete"`
	CompletedSteps []string `json:"completedSteps"`
	NextStep       string   `json:"nextStep,omitempty"`
}

// StartSignup looks a phone number up and creates a bare user when it is
// unknown. Returns the user and whether it already existed.
func StartSignup(phone string) (*models.User, bool, error) {
	var user models.User
	err := config.DB.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = models.User{Phone: phone, SignupComplete: false}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, false, nil
}

func FindUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func SaveBasicInfo(userID uint, name, gender string, birthDate time.Time) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Gender = gender
	user.BirthDate = &birthDate
	return user, config.DB.Save(user).Error
}

func SavePhysicalAttributes(userID uint, height, weight, idealWeight float64) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	user.Height = &height
	user.Weight = &weight
	user.IdealWeight = &idealWeight
	return user, config.DB.Save(user).Error
}

type IllnessSelection struct {
	ID    uint   `json:"id"`
	Level string `json:"level"`
}

func SaveHealthInfo(userID uint, activityLevel string, illnesses []IllnessSelection) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	user.ActivityLevel = activityLevel
	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}

	if len(illnesses) == 0 {
		return user, nil
	}

	ids := make([]uint, 0, len(illnesses))
	for _, sel := range illnesses {
		ids = append(ids, sel.ID)
	}
	var count int64
	if err := config.DB.Model(&models.Illness{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, fmt.Errorf("one or more illness IDs are invalid")
	}

	if err := config.DB.Where("user_id = ?", userID).Delete(&models.UserIllness{}).Error; err != nil {
		return nil, err
	}
	for _, sel := range illnesses {
		level := sel.Level
		if level == "" {
			level = "MEDIUM"
		}
		ui := models.UserIllness{UserID: userID, IllnessID: sel.ID, Level: level}
		if err := config.DB.Create(&ui).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

func SaveDietaryPreferences(userID uint, appetiteMode string, preferenceIDs []uint) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	user.AppetiteMode = appetiteMode
	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}

	if len(preferenceIDs) == 0 {
		return user, nil
	}
	if err := config.DB.Where("user_id = ?", userID).Delete(&models.UserFoodPreference{}).Error; err != nil {
		return nil, err
	}
	for _, id := range preferenceIDs {
		up := models.UserFoodPreference{UserID: userID, FoodPreferenceID: id}
		if err := config.DB.Create(&up).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

func SaveAllergies(userID uint, allergyIDs []uint) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	if len(allergyIDs) == 0 {
		return user, nil
	}
	if err := config.DB.Where("user_id = ?", userID).Delete(&models.UserAllergy{}).Error; err != nil {
		return nil, err
	}
	for _, id := range allergyIDs {
		ua := models.UserAllergy{UserID: userID, AllergyID: id}
		if err := config.DB.Create(&ua).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

func SaveWaterIntake(userID uint, waterIntake float64) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	user.WaterIntake = &waterIntake
	return user, config.DB.Save(user).Error
}

func CompleteSignup(userID uint, password string) (*models.User, error) {
	user, err := findSignupUser(userID)
	if err != nil {
		return nil, err
	}
	if password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	user.SignupComplete = true
	return user, config.DB.Save(user).Error
}

func SignupProgress(userID uint) (*SignupStatus, error) {
	var user models.User
	err := config.DB.
		Preload("Illnesses").
		Preload("Allergies").
		Preload("FoodPreferences").
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &SignupStatus{
		UserID:         user.ID,
		SignupComplete: user.SignupComplete,
		CompletedSteps: CompletedSteps(&user),
		NextStep:       NextSignupStep(&user),
	}, nil
}

// NextSignupStep mirrors the wizard order; allergies are optional and never
// block progress.
func NextSignupStep(user *models.User) string {
	switch {
	case user.Name == "" || user.Gender == "" || user.BirthDate == nil:
		return StepBasicInfo
	case user.Height == nil || user.Weight == nil || user.IdealWeight == nil:
		return StepPhysicalAttributes
	case user.ActivityLevel == "":
		return StepHealthInfo
	case user.AppetiteMode == "":
		return StepDietaryPreferences
	case user.WaterIntake == nil:
		return StepWaterIntake
	case !user.SignupComplete:
		return StepComplete
	}
	return ""
}

func CompletedSteps(user *models.User) []string {
	steps := []string{"phone"}
	if user.Name != "" && user.Gender != "" && user.BirthDate != nil {
		steps = append(steps, StepBasicInfo)
	}
	if user.Height != nil && user.Weight != nil && user.IdealWeight != nil {
		steps = append(steps, StepPhysicalAttributes)
	}
	if user.ActivityLevel != "" {
		steps = append(steps, StepHealthInfo)
	}
	if user.AppetiteMode != "" {
		steps = append(steps, StepDietaryPreferences)
	}
	if len(user.Allergies) > 0 {
		steps = append(steps, StepAllergies)
	}
	if user.WaterIntake != nil {
		steps = append(steps, StepWaterIntake)
	}
	if user.SignupComplete {
		steps = append(steps, StepComplete)
	}
	return steps
}

func findSignupUser(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ---------- reference data ----------

func ListIllnesses(withLevels bool) ([]models.Illness, error) {
	var illnesses []models.Illness
	q := config.DB.Order("name ASC")
	if withLevels {
		q = q.Preload("Levels")
	}
	err := q.Find(&illnesses).Error
	return illnesses, err
}

func ListAllergies() ([]models.Allergy, error) {
	var allergies []models.Allergy
	err := config.DB.Order("name ASC").Find(&allergies).Error
	return allergies, err
}

func ListFoodPreferences() ([]models.FoodPreference, error) {
	var prefs []models.FoodPreference
	err := config.DB.Order("name ASC").Find(&prefs).Error
	return prefs, err
}

func ActivityLevels() []string {
	return []string{"SEDENTARY", "LIGHT", "MODERATE", "ACTIVE", "VERY_ACTIVE"}
}

func AppetiteModes() []string {
	return []string{"LOW", "NORMAL", "HIGH"}
}
