package services

import (
	"fmt"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
	"github.com/alikalatearabi/salemina-main-app-backend/utils"

	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub) {
	_alert = alertDeps{db: db, rt: rt}
}

// EmitIntakeAlert records that a daily limit was passed and fans the alert
// out over websocket and email. Safe to call anywhere.
func EmitIntakeAlert(user *models.User, metric string, consumed, limit float64) {
	if _alert.db == nil {
		return // not initialized
	}
	msg := fmt.Sprintf("Daily %s intake passed the recommended limit: %.0f of %.0f", metric, consumed, limit)
	a := &models.Alert{
		UserID:    user.ID,
		Type:      "warning",
		Metric:    metric,
		Message:   msg,
		CreatedAt: time.Now(),
	}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.Broadcast(user.ID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if user.Email != "" {
		_ = utils.SendIntakeAlertEmail(user.Email, msg)
	}
}

func ListAlerts(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 20
	}
	var alerts []models.Alert
	err := _alert.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
