package dao

import (
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// GuestTrialDAO handles guest trial counters
type GuestTrialDAO struct {
	db *gorm.DB
}

func NewGuestTrialDAO(db *gorm.DB) *GuestTrialDAO {
	return &GuestTrialDAO{db: db}
}

// GetTrial retrieves the trial record for a device, zero-valued if absent
func (d *GuestTrialDAO) GetTrial(deviceKey string) (*models.GuestTrial, error) {
	var trial models.GuestTrial
	err := d.db.Where("device_key = ?", deviceKey).First(&trial).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.GuestTrial{DeviceKey: deviceKey}, nil
		}
		return nil, err
	}
	return &trial, nil
}

// IncrementTrial records one trial use for a device
func (d *GuestTrialDAO) IncrementTrial(deviceKey string) error {
	trial := &models.GuestTrial{DeviceKey: deviceKey}
	if err := d.db.FirstOrCreate(trial, models.GuestTrial{DeviceKey: deviceKey}).Error; err != nil {
		return err
	}
	return d.db.Model(&models.GuestTrial{}).
		Where("device_key = ?", deviceKey).
		Update("used", gorm.Expr("used + 1")).Error
}
