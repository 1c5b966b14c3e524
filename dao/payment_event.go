package dao

import (
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// PaymentEventDAO handles payment event storage
type PaymentEventDAO struct {
	db *gorm.DB
}

func NewPaymentEventDAO(db *gorm.DB) *PaymentEventDAO {
	return &PaymentEventDAO{db: db}
}

// GetPaymentEvent retrieves an event by provider payment identifier
func (d *PaymentEventDAO) GetPaymentEvent(id string) (*models.PaymentEvent, error) {
	var event models.PaymentEvent
	if err := d.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// SavePaymentEvent inserts a new event. The primary key rejects replays.
func (d *PaymentEventDAO) SavePaymentEvent(event *models.PaymentEvent) error {
	return d.db.Create(event).Error
}
