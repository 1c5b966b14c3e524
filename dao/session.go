package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// SessionDAO handles session snapshot storage
type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{db: db}
}

// GetSnapshot retrieves the stored snapshot for a user
func (d *SessionDAO) GetSnapshot(userKey string) (*models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	if err := d.db.Where("user_key = ?", userKey).First(&snap).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveSnapshot overwrites the user's snapshot wholesale
func (d *SessionDAO) SaveSnapshot(snap *models.SessionSnapshot) error {
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_key"}},
		UpdateAll: true,
	}).Create(snap).Error
}
