package dao

import (
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser inserts a new user aggregate
func (d *UserDAO) CreateUser(user *models.User) error {
	return d.db.Create(user).Error
}

// GetUserByKey retrieves a user by user key
func (d *UserDAO) GetUserByKey(userKey string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("user_key = ?", userKey).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUser persists the full aggregate
func (d *UserDAO) SaveUser(user *models.User) error {
	return d.db.Save(user).Error
}
