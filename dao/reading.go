package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// ReadingDAO handles reading-history database operations
type ReadingDAO struct {
	db *gorm.DB
}

func NewReadingDAO(db *gorm.DB) *ReadingDAO {
	return &ReadingDAO{db: db}
}

// CreateReading appends a reading to history
func (d *ReadingDAO) CreateReading(reading *models.Reading) error {
	return d.db.Create(reading).Error
}

// GetReadingByID retrieves one reading
func (d *ReadingDAO) GetReadingByID(id uint64) (*models.Reading, error) {
	var reading models.Reading
	if err := d.db.First(&reading, id).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

// GetReadingsByUserKey retrieves a user's readings, most recent first
func (d *ReadingDAO) GetReadingsByUserKey(userKey string, limit int) ([]models.Reading, error) {
	var readings []models.Reading
	q := d.db.Where("user_key = ?", userKey).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

// ApplyCardImage stores a generated image on the card whose correlation id
// still matches requestID. Returns false when no card matches, which means
// the result is stale and must be dropped. The row lock serializes the
// read-modify-write of the cards column: completions for different cards of
// the same reading land concurrently, and an unlocked read would let the
// later commit overwrite the earlier card's image.
func (d *ReadingDAO) ApplyCardImage(readingID uint64, requestID, image string) (bool, error) {
	applied := false
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var reading models.Reading
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reading, readingID).Error; err != nil {
			return err
		}
		for i := range reading.Cards {
			if reading.Cards[i].RequestID == requestID {
				reading.Cards[i].Generated = image
				applied = true
				break
			}
		}
		if !applied {
			return nil
		}
		return tx.Model(&models.Reading{}).Where("id = ?", readingID).
			Update("cards", reading.Cards).Error
	})
	return applied, err
}
