package logic

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// Memory-backed stores for exercising the business rules without a database.
// Reads hand out copies, like gorm does, so a mutation only lands when Save
// is called.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (s *memUserStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserKey]; ok {
		return errors.New("duplicate user key")
	}
	user.ID = uint64(len(s.users) + 1)
	s.users[user.UserKey] = *user
	return nil
}

func (s *memUserStore) GetUserByKey(userKey string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userKey]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (s *memUserStore) SaveUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserKey] = *user
	return nil
}

type memSessionStore struct {
	mu    sync.Mutex
	snaps map[string]models.SessionSnapshot
	saves int
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{snaps: make(map[string]models.SessionSnapshot)}
}

func (s *memSessionStore) GetSnapshot(userKey string) (*models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[userKey]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &snap, nil
}

func (s *memSessionStore) SaveSnapshot(snap *models.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.UserKey] = *snap
	s.saves++
	return nil
}

func (s *memSessionStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type memTrialStore struct {
	mu     sync.Mutex
	trials map[string]int
}

func newMemTrialStore() *memTrialStore {
	return &memTrialStore{trials: make(map[string]int)}
}

func (s *memTrialStore) GetTrial(deviceKey string) (*models.GuestTrial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.GuestTrial{DeviceKey: deviceKey, Used: s.trials[deviceKey]}, nil
}

func (s *memTrialStore) IncrementTrial(deviceKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trials[deviceKey]++
	return nil
}

type memReadingStore struct {
	mu       sync.Mutex
	readings map[uint64]models.Reading
	nextID   uint64
}

func newMemReadingStore() *memReadingStore {
	return &memReadingStore{readings: make(map[uint64]models.Reading)}
}

func (s *memReadingStore) CreateReading(reading *models.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	reading.ID = s.nextID
	stored := *reading
	stored.Cards = append(models.Cards(nil), reading.Cards...)
	s.readings[reading.ID] = stored
	return nil
}

func (s *memReadingStore) GetReadingByID(id uint64) (*models.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reading, ok := s.readings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	reading.Cards = append(models.Cards(nil), reading.Cards...)
	return &reading, nil
}

func (s *memReadingStore) GetReadingsByUserKey(userKey string, limit int) ([]models.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reading
	// Newest first: ids are monotonic.
	for id := s.nextID; id >= 1; id-- {
		if r, ok := s.readings[id]; ok && r.UserKey == userKey {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *memReadingStore) ApplyCardImage(readingID uint64, requestID, image string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reading, ok := s.readings[readingID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	for i := range reading.Cards {
		if reading.Cards[i].RequestID == requestID {
			reading.Cards[i].Generated = image
			s.readings[readingID] = reading
			return true, nil
		}
	}
	return false, nil
}

type memPaymentStore struct {
	mu     sync.Mutex
	events map[string]models.PaymentEvent
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{events: make(map[string]models.PaymentEvent)}
}

func (s *memPaymentStore) GetPaymentEvent(id string) (*models.PaymentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &event, nil
}

func (s *memPaymentStore) SavePaymentEvent(event *models.PaymentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.events[event.ID] = *event
	return nil
}
