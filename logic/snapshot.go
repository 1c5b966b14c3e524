package logic

import (
	"log"
	"sync"
	"time"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// SnapshotDebouncer coalesces rapid snapshot saves into one write per user.
// Each save resets the user's timer; the write fires after a quiet period.
// Persistence failures are logged, never surfaced.
type SnapshotDebouncer struct {
	store SessionStore
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]*models.SessionSnapshot
}

func NewSnapshotDebouncer(store SessionStore, delay time.Duration) *SnapshotDebouncer {
	return &SnapshotDebouncer{
		store:   store,
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]*models.SessionSnapshot),
	}
}

// Save schedules a debounced write of the snapshot, replacing any pending
// one for the same user.
func (d *SnapshotDebouncer) Save(snap *models.SessionSnapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[snap.UserKey] = snap
	if timer, ok := d.timers[snap.UserKey]; ok {
		timer.Stop()
	}
	userKey := snap.UserKey
	d.timers[userKey] = time.AfterFunc(d.delay, func() {
		d.flush(userKey)
	})
}

// Flush writes any pending snapshot for the user immediately.
func (d *SnapshotDebouncer) Flush(userKey string) {
	d.mu.Lock()
	if timer, ok := d.timers[userKey]; ok {
		timer.Stop()
	}
	d.mu.Unlock()
	d.flush(userKey)
}

func (d *SnapshotDebouncer) flush(userKey string) {
	d.mu.Lock()
	snap, ok := d.pending[userKey]
	delete(d.pending, userKey)
	delete(d.timers, userKey)
	d.mu.Unlock()

	if !ok {
		return
	}
	if err := d.store.SaveSnapshot(snap); err != nil {
		log.Printf("Failed to persist snapshot for %s: %v", userKey, err)
	}
}
