package logic

import (
	"testing"
	"time"

	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

func TestDebouncerCoalesces(t *testing.T) {
	store := newMemSessionStore()
	d := NewSnapshotDebouncer(store, 30*time.Millisecond)

	screens := []models.Screen{
		models.ScreenWelcome,
		models.ScreenInputInfo,
		models.ScreenCategorySelect,
	}
	for _, screen := range screens {
		d.Save(&models.SessionSnapshot{UserKey: "u1", Screen: screen})
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.saveCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("debounced write never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if n := store.saveCount(); n != 1 {
		t.Errorf("writes = %d, want 1 (coalesced)", n)
	}
	snap, err := store.GetSnapshot("u1")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap.Screen != models.ScreenCategorySelect {
		t.Errorf("persisted screen = %s, want the latest (%s)", snap.Screen, models.ScreenCategorySelect)
	}
}

func TestDebouncerFlush(t *testing.T) {
	store := newMemSessionStore()
	d := NewSnapshotDebouncer(store, time.Hour)

	d.Save(&models.SessionSnapshot{UserKey: "u1", Screen: models.ScreenShuffling})
	d.Flush("u1")

	if n := store.saveCount(); n != 1 {
		t.Fatalf("writes = %d, want 1 after Flush", n)
	}
	snap, _ := store.GetSnapshot("u1")
	if snap.Screen != models.ScreenShuffling {
		t.Errorf("persisted screen = %s", snap.Screen)
	}

	// Flushing again with nothing pending is a no-op.
	d.Flush("u1")
	if n := store.saveCount(); n != 1 {
		t.Errorf("writes = %d, want 1 (empty flush wrote)", n)
	}
}

func TestDebouncerIsolatesUsers(t *testing.T) {
	store := newMemSessionStore()
	d := NewSnapshotDebouncer(store, time.Hour)

	d.Save(&models.SessionSnapshot{UserKey: "u1", Screen: models.ScreenResult})
	d.Save(&models.SessionSnapshot{UserKey: "u2", Screen: models.ScreenChatRoom})
	d.Flush("u1")

	if _, err := store.GetSnapshot("u1"); err != nil {
		t.Errorf("u1 snapshot missing: %v", err)
	}
	if _, err := store.GetSnapshot("u2"); err == nil {
		t.Error("u2 snapshot written before its flush")
	}

	d.Flush("u2")
	if _, err := store.GetSnapshot("u2"); err != nil {
		t.Errorf("u2 snapshot missing after flush: %v", err)
	}
}
