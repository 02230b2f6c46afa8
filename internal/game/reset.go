package game

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/recorder"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"
)

// ResetCoordinator performs the day-boundary transition exactly once even
// when the scheduled trigger and a lazily detected one race each other.
type ResetCoordinator struct {
	store     *store.Store
	recorder  recorder.Recorder
	resetting atomic.Bool
}

// NewResetCoordinator creates a coordinator bound to the shared store.
func NewResetCoordinator(st *store.Store, rec recorder.Recorder) *ResetCoordinator {
	return &ResetCoordinator{store: st, recorder: rec}
}

// Reset starts a new day window: members who did not fish today lose their
// streak, the daily records are wiped, and the reset boundary moves to now.
// Guarded by a compare-and-set gate; a contended call is a no-op and returns
// false. The gate is released on every exit path.
func (c *ResetCoordinator) Reset(now time.Time) bool {
	if !c.resetting.CompareAndSwap(false, true) {
		log.Println("[WARN] reset already in progress, skipping duplicate call")
		return false
	}
	defer c.resetting.Store(false)

	log.Println("[INFO] resetting daily data")

	var participants, broken int
	c.store.Mutate(func(st *model.PondState) {
		participants = len(st.Users)

		// Streak breakage must be computed from today's participation
		// before the records are cleared; clearing first would make every
		// member look like a non-participant.
		for userID, profile := range st.PersistentUsers {
			if _, fished := st.Users[userID]; !fished && profile.Streak != 0 {
				profile.Streak = 0
				broken++
			}
		}

		st.DailyCount = 0
		st.Users = make(map[string]model.DailyRecord)
		st.LastResetTimestamp = now.UnixMilli()
	})

	c.store.Persist()
	c.store.Backup()

	if err := c.recorder.RecordReset(&recorder.ResetEvent{
		Participants:  participants,
		StreaksBroken: broken,
	}); err != nil {
		log.Printf("[ERROR] record reset event: %v", err)
	}

	log.Printf("[INFO] daily data reset complete (%d participants, %d streaks broken)", participants, broken)
	return true
}
