package game

import (
	"errors"
	"time"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"
)

var (
	// ErrAlreadyFished means the member already caught today's fish.
	// Expected and user-facing, not an internal fault.
	ErrAlreadyFished = errors.New("already fished today")

	// ErrResetPending means the day window is stale. The caller must drive
	// the coordinator through Reset and retry; the engine never resets on
	// its own so the transition has exactly one owner.
	ErrResetPending = errors.New("daily reset pending")
)

// CatchResult is what a successful catch reports back to the member.
type CatchResult struct {
	Streak       int
	TotalCatches int
	DailyCount   int
}

// Engine validates and records one catch per member per day against the pond.
type Engine struct {
	store *store.Store
}

// NewEngine creates an Engine bound to the shared store.
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st}
}

// RecordCatch records a catch for the member at the given time. The whole
// check-and-update runs under one exclusive mutation, so two concurrent
// calls for the same member yield exactly one success. Persistence happens
// after the lock is released and is best effort.
func (e *Engine) RecordCatch(userID, username string, now time.Time) (CatchResult, error) {
	today := DateString(now.UnixMilli())
	yesterday := DateString(now.AddDate(0, 0, -1).UnixMilli())

	var result CatchResult
	var recordErr error

	e.store.Mutate(func(st *model.PondState) {
		if IsResetDue(st.LastResetTimestamp, now) {
			recordErr = ErrResetPending
			return
		}
		if _, fished := st.Users[userID]; fished {
			recordErr = ErrAlreadyFished
			return
		}

		profile, ok := st.PersistentUsers[userID]
		if !ok {
			profile = &model.AnglerProfile{
				Username:       username,
				Streak:         1,
				LastFishedDate: today,
				TotalCatches:   1,
			}
			st.PersistentUsers[userID] = profile
		} else {
			switch profile.LastFishedDate {
			case yesterday:
				profile.Streak++
			case today:
				// streak untouched (only reachable through stale data)
			default:
				profile.Streak = 1
			}
			profile.LastFishedDate = today
			profile.Username = username
			profile.TotalCatches++
		}

		st.Users[userID] = model.DailyRecord{
			Username: username,
			FishedAt: now.UTC().Format(time.RFC3339),
		}
		st.DailyCount++

		result = CatchResult{
			Streak:       profile.Streak,
			TotalCatches: profile.TotalCatches,
			DailyCount:   st.DailyCount,
		}
	})

	if recordErr != nil {
		return CatchResult{}, recordErr
	}

	e.store.Persist()
	return result, nil
}
