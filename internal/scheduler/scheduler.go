package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"

	"github.com/robfig/cron/v3"
)

// SummaryPoster delivers the daily summary to the configured channel.
type SummaryPoster interface {
	PostDailySummary(ctx context.Context)
}

// Scheduler runs the once-a-day duties: post the summary, back up the data
// file, then roll the day window over.
type Scheduler struct {
	Cron        *cron.Cron
	Store       *store.Store
	Coordinator *game.ResetCoordinator
	Poster      SummaryPoster
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, st *store.Store, coord *game.ResetCoordinator, poster SummaryPoster) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Store:       st,
		Coordinator: coord,
		Poster:      poster,
		Ctx:         ctx,
	}
}

// Register registers the daily task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_SUMMARY_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// dailyTask posts the final summary for the ending day, backs the data file
// up before the wipe, then performs the reset (which saves and backs up the
// new state on its own).
func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily task")

	s.Poster.PostDailySummary(s.Ctx)
	s.Store.Backup()
	s.Coordinator.Reset(time.Now())
}
