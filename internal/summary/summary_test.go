package summary

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"
)

type staticRoster struct {
	ids []string
}

func (r *staticRoster) RoleMemberIDs(_ context.Context, _, _ string) []string {
	return r.ids
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	return store.Load(filepath.Join(dir, "fishing_data.json"), filepath.Join(dir, "backups"))
}

func trackGuild(st *store.Store) {
	st.Mutate(func(s *model.PondState) {
		guild, role := "guild-1", "role-1"
		s.GuildID = &guild
		s.TrackedRoleID = &role
	})
}

func TestBuild_BestAnglersSortedAndCapped(t *testing.T) {
	st := newTestStore(t)
	st.Mutate(func(s *model.PondState) {
		s.BestAnglerStreak = 5
		// 12 qualifying profiles, plus one below threshold.
		for i := 0; i < 12; i++ {
			id := fmt.Sprintf("u%d", i)
			s.PersistentUsers[id] = &model.AnglerProfile{
				Username:     id,
				Streak:       5 + i%3,
				TotalCatches: 10 + i,
			}
		}
		s.PersistentUsers["fresh"] = &model.AnglerProfile{Username: "fresh", Streak: 2, TotalCatches: 100}
	})

	r := NewReporter(st, &staticRoster{})
	report := r.Build(context.Background(), "2024-03-10")

	if len(report.BestAnglers) != 10 {
		t.Fatalf("expected top 10, got %d", len(report.BestAnglers))
	}
	for i := 1; i < len(report.BestAnglers); i++ {
		prev, cur := report.BestAnglers[i-1], report.BestAnglers[i]
		if cur.Streak > prev.Streak {
			t.Fatalf("not sorted by streak desc at %d: %+v before %+v", i, prev, cur)
		}
		if cur.Streak == prev.Streak && cur.TotalCatches > prev.TotalCatches {
			t.Fatalf("ties not broken by total desc at %d: %+v before %+v", i, prev, cur)
		}
	}
	for _, a := range report.BestAnglers {
		if a.Streak < 5 {
			t.Errorf("below-threshold angler %q made the list", a.Username)
		}
	}
}

func TestBuild_OverdueSelection(t *testing.T) {
	st := newTestStore(t)
	trackGuild(st)
	today := "2024-03-10"
	st.Mutate(func(s *model.PondState) {
		s.ReminderThreshold = 2
		s.Users["fished"] = model.DailyRecord{Username: "fished", FishedAt: time.Now().UTC().Format(time.RFC3339)}
		s.PersistentUsers["fished"] = &model.AnglerProfile{Username: "fished", LastFishedDate: today}
		s.PersistentUsers["recent"] = &model.AnglerProfile{Username: "recent", LastFishedDate: "2024-03-09"}
		s.PersistentUsers["stale"] = &model.AnglerProfile{Username: "stale", LastFishedDate: "2024-03-08"}
		s.PersistentUsers["corrupt"] = &model.AnglerProfile{Username: "corrupt", LastFishedDate: "??"}
	})

	roster := &staticRoster{ids: []string{"fished", "recent", "stale", "corrupt", "stranger"}}
	report := NewReporter(st, roster).Build(context.Background(), today)

	// fished: has a record today -> skipped.
	// recent: 1 day inactive, below threshold 2 -> skipped.
	// stale: 2 days inactive -> eligible.
	// corrupt: unparsable date reads as epoch -> eligible.
	// stranger: no profile counts as exactly threshold days -> eligible.
	want := []string{"stale", "corrupt", "stranger"}
	if !reflect.DeepEqual(report.Overdue, want) {
		t.Errorf("expected overdue %v, got %v", want, report.Overdue)
	}
}

func TestBuild_NoTrackedRoleSkipsRoster(t *testing.T) {
	st := newTestStore(t)
	report := NewReporter(st, &staticRoster{ids: []string{"someone"}}).Build(context.Background(), "2024-03-10")
	if report.Overdue != nil {
		t.Errorf("expected no overdue list without a tracked role, got %v", report.Overdue)
	}
}

func TestBuild_CarriesConfigAndCount(t *testing.T) {
	st := newTestStore(t)
	st.Mutate(func(s *model.PondState) {
		s.DailyCount = 7
		s.BestAnglerStreak = 3
		s.PingReminderEnabled = false
	})

	report := NewReporter(st, &staticRoster{}).Build(context.Background(), "2024-03-10")
	if report.DailyCount != 7 || report.BestAnglerStreak != 3 || report.PingEnabled {
		t.Errorf("report did not carry state config: %+v", report)
	}
}
