// Package summary derives the read-only daily views over the pond: the best
// anglers leaderboard and the list of tracked members overdue for a reminder.
package summary

import (
	"context"
	"sort"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"
)

const bestAnglerLimit = 10

// MemberRoster enumerates the member IDs holding a given role. Implementations
// paginate until an empty page and treat fetch errors as a soft stop,
// returning whatever was gathered so far.
type MemberRoster interface {
	RoleMemberIDs(ctx context.Context, guildID, roleID string) []string
}

// BestAngler is one leaderboard row.
type BestAngler struct {
	UserID       string
	Username     string
	Streak       int
	TotalCatches int
}

// Report is everything the presentation layer needs to render the daily
// summary.
type Report struct {
	DailyCount       int
	BestAnglerStreak int
	BestAnglers      []BestAngler
	Overdue          []string // member IDs eligible for a reminder ping
	PingEnabled      bool
}

// Reporter builds reports from the shared store and an external roster.
type Reporter struct {
	store  *store.Store
	roster MemberRoster
}

// NewReporter creates a Reporter.
func NewReporter(st *store.Store, roster MemberRoster) *Reporter {
	return &Reporter{store: st, roster: roster}
}

// Build assembles the daily report. The state snapshot is taken under the
// shared lock and released before the roster fetch, so slow network calls
// never block a catch in progress.
func (r *Reporter) Build(ctx context.Context, today string) *Report {
	var (
		guildID, roleID string
		threshold       int
		fished          map[string]struct{}
		profiles        map[string]model.AnglerProfile
		report          = &Report{}
	)
	r.store.Read(func(st *model.PondState) {
		report.DailyCount = st.DailyCount
		report.BestAnglerStreak = st.BestAnglerStreak
		report.PingEnabled = st.PingReminderEnabled
		threshold = st.ReminderThreshold
		if st.GuildID != nil {
			guildID = *st.GuildID
		}
		if st.TrackedRoleID != nil {
			roleID = *st.TrackedRoleID
		}

		fished = make(map[string]struct{}, len(st.Users))
		for id := range st.Users {
			fished[id] = struct{}{}
		}
		profiles = make(map[string]model.AnglerProfile, len(st.PersistentUsers))
		for id, p := range st.PersistentUsers {
			profiles[id] = *p
		}
	})

	report.BestAnglers = bestAnglers(profiles, report.BestAnglerStreak)

	if guildID != "" && roleID != "" {
		members := r.roster.RoleMemberIDs(ctx, guildID, roleID)
		report.Overdue = overdue(members, fished, profiles, today, threshold)
	}

	return report
}

// bestAnglers filters profiles by the streak threshold and sorts by streak
// descending, ties broken by lifetime total descending, capped at ten rows.
func bestAnglers(profiles map[string]model.AnglerProfile, threshold int) []BestAngler {
	var out []BestAngler
	for id, p := range profiles {
		if p.Streak >= threshold {
			out = append(out, BestAngler{
				UserID:       id,
				Username:     p.Username,
				Streak:       p.Streak,
				TotalCatches: p.TotalCatches,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Streak != out[j].Streak {
			return out[i].Streak > out[j].Streak
		}
		return out[i].TotalCatches > out[j].TotalCatches
	})
	if len(out) > bestAnglerLimit {
		out = out[:bestAnglerLimit]
	}
	return out
}

// overdue selects members without a catch today whose inactivity has reached
// the reminder threshold. A member with no profile at all counts as exactly
// threshold days inactive, which makes them immediately eligible.
func overdue(members []string, fished map[string]struct{}, profiles map[string]model.AnglerProfile, today string, threshold int) []string {
	var out []string
	for _, id := range members {
		if _, ok := fished[id]; ok {
			continue
		}
		days := threshold
		if p, ok := profiles[id]; ok {
			days = game.DaysBetween(p.LastFishedDate, today)
		}
		if days >= threshold {
			out = append(out, id)
		}
	}
	return out
}
