package model

import "time"

// DailyRecord marks that a member has caught their fish for the current day.
// The full map of records is wiped at the daily reset.
type DailyRecord struct {
	Username string `json:"username"`
	FishedAt string `json:"fishedAt"` // ISO-8601
}

// AnglerProfile is the durable per-member record surviving across days.
type AnglerProfile struct {
	Username       string `json:"username"`
	Streak         int    `json:"streak"`
	LastFishedDate string `json:"lastFishedDate"` // YYYY-MM-DD
	TotalCatches   int    `json:"totalCatches"`
}

// PondState is the aggregate root of all persisted data. It is owned by the
// store; every other package goes through the store's locked accessors.
type PondState struct {
	DailyCount         int                       `json:"dailyCount"`
	LastResetTimestamp int64                     `json:"lastResetTimestamp"` // epoch millis, start of the current day window
	Users              map[string]DailyRecord    `json:"users"`
	PersistentUsers    map[string]*AnglerProfile `json:"persistentUsers"`

	ButtonMessageID  *string `json:"buttonMessageId,omitempty"`
	ButtonChannelID  *string `json:"buttonChannelId,omitempty"`
	TrackedRoleID    *string `json:"trackedRoleId,omitempty"`
	SummaryChannelID *string `json:"summaryChannelId,omitempty"`
	GuildID          *string `json:"guildId,omitempty"`

	PingReminderEnabled bool `json:"pingReminderEnabled"`
	BestAnglerStreak    int  `json:"bestAnglerStreak"`
	ReminderThreshold   int  `json:"reminderThreshold"`
}

// DefaultState returns a fresh pond with the documented defaults. It is also
// used as the unmarshal target on load so that fields absent from an older
// data file keep their defaults.
func DefaultState(now time.Time) *PondState {
	return &PondState{
		LastResetTimestamp:  now.UnixMilli(),
		Users:               make(map[string]DailyRecord),
		PersistentUsers:     make(map[string]*AnglerProfile),
		PingReminderEnabled: true,
		BestAnglerStreak:    5,
		ReminderThreshold:   1,
	}
}
