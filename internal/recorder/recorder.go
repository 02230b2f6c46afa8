package recorder

// CatchEvent holds the data recorded for one successful catch.
type CatchEvent struct {
	UserID       string
	Username     string
	Streak       int
	TotalCatches int
	DailyCount   int
}

// ResetEvent holds the outcome of one daily reset.
type ResetEvent struct {
	Participants  int
	StreaksBroken int
}

// Recorder keeps an append-only event history. Write failures are logged by
// callers and never abort the operation that produced the event.
type Recorder interface {
	RecordCatch(evt *CatchEvent) error
	RecordReset(evt *ResetEvent) error
	Close() error
}
