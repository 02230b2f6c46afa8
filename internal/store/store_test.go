package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return Load(filepath.Join(dir, "fishing_data.json"), filepath.Join(dir, "backups"))
}

func TestLoad_FreshState(t *testing.T) {
	s := newTestStore(t)
	s.Read(func(st *model.PondState) {
		if st.DailyCount != 0 {
			t.Errorf("expected empty daily count, got %d", st.DailyCount)
		}
		if !st.PingReminderEnabled {
			t.Error("expected ping reminders enabled by default")
		}
		if st.BestAnglerStreak != 5 {
			t.Errorf("expected default best angler streak 5, got %d", st.BestAnglerStreak)
		}
		if st.ReminderThreshold != 1 {
			t.Errorf("expected default reminder threshold 1, got %d", st.ReminderThreshold)
		}
		if st.LastResetTimestamp == 0 {
			t.Error("expected last reset timestamp to default to now")
		}
	})
}

func TestLoad_CorruptFileFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fishing_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, filepath.Join(dir, "backups"))
	s.Read(func(st *model.PondState) {
		if st.Users == nil || st.PersistentUsers == nil {
			t.Error("expected initialized maps after corrupt load")
		}
		if st.BestAnglerStreak != 5 {
			t.Errorf("expected default state, got streak threshold %d", st.BestAnglerStreak)
		}
	})
}

func TestPersist_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fishing_data.json")

	s := Load(path, filepath.Join(dir, "backups"))
	roleID := "123456789"
	s.Mutate(func(st *model.PondState) {
		st.DailyCount = 3
		st.LastResetTimestamp = 1700000000000
		st.Users["42"] = model.DailyRecord{Username: "carp", FishedAt: "2023-11-14T22:13:20Z"}
		st.PersistentUsers["42"] = &model.AnglerProfile{
			Username: "carp", Streak: 7, LastFishedDate: "2023-11-14", TotalCatches: 30,
		}
		st.TrackedRoleID = &roleID
		st.PingReminderEnabled = false
		st.BestAnglerStreak = 9
		st.ReminderThreshold = 3
	})
	s.Persist()

	var want, got *model.PondState
	s.Read(func(st *model.PondState) { want = st })

	reloaded := Load(path, filepath.Join(dir, "backups"))
	reloaded.Read(func(st *model.PondState) { got = st })

	if !reflect.DeepEqual(want, got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
	if got.ButtonMessageID != nil || got.GuildID != nil {
		t.Error("absent optional fields should stay nil after reload")
	}
}

func TestPersist_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fishing_data.json")

	s := Load(path, filepath.Join(dir, "backups"))
	s.Persist()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected canonical file after persist: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away after persist")
	}
}

func TestBackup_RetainsAtMostFive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fishing_data.json")
	backupDir := filepath.Join(dir, "backups")

	s := Load(path, backupDir)
	s.Persist()

	// More cycles than the retention limit. Backup names carry second
	// precision, so seed older files directly with distinct mtimes.
	for i := 0; i < 8; i++ {
		stale := filepath.Join(backupDir, time.Now().Add(-time.Duration(8-i)*time.Hour).Format("fishing_data_2006-01-02T15-04-05.json"))
		if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		older := time.Now().Add(-time.Duration(8-i) * time.Hour)
		if err := os.Chtimes(stale, older, older); err != nil {
			t.Fatal(err)
		}
	}

	s.Backup()

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected exactly 5 backups, got %d", len(entries))
	}

	// The freshly written backup must have survived pruning.
	newest := entries[0].Name()
	for _, e := range entries {
		if e.Name() > newest {
			newest = e.Name()
		}
	}
	info, err := os.Stat(filepath.Join(backupDir, newest))
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(info.ModTime()) > time.Minute {
		t.Error("newest backup should be the one just written")
	}
}

func TestBackup_NoPersistedFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")

	s := Load(filepath.Join(dir, "fishing_data.json"), backupDir)
	s.Backup()

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no backups without a persisted file, got %d", len(entries))
	}
}
