package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/model"
)

const maxBackups = 5

// Store owns the single PondState instance behind a reader/writer lock and
// handles all durability: atomic saves and bounded backup rotation. The lock
// protects in-memory consistency only; file I/O always happens outside it.
type Store struct {
	mu        sync.RWMutex
	state     *model.PondState
	filePath  string
	backupDir string
}

// Load reads the pond state from disk. A missing file starts a fresh pond; an
// unparsable file is logged and replaced by the default state so startup
// never fails on bad data.
func Load(filePath, backupDir string) *Store {
	state := model.DefaultState(time.Now())

	data, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		log.Printf("[INFO] no existing data file at %s, starting fresh", filePath)
	case err != nil:
		log.Printf("[ERROR] read data file: %v, starting fresh", err)
	default:
		// Unmarshal over the defaults so fields missing from older files
		// keep their documented default values.
		if err := json.Unmarshal(data, state); err != nil {
			log.Printf("[ERROR] parse data file: %v, starting fresh", err)
			state = model.DefaultState(time.Now())
		}
	}
	if state.Users == nil {
		state.Users = make(map[string]model.DailyRecord)
	}
	if state.PersistentUsers == nil {
		state.PersistentUsers = make(map[string]*model.AnglerProfile)
	}

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		log.Printf("[WARN] create backup dir: %v", err)
	}

	return &Store{state: state, filePath: filePath, backupDir: backupDir}
}

// Read runs fn under the shared lock. fn must not block on I/O.
func (s *Store) Read(fn func(*model.PondState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Mutate runs fn under the exclusive lock. The lock is released before any
// persistence happens; call Persist afterwards to flush the change.
func (s *Store) Mutate(fn func(*model.PondState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Persist writes the current state to disk atomically: serialize under the
// shared lock, write to a sibling temp file, then rename over the canonical
// path so a crash mid-write never leaves a truncated file. Failures are
// logged and swallowed; the in-memory state stays authoritative.
func (s *Store) Persist() {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.state, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		log.Printf("[ERROR] serialize data: %v", err)
		return
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		log.Printf("[ERROR] write temp data file: %v", err)
		return
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		log.Printf("[ERROR] finalize atomic save: %v", err)
	}
}

// Backup copies the persisted file into the backup directory with a timestamp
// suffix, pruning the oldest backups by modification time so at most
// maxBackups remain. Best effort: every failure is logged and swallowed.
func (s *Store) Backup() {
	s.pruneBackups()

	if _, err := os.Stat(s.filePath); err != nil {
		return // nothing persisted yet
	}

	stamp := time.Now().Format("2006-01-02T15-04-05")
	backupPath := filepath.Join(s.backupDir, fmt.Sprintf("fishing_data_%s.json", stamp))

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		log.Printf("[ERROR] read data file for backup: %v", err)
		return
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		log.Printf("[ERROR] write backup: %v", err)
	}
}

// pruneBackups deletes oldest-first until fewer than maxBackups remain, so
// the copy that follows brings the directory back to exactly maxBackups.
func (s *Store) pruneBackups() {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		log.Printf("[WARN] read backup dir: %v", err)
		return
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{filepath.Join(s.backupDir, e.Name()), info.ModTime()})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].modTime.Before(backups[j].modTime) })

	for len(backups) >= maxBackups {
		if err := os.Remove(backups[0].path); err != nil {
			log.Printf("[WARN] prune backup %s: %v", backups[0].path, err)
		}
		backups = backups[1:]
	}
}
