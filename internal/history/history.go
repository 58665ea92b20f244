// Package history keeps an append-only JSONL record of completed generation
// runs. Deletions are tombstones: a later line with Deleted set hides the
// entry without rewriting the log.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Entry is one completed run.
type Entry struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	Mode          string    `json:"mode"`
	QuestionCount int       `json:"question_count"`
	GeneratedAt   time.Time `json:"generated_at"`
	OutputPath    string    `json:"output_path"`
	Deleted       bool      `json:"deleted,omitempty"`
}

// Log is a file-backed history log safe for concurrent use.
type Log struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

// Append records one entry at the end of the log.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendLocked(e)
}

func (l *Log) appendLocked(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	line = append(line, '\n')
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// List returns live entries, newest first. Tombstoned IDs are folded out.
// Malformed lines are skipped so one bad write cannot poison the log.
func (l *Log) List() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listLocked()
}

func (l *Log) listLocked() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	byID := make(map[string]Entry)
	var order []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil || e.ID == "" {
			continue
		}
		if e.Deleted {
			delete(byID, e.ID)
			continue
		}
		if _, seen := byID[e.ID]; !seen {
			order = append(order, e.ID)
		}
		byID[e.ID] = e
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]Entry, 0, len(byID))
	for _, id := range order {
		if e, ok := byID[id]; ok {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GeneratedAt.After(entries[j].GeneratedAt)
	})
	return entries, nil
}

// Get returns the live entry with the given ID.
func (l *Log) Get(id string) (Entry, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.listLocked()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Delete tombstones the entry and removes its output document. Deleting an
// unknown ID reports ok=false without touching the log.
func (l *Log) Delete(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.listLocked()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ID != id {
			continue
		}
		if err := l.appendLocked(Entry{ID: id, Deleted: true}); err != nil {
			return false, err
		}
		if e.OutputPath != "" {
			if err := os.Remove(e.OutputPath); err != nil && !os.IsNotExist(err) {
				return true, fmt.Errorf("remove output document: %w", err)
			}
		}
		return true, nil
	}
	return false, nil
}

// Clear removes every live entry and its output document, then truncates
// the log file.
func (l *Log) Clear() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.listLocked()
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.OutputPath != "" {
			if err := os.Remove(e.OutputPath); err != nil && !os.IsNotExist(err) {
				return 0, fmt.Errorf("remove output document: %w", err)
			}
		}
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("truncate history: %w", err)
	}
	return len(entries), nil
}
