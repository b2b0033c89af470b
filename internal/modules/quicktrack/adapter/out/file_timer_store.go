package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	quicktrackout "studyplan/internal/modules/quicktrack/port/out"
)

// FileTimerStore keeps the active timers as a single JSON document of
// task id -> start instant. The file is removed once the last timer stops so
// stale entries cannot accumulate.
type FileTimerStore struct {
	path string
}

func NewFileTimerStore(homePath string) quicktrackout.TimerStore {
	return &FileTimerStore{path: filepath.Join(homePath, "quicktrack-timers.json")}
}

func (s *FileTimerStore) Save(_ context.Context, active map[string]time.Time) error {
	if len(active) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove quick-track state: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create quick-track dir: %w", err)
	}
	payload, err := json.MarshalIndent(active, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quick-track state: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write quick-track state: %w", err)
	}
	return nil
}

func (s *FileTimerStore) Load(_ context.Context) (map[string]time.Time, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]time.Time{}, nil
		}
		return nil, fmt.Errorf("read quick-track state: %w", err)
	}
	active := map[string]time.Time{}
	if err := json.Unmarshal(payload, &active); err != nil {
		// Unparsable state means no active timers, not a failed startup.
		return map[string]time.Time{}, nil
	}
	return active, nil
}
