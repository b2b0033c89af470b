package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	notifyout "studyplan/internal/modules/notify/port/out"
)

type settingsDoc struct {
	Enabled bool `json:"enabled"`
}

// FileSettingsStore persists the notifications-enabled flag.
type FileSettingsStore struct {
	path string
}

func NewFileSettingsStore(homePath string) notifyout.SettingsStore {
	return &FileSettingsStore{path: filepath.Join(homePath, "notify-settings.json")}
}

func (s *FileSettingsStore) Enabled(_ context.Context) (bool, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read notify settings: %w", err)
	}
	doc := settingsDoc{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return false, nil
	}
	return doc.Enabled, nil
}

func (s *FileSettingsStore) SetEnabled(_ context.Context, enabled bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	payload, err := json.Marshal(settingsDoc{Enabled: enabled})
	if err != nil {
		return fmt.Errorf("marshal notify settings: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write notify settings: %w", err)
	}
	return nil
}
