package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"studyplan/internal/modules/focus/domain"
	focusout "studyplan/internal/modules/focus/port/out"
	"studyplan/internal/platform/markdown"
	"studyplan/internal/platform/slug"
)

// FileLogStore journals finished focus runs as markdown notes under
// <home>/journal/<year>/<month>/<day>/.
type FileLogStore struct {
	homePath string
}

func NewFileLogStore(homePath string) focusout.LogStore {
	return &FileLogStore{homePath: homePath}
}

func (s *FileLogStore) Save(_ context.Context, log domain.SessionLog) (string, error) {
	date := log.StartedAt
	dir := filepath.Join(s.homePath, "journal", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(log.Focus))
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"schema_version":      domain.SchemaVersion,
		"id":                  log.ID,
		"session_id":          log.SessionID,
		"task_id":             log.TaskID,
		"started_at":          log.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		"ended_at":            log.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
		"focused_minutes":     log.FocusedMinutes,
		"quick_track_minutes": log.QuickTrackMinutes,
		"pomodoro_rounds":     log.PomodoroRounds,
		"outcome":             log.Outcome,
	}
	body := fmt.Sprintf(
		"# Focus %s\n\n- Focus: %s\n- Task: %s\n- Focused: %d minutes (%d carried from quick-track)\n- Outcome: %s\n",
		log.ID, log.Focus, log.TaskTitle, log.FocusedMinutes, log.QuickTrackMinutes, log.Outcome,
	)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write focus log: %w", err)
	}
	return path, nil
}
