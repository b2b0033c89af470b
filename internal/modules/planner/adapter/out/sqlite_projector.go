package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studyplan/internal/modules/planner/domain"
	plannerout "studyplan/internal/modules/planner/port/out"
	apperrors "studyplan/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteProjector struct {
	db *sql.DB
}

func NewSQLiteProjector(dbPath string) (plannerout.Projector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (p *SQLiteProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  task_id TEXT,
  subject_id TEXT,
  focus TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  status TEXT NOT NULL,
  estimated_minutes INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  subject_id TEXT,
  title TEXT NOT NULL,
  status TEXT NOT NULL,
  estimated_minutes INTEGER NOT NULL,
  timer_minutes_spent INTEGER NOT NULL
);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create projection tables: %w", err)
	}
	return nil
}

func (p *SQLiteProjector) UpsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, task_id, subject_id, focus, start_time, end_time, status, estimated_minutes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  task_id=excluded.task_id,
  subject_id=excluded.subject_id,
  focus=excluded.focus,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  status=excluded.status,
  estimated_minutes=excluded.estimated_minutes;
`
	_, err := p.db.ExecContext(ctx, stmt,
		session.ID, session.TaskID, session.SubjectID, session.Focus,
		session.StartTime.UTC().Format(time.RFC3339), session.EndTime.UTC().Format(time.RFC3339),
		string(session.Status), session.EstimatedMinutes,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (p *SQLiteProjector) UpsertTask(ctx context.Context, task domain.Task) error {
	const stmt = `
INSERT INTO tasks (id, subject_id, title, status, estimated_minutes, timer_minutes_spent)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  subject_id=excluded.subject_id,
  title=excluded.title,
  status=excluded.status,
  estimated_minutes=excluded.estimated_minutes,
  timer_minutes_spent=excluded.timer_minutes_spent;
`
	_, err := p.db.ExecContext(ctx, stmt,
		task.ID, task.SubjectID, task.Title, string(task.Status),
		task.EstimatedMinutes, task.TimerMinutesSpent,
	)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

func (p *SQLiteProjector) ListSessions(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	const query = `
SELECT id, task_id, subject_id, focus, start_time, end_time, status, estimated_minutes
FROM sessions
WHERE start_time >= ? AND start_time <= ?
ORDER BY start_time;
`
	rows, err := p.db.QueryContext(ctx, query, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (p *SQLiteProjector) ListTasks(ctx context.Context) ([]domain.Task, error) {
	const query = `
SELECT id, subject_id, title, status, estimated_minutes, timer_minutes_spent
FROM tasks
ORDER BY title;
`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		task := domain.Task{}
		var status string
		if err := rows.Scan(&task.ID, &task.SubjectID, &task.Title, &status, &task.EstimatedMinutes, &task.TimerMinutesSpent); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Status = domain.Status(status)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (p *SQLiteProjector) GetSession(ctx context.Context, id string) (domain.Session, error) {
	const query = `
SELECT id, task_id, subject_id, focus, start_time, end_time, status, estimated_minutes
FROM sessions WHERE id = ?;
`
	row := p.db.QueryRowContext(ctx, query, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, apperrors.ErrNotFound
	}
	return session, err
}

func (p *SQLiteProjector) GetTask(ctx context.Context, id string) (domain.Task, error) {
	const query = `
SELECT id, subject_id, title, status, estimated_minutes, timer_minutes_spent
FROM tasks WHERE id = ?;
`
	task := domain.Task{}
	var status string
	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.SubjectID, &task.Title, &status, &task.EstimatedMinutes, &task.TimerMinutesSpent,
	)
	if err == sql.ErrNoRows {
		return domain.Task{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	task.Status = domain.Status(status)
	return task, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	session := domain.Session{}
	var status, start, end string
	if err := row.Scan(&session.ID, &session.TaskID, &session.SubjectID, &session.Focus, &start, &end, &status, &session.EstimatedMinutes); err != nil {
		if err == sql.ErrNoRows {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	session.Status = domain.Status(status)
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse start time: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse end time: %w", err)
	}
	session.StartTime = startTime
	session.EndTime = endTime
	return session, nil
}
