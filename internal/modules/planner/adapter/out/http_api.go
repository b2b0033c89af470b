package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studyplan/internal/modules/planner/domain"
	plannerout "studyplan/internal/modules/planner/port/out"
	apperrors "studyplan/internal/platform/errors"
)

// HTTPAPI talks JSON to the remote planner service.
type HTTPAPI struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAPI(baseURL string, timeout time.Duration) plannerout.API {
	return &HTTPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAPI) ListSessions(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	query := url.Values{}
	query.Set("from", from.Format(time.RFC3339))
	query.Set("to", to.Format(time.RFC3339))
	sessions := []domain.Session{}
	if err := a.get(ctx, "/sessions?"+query.Encode(), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (a *HTTPAPI) GetSession(ctx context.Context, id string) (domain.Session, error) {
	session := domain.Session{}
	if err := a.get(ctx, "/sessions/"+url.PathEscape(id), &session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (a *HTTPAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if err := a.get(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (a *HTTPAPI) GetTask(ctx context.Context, id string) (domain.Task, error) {
	task := domain.Task{}
	if err := a.get(ctx, "/tasks/"+url.PathEscape(id), &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (a *HTTPAPI) UpdateTaskTimer(ctx context.Context, id string, addMinutes int, status domain.Status) (domain.Task, error) {
	body := struct {
		AddMinutes int    `json:"add_minutes"`
		Status     string `json:"status,omitempty"`
	}{AddMinutes: addMinutes, Status: string(status)}
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Task{}, fmt.Errorf("encode timer update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, a.baseURL+"/tasks/"+url.PathEscape(id)+"/timer", bytes.NewReader(payload))
	if err != nil {
		return domain.Task{}, fmt.Errorf("build timer update: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	task := domain.Task{}
	if err := a.do(req, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (a *HTTPAPI) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return a.do(req, out)
}

func (a *HTTPAPI) do(req *http.Request, out any) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("planner api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.ErrNotFound
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("planner api %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode planner response: %w", err)
	}
	return nil
}
