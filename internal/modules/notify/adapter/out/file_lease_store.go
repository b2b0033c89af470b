package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studyplan/internal/modules/notify/domain"
	notifyout "studyplan/internal/modules/notify/port/out"
)

// FileLeaseStore keeps the notifier lease as a small JSON file in the shared
// app home. The lock is advisory: last writer within the TTL wins, which is
// the intended semantics.
type FileLeaseStore struct {
	path string
}

func NewFileLeaseStore(homePath string) notifyout.LeaseStore {
	return &FileLeaseStore{path: filepath.Join(homePath, "notifier-lease.json")}
}

func (s *FileLeaseStore) Acquire(_ context.Context, holder string, now time.Time, ttl time.Duration) (bool, error) {
	current, err := s.read()
	if err != nil {
		return false, err
	}
	if current != nil && !current.Expired(now) && !current.HeldBy(holder) {
		return false, nil
	}

	lease := domain.Lease{Holder: holder, AcquiredAt: now, ExpiresAt: now.Add(ttl)}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, fmt.Errorf("create lease dir: %w", err)
	}
	payload, err := json.Marshal(lease)
	if err != nil {
		return false, fmt.Errorf("marshal lease: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return false, fmt.Errorf("write lease: %w", err)
	}
	return true, nil
}

func (s *FileLeaseStore) Release(_ context.Context, holder string) error {
	current, err := s.read()
	if err != nil {
		return err
	}
	if current == nil || !current.HeldBy(holder) {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lease: %w", err)
	}
	return nil
}

func (s *FileLeaseStore) read() (*domain.Lease, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read lease: %w", err)
	}
	lease := domain.Lease{}
	if err := json.Unmarshal(payload, &lease); err != nil {
		// A corrupt lease is treated as absent so a bad write cannot wedge
		// notifications forever.
		return nil, nil
	}
	return &lease, nil
}
