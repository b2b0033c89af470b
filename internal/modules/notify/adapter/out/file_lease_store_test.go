package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"studyplan/internal/modules/notify/adapter/out"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

const ttl = 45 * time.Second

func TestAcquireFreshLease(t *testing.T) {
	t.Parallel()

	store := out.NewFileLeaseStore(t.TempDir())
	acquired, err := store.Acquire(context.Background(), "host-1", base, ttl)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("fresh lease refused")
	}
}

func TestAcquireBlockedWhileHeldByOther(t *testing.T) {
	t.Parallel()

	store := out.NewFileLeaseStore(t.TempDir())
	if _, err := store.Acquire(context.Background(), "host-1", base, ttl); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	acquired, err := store.Acquire(context.Background(), "host-2", base.Add(10*time.Second), ttl)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if acquired {
		t.Fatal("lease stolen inside the TTL")
	}
}

func TestAcquireAfterExpiry(t *testing.T) {
	t.Parallel()

	store := out.NewFileLeaseStore(t.TempDir())
	if _, err := store.Acquire(context.Background(), "host-1", base, ttl); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	acquired, err := store.Acquire(context.Background(), "host-2", base.Add(ttl+time.Second), ttl)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("expired lease not taken over")
	}
}

func TestReacquireOwnLeaseRefreshes(t *testing.T) {
	t.Parallel()

	store := out.NewFileLeaseStore(t.TempDir())
	if _, err := store.Acquire(context.Background(), "host-1", base, ttl); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if acquired, err := store.Acquire(context.Background(), "host-1", base.Add(30*time.Second), ttl); err != nil || !acquired {
		t.Fatalf("refresh: acquired=%t err=%v", acquired, err)
	}

	// The refresh pushed the expiry out, so the original deadline no longer
	// lets another holder in.
	acquired, err := store.Acquire(context.Background(), "host-2", base.Add(ttl+time.Second), ttl)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if acquired {
		t.Fatal("refreshed lease treated as expired")
	}
}

func TestCorruptLeaseTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	path := filepath.Join(home, "notifier-lease.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := out.NewFileLeaseStore(home)
	acquired, err := store.Acquire(context.Background(), "host-1", base, ttl)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("corrupt lease wedged acquisition")
	}
}

func TestReleaseOnlyRemovesOwnLease(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	store := out.NewFileLeaseStore(home)
	path := filepath.Join(home, "notifier-lease.json")
	if _, err := store.Acquire(context.Background(), "host-1", base, ttl); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := store.Release(context.Background(), "host-2"); err != nil {
		t.Fatalf("release other: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal("release by a non-holder removed the lease")
	}

	if err := store.Release(context.Background(), "host-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("release left the lease behind")
	}
	// Releasing again is a no-op.
	if err := store.Release(context.Background(), "host-1"); err != nil {
		t.Fatalf("release twice: %v", err)
	}
}
