package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_GetDel(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.GetDel(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("GetDel = %q, %v", got, err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after GetDel: %v", err)
	}
	if _, err := s.GetDel(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("second GetDel: %v", err)
	}
}

func TestMemoryStore_GetDelHonoursTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.GetDel(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired key: %v", err)
	}
}

func TestMemoryStore_GetDelHasOneWinner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Set(ctx, "token", []byte("court-1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.GetDel(ctx, "token"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("wins = %d, want 1", wins)
	}
}
