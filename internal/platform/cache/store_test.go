package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	if _, ok := s.Get(ctx, "teams"); ok {
		t.Fatal("expected miss on empty store")
	}

	s.Set(ctx, "teams", []string{"arg", "bra"})
	v, ok := s.Get(ctx, "teams")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if teams := v.([]string); len(teams) != 2 {
		t.Fatalf("unexpected cached value: %v", v)
	}

	s.Delete(ctx, "teams")
	if _, ok := s.Get(ctx, "teams"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	loads := 0
	load := func(context.Context) (any, error) {
		loads++
		return "groups", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrLoad(ctx, "groups", load)
		if err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
		if v != "groups" {
			t.Fatalf("load %d: unexpected value %v", i, v)
		}
	}
	if loads != 1 {
		t.Fatalf("expected a single load, got %d", loads)
	}
}

func TestStore_GetOrLoadErrorNotCached(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	boom := errors.New("catalog down")
	calls := 0
	load := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	if _, err := s.GetOrLoad(ctx, "k", load); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	v, err := s.GetOrLoad(ctx, "k", load)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to succeed, got %v %v", v, err)
	}
}
