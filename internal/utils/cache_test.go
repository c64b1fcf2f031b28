package utils

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, int]()

	cache.Set("key1", 42)
	value, exists := cache.Get("key1")
	if !exists {
		t.Error("expected key1 to exist")
	}
	if value != 42 {
		t.Errorf("expected value 42, got %d", value)
	}

	_, exists = cache.Get("nonexistent")
	if exists {
		t.Error("expected nonexistent key to not exist")
	}

	cache.Delete("key1")
	_, exists = cache.Get("key1")
	if exists {
		t.Error("expected key1 to be deleted")
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	cache := NewCache[int, string]()
	calls := 0
	create := func(n int) string {
		calls++
		return strings.Repeat(" ", n)
	}

	first := cache.GetOrCreate(4, create)
	second := cache.GetOrCreate(4, create)

	if first != "    " || second != first {
		t.Errorf("expected four spaces twice, got %q and %q", first, second)
	}
	if calls != 1 {
		t.Errorf("expected create to run once, ran %d times", calls)
	}
	if cache.Size() != 1 {
		t.Errorf("expected 1 entry, got %d", cache.Size())
	}
}

func TestCache_GetOrCreateConcurrent(t *testing.T) {
	cache := NewCache[int, string]()
	var created atomic.Int64

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.GetOrCreate(i%4, func(n int) string {
				created.Add(1)
				return fmt.Sprintf("value-%d", n)
			})
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if want := fmt.Sprintf("value-%d", i%4); got != want {
			t.Errorf("result %d: expected %s, got %s", i, want, got)
		}
	}
	if cache.Size() != 4 {
		t.Errorf("expected 4 entries, got %d", cache.Size())
	}
	if created.Load() < 4 {
		t.Errorf("expected at least 4 creations, got %d", created.Load())
	}
}
