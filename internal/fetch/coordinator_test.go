package fetch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gridworks/dataview/internal/field"
)

func groupsFor(schema string) []field.ChildGroup {
	return []field.ChildGroup{{Schema: schema, Data: []field.Row{{Values: map[string]any{"id": "1"}}}}}
}

func TestCoordinatorMemoizesLastKey(t *testing.T) {
	c := NewCoordinator()
	key := Key{SourceSchema: "invoices", SourceID: "inv-1", TargetSchema: "line-items"}

	var calls atomic.Int32
	fn := func(context.Context) ([]field.ChildGroup, error) {
		calls.Add(1)
		return groupsFor("line-items"), nil
	}

	for i := 0; i < 3; i++ {
		groups, err := c.Do(context.Background(), key, fn)
		if err != nil {
			t.Fatalf("Do = %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("groups = %v", groups)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("fn called %d times, want 1", n)
	}
}

func TestCoordinatorSharesInflightFetch(t *testing.T) {
	c := NewCoordinator()
	key := Key{SourceSchema: "invoices", SourceID: "inv-1", TargetSchema: "line-items"}

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(context.Context) ([]field.ChildGroup, error) {
		calls.Add(1)
		<-release
		return groupsFor("line-items"), nil
	}

	const waiters = 5
	var wg sync.WaitGroup
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Do(context.Background(), key, fn)
		}(i)
	}

	// Let the goroutines pile up on the single in-flight entry, then release.
	for calls.Load() == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("waiter %d: %v", i, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("fn called %d times, want 1", n)
	}
}

func TestCoordinatorStaleCompletionNotMemoized(t *testing.T) {
	c := NewCoordinator()
	oldKey := Key{SourceID: "inv-1", TargetSchema: "line-items"}
	newKey := Key{SourceID: "inv-2", TargetSchema: "line-items"}

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Do(context.Background(), oldKey, func(context.Context) ([]field.ChildGroup, error) {
			close(started)
			<-release
			return groupsFor("stale"), nil
		})
	}()

	<-started
	// A newer request supersedes the old one before it completes.
	if _, err := c.Do(context.Background(), newKey, func(context.Context) ([]field.ChildGroup, error) {
		return groupsFor("fresh"), nil
	}); err != nil {
		t.Fatalf("Do(new) = %v", err)
	}
	close(release)
	wg.Wait()

	// The stale completion must not have displaced the newer memo entry.
	var calls atomic.Int32
	groups, err := c.Do(context.Background(), newKey, func(context.Context) ([]field.ChildGroup, error) {
		calls.Add(1)
		return groupsFor("refetched"), nil
	})
	if err != nil {
		t.Fatalf("Do = %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("newer key was evicted from the memo by a stale completion")
	}
	if groups[0].Schema != "fresh" {
		t.Fatalf("memo = %q, want fresh", groups[0].Schema)
	}
}

func TestCoordinatorErrorNotMemoized(t *testing.T) {
	c := NewCoordinator()
	key := Key{SourceID: "inv-1"}
	boom := errors.New("boom")

	if _, err := c.Do(context.Background(), key, func(context.Context) ([]field.ChildGroup, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Do = %v, want boom", err)
	}

	var calls atomic.Int32
	if _, err := c.Do(context.Background(), key, func(context.Context) ([]field.ChildGroup, error) {
		calls.Add(1)
		return groupsFor("ok"), nil
	}); err != nil {
		t.Fatalf("Do = %v", err)
	}
	if calls.Load() != 1 {
		t.Fatal("failed fetch was memoized")
	}
}

func TestCoordinatorInvalidate(t *testing.T) {
	c := NewCoordinator()
	key := Key{SourceID: "inv-1"}

	var calls atomic.Int32
	fn := func(context.Context) ([]field.ChildGroup, error) {
		calls.Add(1)
		return groupsFor("x"), nil
	}

	c.Do(context.Background(), key, fn)
	c.Invalidate()
	c.Do(context.Background(), key, fn)

	if n := calls.Load(); n != 2 {
		t.Fatalf("fn called %d times after invalidate, want 2", n)
	}
}

func TestKeyString(t *testing.T) {
	k := Key{SourceSchema: "a", SourceID: "b", TargetSchema: "c", RelationType: "d"}
	if k.String() != "a/b/c/d" {
		t.Fatalf("String = %q", k.String())
	}
}
