// Package fetch is the data-fetching collaborator at its interface
// boundary: HTTP clients for schema and relation endpoints, and the request
// coordinator that guarantees at most one in-flight relation resolution per
// key. The rendering core never imports this package — it only ever consumes
// an already-resolved row snapshot.
package fetch

import (
	"context"
	"sync"

	"github.com/gridworks/dataview/internal/field"
)

// Key identifies one relation resolution.
type Key struct {
	SourceSchema string
	SourceID     string
	TargetSchema string
	RelationType string
}

// String renders the de-duplication key.
func (k Key) String() string {
	return k.SourceSchema + "/" + k.SourceID + "/" + k.TargetSchema + "/" + k.RelationType
}

type inflight struct {
	done   chan struct{}
	groups []field.ChildGroup
	err    error
}

// Coordinator de-duplicates concurrent relation fetches and memoizes the
// last completed key. It is an explicit, injectable object — no package
// state — scoped to the consuming context.
type Coordinator struct {
	mu        sync.Mutex
	inflight  map[string]*inflight
	latestKey string
	lastKey   string
	lastValue []field.ChildGroup
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{inflight: make(map[string]*inflight)}
}

// Do resolves a relation through fn with three guarantees: a repeat of the
// most recently completed key returns the memoized snapshot without calling
// fn; concurrent calls for the same key share a single fn invocation; and a
// completion whose key is no longer the latest requested is returned to its
// caller but not committed to the memo (cancellation by irrelevance).
func (c *Coordinator) Do(ctx context.Context, key Key, fn func(context.Context) ([]field.ChildGroup, error)) ([]field.ChildGroup, error) {
	ks := key.String()

	c.mu.Lock()
	if c.lastKey == ks {
		value := c.lastValue
		c.mu.Unlock()
		return value, nil
	}
	if fl, ok := c.inflight[ks]; ok {
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.groups, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	fl := &inflight{done: make(chan struct{})}
	c.inflight[ks] = fl
	c.latestKey = ks
	c.mu.Unlock()

	fl.groups, fl.err = fn(ctx)
	close(fl.done)

	c.mu.Lock()
	delete(c.inflight, ks)
	// Commit only if no newer key was requested while we were fetching.
	if c.latestKey == ks && fl.err == nil {
		c.lastKey = ks
		c.lastValue = fl.groups
	}
	c.mu.Unlock()

	return fl.groups, fl.err
}

// Invalidate clears the last-key memo, forcing the next Do to fetch.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	c.lastKey = ""
	c.lastValue = nil
	c.mu.Unlock()
}
