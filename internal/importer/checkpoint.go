package importer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Checkpoint is a file-persisted idempotency ledger keyed by item identifier.
// Batch jobs skip items already in the ledger and append each identifier as
// it completes, so an interrupted run resumes where it left off.
type Checkpoint struct {
	mu   sync.Mutex
	path string
	done map[string]struct{}
	f    *os.File
}

// OpenCheckpoint loads (or creates) the ledger file at path.
func OpenCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	done := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key := strings.TrimSpace(sc.Text())
		if key != "" {
			done[key] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	return &Checkpoint{path: path, done: done, f: f}, nil
}

// Done reports whether the item was already completed by a previous run.
func (c *Checkpoint) Done(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.done[key]
	return ok
}

// MarkDone records a completed item and persists it immediately.
func (c *Checkpoint) MarkDone(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.done[key]; ok {
		return nil
	}
	if _, err := fmt.Fprintln(c.f, key); err != nil {
		return fmt.Errorf("append checkpoint %s: %w", c.path, err)
	}
	if err := c.f.Sync(); err != nil {
		return fmt.Errorf("sync checkpoint %s: %w", c.path, err)
	}
	c.done[key] = struct{}{}
	return nil
}

// Count returns the number of completed items.
func (c *Checkpoint) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.done)
}

func (c *Checkpoint) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.f.Close()
}
