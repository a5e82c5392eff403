package core

import (
	"sync"
	"time"

	"github.com/mgatere/termfolio/internal/history"
)

// FallbackState tracks fallback requests the service has accepted but not yet answered.
type FallbackState struct {
	mu        sync.RWMutex
	inFlight  map[history.EntryID]time.Time
	served    int
	failed    int
	lastError error
	now       func() time.Time
}

func NewFallbackState() *FallbackState {
	return &FallbackState{
		inFlight: make(map[history.EntryID]time.Time),
		now:      time.Now,
	}
}

// Begin marks id as in flight. It returns false if id is already being answered.
func (fs *FallbackState) Begin(id history.EntryID) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.inFlight[id]; ok {
		return false
	}
	fs.inFlight[id] = fs.now()
	return true
}

// Finish removes id and records the outcome. It returns how long the request took.
func (fs *FallbackState) Finish(id history.EntryID, err error) time.Duration {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	started, ok := fs.inFlight[id]
	delete(fs.inFlight, id)

	if err != nil {
		fs.failed++
		fs.lastError = err
	} else {
		fs.served++
	}

	if !ok {
		return 0
	}
	return fs.now().Sub(started)
}

func (fs *FallbackState) InFlight() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.inFlight)
}

func (fs *FallbackState) IsProcessing() bool {
	return fs.InFlight() > 0
}

// Counts returns how many requests were answered and how many failed.
func (fs *FallbackState) Counts() (served, failed int) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.served, fs.failed
}

func (fs *FallbackState) GetLastError() error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.lastError
}
