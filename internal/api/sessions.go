package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/toyshop/internal/game"
)

// idleSessionTTL is how long an untouched game survives before the
// registry prunes it. Abandoned browser tabs should not pin memory.
const idleSessionTTL = 2 * time.Hour

// registry tracks running games by ID. Each game belongs to one player;
// the registry lock serializes access so the single-threaded core is
// never entered concurrently.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	game    *game.Session
	touched time.Time
}

func newRegistry() *registry {
	r := &registry{sessions: make(map[string]*sessionEntry)}
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			r.prune()
		}
	}()
	return r
}

// add stores a started session under a fresh ID.
func (r *registry) add(sess *game.Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &sessionEntry{game: sess, touched: time.Now()}
	return id
}

// with runs fn against the named session under the registry lock.
// Returns false if the session does not exist.
func (r *registry) with(id string, fn func(*game.Session)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return false
	}
	e.touched = time.Now()
	fn(e.game)
	return true
}

// remove resets and drops the named session. Returns false if absent.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return false
	}
	e.game.Reset()
	delete(r.sessions, id)
	return true
}

// count returns the number of live sessions.
func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *registry) prune() {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-idleSessionTTL)
	for id, e := range r.sessions {
		if e.touched.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
