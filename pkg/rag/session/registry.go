package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"talk-rag-be/pkg/rag/ragerr"

	"github.com/google/uuid"
)

// Store is the backing map the registry keeps sessions in.
type Store interface {
	Save(session *Session)
	Get(key string) (*Session, bool)
	Delete(key string)
}

// Registry is the process-wide session table. Create is idempotent: two
// concurrent creates for the same key observe the same instance, and the
// factory runs at most once per key. Builds are latched per key, so a slow
// build (embedding a large document scope) never blocks lookups or creates
// for other keys.
type Registry struct {
	store    Store
	mu       sync.Mutex
	building map[string]*buildCall
}

// buildCall latches one in-flight factory run. done is closed after sess and
// err are final.
type buildCall struct {
	done chan struct{}
	sess *Session
	err  error
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		store:    store,
		building: make(map[string]*buildCall),
	}
}

// Key derives the canonical registry key for a bot and its scope parts.
func Key(botID uuid.UUID, scope []string) string {
	parts := append([]string{botID.String()}, scope...)
	return strings.Join(parts, "_")
}

// GetOrCreate returns the session for key, invoking factory to build it only
// when the key is absent. The registry lock is held just to claim the key;
// the factory itself runs outside it behind a per-key latch. A concurrent
// create for the same key waits on the latch and observes the winner's
// result; a failed build is surfaced to every waiter.
func (r *Registry) GetOrCreate(ctx context.Context, key string, factory func(ctx context.Context) (*Session, error)) (*Session, bool, error) {
	r.mu.Lock()
	if s, found := r.store.Get(key); found {
		r.mu.Unlock()
		return s, false, nil
	}
	if c, found := r.building[key]; found {
		r.mu.Unlock()
		<-c.done
		if c.err != nil {
			return nil, false, c.err
		}
		return c.sess, false, nil
	}
	c := &buildCall{done: make(chan struct{})}
	r.building[key] = c
	r.mu.Unlock()

	s, err := factory(ctx)
	if err == nil && s == nil {
		err = fmt.Errorf("session factory returned nil for key %s", key)
	}

	r.mu.Lock()
	if err == nil {
		r.store.Save(s)
		c.sess = s
	}
	c.err = err
	delete(r.building, key)
	r.mu.Unlock()
	close(c.done)

	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Get returns the session for key or a SessionNotFoundError.
func (r *Registry) Get(key string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, found := r.store.Get(key)
	if !found {
		return nil, &ragerr.SessionNotFoundError{SessionID: key}
	}
	return s, nil
}

// Destroy removes the session and releases its index. Destroying an unknown
// key returns a SessionNotFoundError.
func (r *Registry) Destroy(ctx context.Context, key string) error {
	r.mu.Lock()
	s, found := r.store.Get(key)
	if found {
		r.store.Delete(key)
	}
	r.mu.Unlock()

	if !found {
		return &ragerr.SessionNotFoundError{SessionID: key}
	}
	return s.Close(ctx)
}
