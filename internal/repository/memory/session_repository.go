package memory

import (
	"talk-rag-be/pkg/rag/session"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds live chat sessions in process memory. Sessions do
// not expire on their own; they live until explicitly destroyed.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(s *session.Session) {
	r.cache.Set(s.Key, s, cache.NoExpiration)
}

func (r *SessionRepository) Get(key string) (*session.Session, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*session.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(key string) {
	r.cache.Delete(key)
}
