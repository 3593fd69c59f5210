package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CachedSession is the per-session state the chatbot needs on every
// turn. Caching it saves two lookups per message.
type CachedSession struct {
	SessionId      uuid.UUID
	UserId         uuid.UUID
	MeetingId      uuid.UUID
	Title          string
	CollectionBase string
}

type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Default expiration of 1 hour, expired entries purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *CachedSession) {
	r.cache.Set(session.SessionId.String(), session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionId uuid.UUID) (*CachedSession, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*CachedSession), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
