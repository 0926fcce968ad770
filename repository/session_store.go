package repository

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"gstinvoice/models"
)

// SessionStore keeps browser sessions by cookie id with a sliding expiry.
type SessionStore struct {
	sessions *expirable.LRU[string, models.Session]
}

func NewSessionStore(size int, ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: expirable.NewLRU[string, models.Session](size, nil, ttl)}
}

func (s *SessionStore) Get(id string) (models.Session, bool) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return models.Session{}, false
	}
	sess.Flashes = append([]models.Flash(nil), sess.Flashes...)
	return sess, true
}

func (s *SessionStore) Save(sess models.Session) {
	s.sessions.Add(sess.ID, sess)
}

func (s *SessionStore) Delete(id string) {
	s.sessions.Remove(id)
}
