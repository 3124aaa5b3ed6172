package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/application"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookie = "gallery_session"
	sweepInterval = time.Minute
)

// notice is a one-shot message shown on the next page render.
type notice struct {
	Text  string
	Error bool
}

// session is one visitor's page: its document and the controller driving it.
type session struct {
	id         string
	doc        *application.Document
	controller *application.Controller

	mu       sync.Mutex
	lastSeen time.Time
	notice   *notice
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *session) setNotice(text string, isError bool) {
	s.mu.Lock()
	s.notice = &notice{Text: text, Error: isError}
	s.mu.Unlock()
}

// takeNotice returns and clears the pending notice.
func (s *session) takeNotice() *notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = nil
	return n
}

// SessionRegistry keeps visitor sessions in memory and drops idle ones.
type SessionRegistry struct {
	newSession func(id string) *session
	ttl        time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSessionRegistry(ttl time.Duration, newSession func(id string) *session) *SessionRegistry {
	ctx, cancel := context.WithCancel(context.Background())
	r := &SessionRegistry{
		newSession: newSession,
		ttl:        ttl,
		now:        time.Now,
		sessions:   make(map[string]*session),
		ctx:        ctx,
		cancel:     cancel,
	}

	if ttl > 0 {
		r.wg.Add(1)
		go r.sweepLoop()
	}
	return r
}

// Close stops the background sweeper.
func (r *SessionRegistry) Close() error {
	r.cancel()
	r.wg.Wait()
	return nil
}

// Lookup returns the caller's session, creating one and setting the cookie
// when the request carries none or an unknown id.
func (r *SessionRegistry) Lookup(c *gin.Context) (*session, bool) {
	now := r.now()

	if id, err := c.Cookie(sessionCookie); err == nil {
		r.mu.Lock()
		s, ok := r.sessions[id]
		r.mu.Unlock()
		if ok {
			s.touch(now)
			return s, false
		}
	}

	s := r.newSession(uuid.NewString())
	s.touch(now)

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s, true
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) sweepLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			if n := r.sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("Dropped idle sessions")
			}
		}
	}
}

// sweep removes sessions idle for longer than the ttl.
func (r *SessionRegistry) sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
