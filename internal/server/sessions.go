package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"echolens/internal/hunt"
)

const (
	sessionCookie      = "echolens_session"
	sessionIdleTimeout = 30 * time.Minute
)

type session struct {
	console  *hunt.Console
	lastSeen time.Time
	conns    int
}

// sessionStore keeps one console per browser session
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	idle     time.Duration
	now      func() time.Time
}

func newSessionStore(idle time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		idle:     idle,
		now:      time.Now,
	}
}

// get returns the console for id, creating the session when it is unknown
func (st *sessionStore) get(id string, create func() *hunt.Console) *hunt.Console {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.expireLocked(now)

	sess, ok := st.sessions[id]
	if !ok {
		sess = &session{console: create()}
		st.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess.console
}

// attach marks a live connection so the session is not expired under it
func (st *sessionStore) attach(id string, delta int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[id]; ok {
		sess.conns += delta
		sess.lastSeen = st.now()
	}
}

func (st *sessionStore) expireLocked(now time.Time) {
	for id, sess := range st.sessions {
		if sess.conns == 0 && now.Sub(sess.lastSeen) > st.idle {
			sess.console.Close()
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *sessionStore) closeAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		sess.console.Close()
		delete(st.sessions, id)
	}
}

// sessionID reads the session cookie, issuing a new one when it is missing or malformed
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// console returns the hunt console of the requesting session
func (s *Server) console(w http.ResponseWriter, r *http.Request) (string, *hunt.Console) {
	id := sessionID(w, r)
	return id, s.sessions.get(id, s.newConsole)
}
