package setup

import (
	"sync"
	"time"

	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
)

// SessionGauge receives the number of open setup sessions
type SessionGauge interface {
	SetActiveSetupSessions(n int)
}

type sessionKey struct {
	guildID string
	userID  string
}

// Session is one user's in-progress wizard and the interaction that opened it.
// Wizard must only be touched while holding the session lock.
type Session struct {
	Wizard      *service.SetupWizard
	Interaction *discordgo.Interaction
	timer       *time.Timer

	mu sync.Mutex
}

// SessionStore holds wizard drafts per (guild, user) until they complete or expire
type SessionStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
	timeout  time.Duration
	gauge    SessionGauge
}

// NewSessionStore creates an empty store. gauge may be nil.
func NewSessionStore(timeout time.Duration, gauge SessionGauge) *SessionStore {
	return &SessionStore{
		sessions: make(map[sessionKey]*Session),
		timeout:  timeout,
		gauge:    gauge,
	}
}

// Start opens a session, replacing any earlier one for the same user. onExpire runs
// after the timeout if the session is still open at that point.
func (st *SessionStore) Start(guildID, userID string, base *models.GuildConfig, interaction *discordgo.Interaction, now time.Time, onExpire func(*Session)) *Session {
	key := sessionKey{guildID, userID}
	sess := &Session{
		Wizard:      service.NewSetupWizard(guildID, userID, base, now),
		Interaction: interaction,
	}

	st.mu.Lock()
	if old, ok := st.sessions[key]; ok && old.timer != nil {
		old.timer.Stop()
	}
	st.sessions[key] = sess
	sess.timer = time.AfterFunc(st.timeout, func() {
		if st.removeIf(key, sess) && onExpire != nil {
			onExpire(sess)
		}
	})
	count := len(st.sessions)
	st.mu.Unlock()

	st.report(count)
	return sess
}

// Get returns the open session for a user, or nil
func (st *SessionStore) Get(guildID, userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[sessionKey{guildID, userID}]
}

// Finish closes a user's session and stops its timer
func (st *SessionStore) Finish(guildID, userID string) {
	key := sessionKey{guildID, userID}

	st.mu.Lock()
	sess, ok := st.sessions[key]
	if ok {
		if sess.timer != nil {
			sess.timer.Stop()
		}
		delete(st.sessions, key)
	}
	count := len(st.sessions)
	st.mu.Unlock()

	if ok {
		st.report(count)
	}
}

// Acquire returns the user's open session locked, or nil. The caller must Unlock it.
// A session finished or replaced while waiting for the lock is reported as nil.
func (st *SessionStore) Acquire(guildID, userID string) *Session {
	sess := st.Get(guildID, userID)
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	if st.Get(guildID, userID) != sess {
		sess.mu.Unlock()
		return nil
	}
	return sess
}

// Unlock releases a session returned by Acquire
func (sess *Session) Unlock() {
	sess.mu.Unlock()
}

// Len returns the number of open sessions
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) removeIf(key sessionKey, sess *Session) bool {
	st.mu.Lock()
	current, ok := st.sessions[key]
	if !ok || current != sess {
		st.mu.Unlock()
		return false
	}
	delete(st.sessions, key)
	count := len(st.sessions)
	st.mu.Unlock()

	st.report(count)
	return true
}

func (st *SessionStore) report(count int) {
	if st.gauge != nil {
		st.gauge.SetActiveSetupSessions(count)
	}
}
