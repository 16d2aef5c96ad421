// Package session keeps the ephemeral conversation contexts used to talk to
// the model gateway. A context lives for exactly one request: created,
// one message submitted, discarded.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a conversation context is referenced
// before creation or after it has been discarded.
var ErrSessionNotFound = errors.New("session not found")

// Session identifies one registered conversation context. Values are only
// obtainable from Store.Create, so holding one proves creation completed
// before any message is submitted.
type Session struct {
	AppName   string
	UserID    string
	ID        string
	CreatedAt time.Time
}

func (s *Session) key() string {
	return s.AppName + "/" + s.UserID + "/" + s.ID
}

// Store is an in-memory session registry. Requests never share sessions, so
// the mutex only guards the map itself.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a fresh conversation context and returns it once the
// registration is complete. There is no fire-and-forget path: callers must
// hold the returned Session before submitting anything to the gateway.
func (st *Store) Create(ctx context.Context, appName, userID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if appName == "" || userID == "" {
		return nil, errors.New("app name and user id are required")
	}

	sess := &Session{
		AppName:   appName,
		UserID:    userID,
		ID:        fmt.Sprintf("pdf_session_%s", shortID()),
		CreatedAt: time.Now(),
	}

	st.mu.Lock()
	st.sessions[sess.key()] = sess
	st.mu.Unlock()
	return sess, nil
}

// Valid reports whether the session is currently registered.
func (st *Store) Valid(sess *Session) bool {
	if sess == nil {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[sess.key()]
	return ok
}

// Discard removes the session from the registry. Submitting to a discarded
// session yields ErrSessionNotFound.
func (st *Store) Discard(sess *Session) {
	if sess == nil {
		return
	}
	st.mu.Lock()
	delete(st.sessions, sess.key())
	st.mu.Unlock()
}

// Len reports the number of live sessions; outside tests this should be the
// number of in-flight requests.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
