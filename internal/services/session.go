package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"
	"github.com/katarmal-ram/huntqr/internal/storage"
	"github.com/katarmal-ram/huntqr/internal/ws"

	"github.com/google/uuid"
)

const DefaultTimerSeconds = 900

// SessionService owns the session lifecycle: setup -> active -> ended, no
// skips, no reversals, ended terminal. It also owns the jackpot-heat counter
// (reset at create, read and advanced only through the redemption path) and
// the auto-end timer scheduled at start.
type SessionService struct {
	store storage.Store
	hub   *ws.Hub
	teams *TeamService
	now   func() time.Time

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewSessionService(store storage.Store, hub *ws.Hub, teams *TeamService) *SessionService {
	return &SessionService{
		store:  store,
		hub:    hub,
		teams:  teams,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// Create makes a new session in setup with heat 0 and seeds the default
// teams. One open session at a time: creation is rejected while any session
// is not yet ended.
func (s *SessionService) Create(name string, timerSeconds int) (*models.Session, error) {
	if _, err := s.store.GetOpenSession(); err == nil {
		return nil, fmt.Errorf("%w: a session is already open", game.ErrConflict)
	} else if !errors.Is(err, game.ErrNotFound) {
		return nil, err
	}

	if timerSeconds <= 0 {
		timerSeconds = DefaultTimerSeconds
	}

	session := &models.Session{
		ID:           uuid.NewString(),
		Name:         name,
		Status:       models.SessionStatusSetup,
		TimerSeconds: timerSeconds,
		JackpotHeat:  0,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, err
	}

	if err := s.teams.SeedDefaults(session.ID); err != nil {
		return nil, err
	}

	log.Printf("session: created %q (%s, %ds)", session.Name, session.ID, session.TimerSeconds)
	s.hub.Publish(ws.Event{
		SessionID: session.ID,
		Type:      ws.EventSessionCreated,
		Session:   session,
	})
	return session, nil
}

// Active returns the session players currently see: the active one, or the
// newest one still in setup.
func (s *SessionService) Active() (*models.Session, error) {
	return s.store.GetActiveSession()
}

func (s *SessionService) Get(id string) (*models.Session, error) {
	return s.store.GetSession(id)
}

// Start transitions setup -> active and stamps the game window.
func (s *SessionService) Start(sessionID string) (*models.Session, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusSetup {
		return nil, fmt.Errorf("%w: cannot start a %s session", game.ErrInvalidState, session.Status)
	}

	startAt := s.now()
	endAt := startAt.Add(time.Duration(session.TimerSeconds) * time.Second)
	session.Status = models.SessionStatusActive
	session.StartAt = &startAt
	session.EndAt = &endAt

	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}

	s.scheduleAutoEnd(session.ID, endAt.Sub(startAt))

	log.Printf("session: started %s, ends at %s", session.ID, endAt.Format(time.RFC3339))
	s.hub.Publish(ws.Event{
		SessionID: session.ID,
		Type:      ws.EventSessionStarted,
		Session:   session,
	})
	return session, nil
}

// End transitions to ended from active, or from setup as an abort. Ending an
// already-ended session is a no-op success.
func (s *SessionService) End(sessionID string) (*models.Session, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusEnded {
		return session, nil
	}

	if session.EndAt == nil || session.EndAt.After(s.now()) {
		endAt := s.now()
		session.EndAt = &endAt
	}
	session.Status = models.SessionStatusEnded

	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}

	s.cancelAutoEnd(session.ID)

	log.Printf("session: ended %s", session.ID)
	s.hub.Publish(ws.Event{
		SessionID: session.ID,
		Type:      ws.EventSessionEnded,
		Session:   session,
	})
	return session, nil
}

// Expired reports whether an active session has run out its timer. The
// redemption path checks this lazily so the engine converges to ended even
// if the timer goroutine never fires.
func (s *SessionService) Expired(session *models.Session) bool {
	return session.Status == models.SessionStatusActive &&
		session.EndAt != nil &&
		!s.now().Before(*session.EndAt)
}

func (s *SessionService) scheduleAutoEnd(sessionID string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[sessionID] = time.AfterFunc(d, func() {
		if _, err := s.End(sessionID); err != nil {
			log.Printf("session: auto-end of %s failed: %v", sessionID, err)
		}
	})
}

func (s *SessionService) cancelAutoEnd(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[sessionID]; ok {
		timer.Stop()
		delete(s.timers, sessionID)
	}
}
