package services

import (
	"testing"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"
	"github.com/katarmal-ram/huntqr/internal/storage"
	"github.com/katarmal-ram/huntqr/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionService, *storage.MemoryStore, *ws.Hub) {
	t.Helper()
	store := storage.NewMemoryStore()
	hub := ws.NewHub()
	teams := NewTeamService(store)
	return NewSessionService(store, hub, teams), store, hub
}

func TestSession_CreateStartsInSetup(t *testing.T) {
	sessions, store, _ := newSessionFixture(t)

	session, err := sessions.Create("Friday Hunt", 600)
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusSetup, session.Status)
	assert.Equal(t, 0, session.JackpotHeat)
	assert.Equal(t, 600, session.TimerSeconds)
	assert.Nil(t, session.StartAt)
	assert.Nil(t, session.EndAt)

	teams, err := store.SessionTeams(session.ID)
	require.NoError(t, err)
	require.Len(t, teams, 5)
	assert.Equal(t, "Team Alpha", teams[0].Name)
	assert.Equal(t, "team-5", teams[4].Color)
}

func TestSession_CreateDefaultsTimer(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)

	session, err := sessions.Create("Hunt", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimerSeconds, session.TimerSeconds)
}

func TestSession_CreateRejectsWhileOpen(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)

	first, err := sessions.Create("First", 900)
	require.NoError(t, err)

	_, err = sessions.Create("Second", 900)
	assert.ErrorIs(t, err, game.ErrConflict)

	// Once the open session is ended, creation works again.
	_, err = sessions.End(first.ID)
	require.NoError(t, err)
	_, err = sessions.Create("Second", 900)
	assert.NoError(t, err)
}

func TestSession_StartStampsWindow(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	session, err := sessions.Create("Hunt", 900)
	require.NoError(t, err)

	started, err := sessions.Start(session.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusActive, started.Status)
	require.NotNil(t, started.StartAt)
	require.NotNil(t, started.EndAt)
	assert.Equal(t, now, *started.StartAt)
	assert.Equal(t, now.Add(900*time.Second), *started.EndAt)
}

func TestSession_StartOnlyFromSetup(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)

	session, err := sessions.Create("Hunt", 900)
	require.NoError(t, err)

	_, err = sessions.Start(session.ID)
	require.NoError(t, err)

	_, err = sessions.Start(session.ID)
	assert.ErrorIs(t, err, game.ErrInvalidState)

	_, err = sessions.End(session.ID)
	require.NoError(t, err)

	_, err = sessions.Start(session.ID)
	assert.ErrorIs(t, err, game.ErrInvalidState)
}

func TestSession_EndIsIdempotent(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)

	session, err := sessions.Create("Hunt", 900)
	require.NoError(t, err)
	_, err = sessions.Start(session.ID)
	require.NoError(t, err)

	ended, err := sessions.End(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusEnded, ended.Status)
	require.NotNil(t, ended.EndAt)

	again, err := sessions.End(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusEnded, again.Status)
	assert.Equal(t, *ended.EndAt, *again.EndAt)
}

func TestSession_EndFromSetupAborts(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)

	session, err := sessions.Create("Hunt", 900)
	require.NoError(t, err)

	ended, err := sessions.End(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusEnded, ended.Status)
	require.NotNil(t, ended.EndAt)
}

func TestSession_ExpiredOnlyWhenPastEndAt(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	session, err := sessions.Create("Hunt", 900)
	require.NoError(t, err)
	assert.False(t, sessions.Expired(session))

	started, err := sessions.Start(session.ID)
	require.NoError(t, err)
	assert.False(t, sessions.Expired(started))

	sessions.now = func() time.Time { return now.Add(901 * time.Second) }
	assert.True(t, sessions.Expired(started))
}

func TestSession_LifecycleEventsPublished(t *testing.T) {
	sessions, _, hub := newSessionFixture(t)

	session, err := sessions.Create("Hunt", 900)
	require.NoError(t, err)

	sub := hub.Subscribe(session.ID)
	defer hub.Unsubscribe(sub)

	_, err = sessions.Start(session.ID)
	require.NoError(t, err)
	_, err = sessions.End(session.ID)
	require.NoError(t, err)

	started := <-sub.Events()
	assert.Equal(t, ws.EventSessionStarted, started.Type)
	assert.Equal(t, session.ID, started.SessionID)
	require.NotNil(t, started.Session)
	assert.Equal(t, models.SessionStatusActive, started.Session.Status)

	ended := <-sub.Events()
	assert.Equal(t, ws.EventSessionEnded, ended.Type)

	// No event for the idempotent re-end.
	_, err = sessions.End(session.ID)
	require.NoError(t, err)
	select {
	case e := <-sub.Events():
		t.Fatalf("unexpected event %q", e.Type)
	default:
	}
}
