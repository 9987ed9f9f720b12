package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ClaimCodeIsCompareAndSwap(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateCode(&models.Code{ID: "c1", SessionID: "s1", CodeString: "X"}))

	const n = 100
	var wg sync.WaitGroup
	wins := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			won, err := store.ClaimCode("c1", "team-a", time.Now())
			assert.NoError(t, err)
			wins[i] = won
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	code, err := store.GetCode("c1")
	require.NoError(t, err)
	require.True(t, code.Redeemed())
	assert.Equal(t, "team-a", *code.UsedByTeamID)
}

func TestMemory_AddTeamPointsNeverLosesUpdates(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateTeam(&models.Team{ID: "t1", SessionID: "s1", Name: "A"}))

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddTeamPoints("t1", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	team, err := store.GetTeam("t1")
	require.NoError(t, err)
	assert.Equal(t, n*3, team.TotalPoints)
}

func TestMemory_GetActiveSessionPrefersActive(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(&models.Session{ID: "old", Status: models.SessionStatusEnded}))
	require.NoError(t, store.CreateSession(&models.Session{ID: "running", Status: models.SessionStatusActive}))
	require.NoError(t, store.CreateSession(&models.Session{ID: "pending", Status: models.SessionStatusSetup}))

	session, err := store.GetActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "running", session.ID)
}

func TestMemory_GetActiveSessionFallsBackToNewestSetup(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(&models.Session{ID: "first", Status: models.SessionStatusSetup}))
	require.NoError(t, store.CreateSession(&models.Session{ID: "second", Status: models.SessionStatusSetup}))

	session, err := store.GetActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "second", session.ID)
}

func TestMemory_GetActiveSessionEmpty(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.GetActiveSession()
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestMemory_GetCodeByStringResolvesFirstCreated(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateCode(&models.Code{ID: "c1", SessionID: "s1", CodeString: "DUP"}))
	require.NoError(t, store.CreateCode(&models.Code{ID: "c2", SessionID: "s1", CodeString: "DUP"}))

	code, err := store.GetCodeByString("s1", "DUP")
	require.NoError(t, err)
	assert.Equal(t, "c1", code.ID)

	won, err := store.ClaimCode("c1", "team-a", time.Now())
	require.NoError(t, err)
	require.True(t, won)

	// Still the first row, now redeemed.
	code, err = store.GetCodeByString("s1", "DUP")
	require.NoError(t, err)
	assert.Equal(t, "c1", code.ID)
	assert.True(t, code.Redeemed())
}

func TestMemory_SetSessionHeatLeavesStatusAlone(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(&models.Session{ID: "s1", Status: models.SessionStatusActive}))

	require.NoError(t, store.SetSessionHeat("s1", 7))

	session, err := store.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, 7, session.JackpotHeat)
	assert.Equal(t, models.SessionStatusActive, session.Status)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(&models.Session{ID: "s1", Status: models.SessionStatusSetup}))

	session, err := store.GetSession("s1")
	require.NoError(t, err)
	session.Status = models.SessionStatusEnded

	fresh, err := store.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusSetup, fresh.Status)
}

func TestMemory_GetSessionForUpdate(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(&models.Session{ID: "s1", Status: models.SessionStatusActive, JackpotHeat: 7}))

	session, err := store.GetSessionForUpdate("s1")
	require.NoError(t, err)
	assert.Equal(t, 7, session.JackpotHeat)

	_, err = store.GetSessionForUpdate("missing")
	assert.ErrorIs(t, err, game.ErrNotFound)
}
