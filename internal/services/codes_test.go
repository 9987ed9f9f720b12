package services

import (
	"testing"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes_AddNormalizes(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	code, err := codes.Add("s1", "  alpha1 ")
	require.NoError(t, err)
	assert.Equal(t, "ALPHA1", code.CodeString)
	assert.False(t, code.Redeemed())
}

func TestCodes_AddRejectsEmpty(t *testing.T) {
	codes := NewCodeService(storage.NewMemoryStore())

	_, err := codes.Add("s1", "   ")
	assert.ErrorIs(t, err, game.ErrConflict)
}

func TestCodes_ClaimIsCaseInsensitive(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	added, err := codes.Add("s1", "ALPHA1")
	require.NoError(t, err)

	claimed, err := codes.Claim(store, "s1", "alpha1", "team-a", time.Now())
	require.NoError(t, err)
	assert.Equal(t, added.ID, claimed.ID)
	// The snapshot returned is the pre-claim state.
	assert.False(t, claimed.Redeemed())

	stored, err := store.GetCode(added.ID)
	require.NoError(t, err)
	require.True(t, stored.Redeemed())
	assert.Equal(t, "team-a", *stored.UsedByTeamID)
}

func TestCodes_ClaimUnknownCode(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	_, err := codes.Claim(store, "s1", "NOPE", "team-a", time.Now())
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestCodes_SecondClaimFails(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	_, err := codes.Add("s1", "ALPHA1")
	require.NoError(t, err)

	_, err = codes.Claim(store, "s1", "alpha1", "team-a", time.Now())
	require.NoError(t, err)

	_, err = codes.Claim(store, "s1", "ALPHA1", "team-b", time.Now())
	assert.ErrorIs(t, err, game.ErrAlreadyRedeemed)
}

func TestCodes_DuplicateStringsDieWithFirstRow(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	_, err := codes.Add("s1", "DUP")
	require.NoError(t, err)
	_, err = codes.Add("s1", "DUP")
	require.NoError(t, err)

	_, err = codes.Claim(store, "s1", "DUP", "team-a", time.Now())
	require.NoError(t, err)

	// Lookup resolves to the first-created row, so the string stays
	// redeemed even though a duplicate row was never claimed.
	_, err = codes.Claim(store, "s1", "DUP", "team-b", time.Now())
	assert.ErrorIs(t, err, game.ErrAlreadyRedeemed)
}

func TestCodes_RemoveUnredeemed(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	code, err := codes.Add("s1", "ALPHA1")
	require.NoError(t, err)

	require.NoError(t, codes.Remove(code.ID))

	_, err = store.GetCode(code.ID)
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestCodes_RemoveRedeemedConflicts(t *testing.T) {
	store := storage.NewMemoryStore()
	codes := NewCodeService(store)

	code, err := codes.Add("s1", "ALPHA1")
	require.NoError(t, err)

	_, err = codes.Claim(store, "s1", "ALPHA1", "team-a", time.Now())
	require.NoError(t, err)

	err = codes.Remove(code.ID)
	assert.ErrorIs(t, err, game.ErrConflict)

	// Still present for the audit trail.
	_, err = store.GetCode(code.ID)
	assert.NoError(t, err)
}
