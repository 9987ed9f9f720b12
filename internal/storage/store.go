package storage

import (
	"time"

	"github.com/katarmal-ram/huntqr/internal/models"
)

// Store is the durable-store contract the session engine depends on. Reads
// return game.ErrNotFound (wrapped) when the row is absent. Atomic runs fn
// against a store view whose writes commit or roll back as a unit; the
// engine uses it to make a redemption all-or-nothing past the claim point.
type Store interface {
	Atomic(fn func(Store) error) error

	// Sessions
	GetSession(id string) (*models.Session, error)
	// GetSessionForUpdate reads the session while holding its row lock for
	// the rest of the enclosing Atomic, so a heat value read here cannot be
	// overwritten by a concurrent redemption's write.
	GetSessionForUpdate(id string) (*models.Session, error)
	// GetActiveSession returns the active session if one exists, otherwise
	// the newest session still in setup, otherwise ErrNotFound.
	GetActiveSession() (*models.Session, error)
	// GetOpenSession returns any session whose status is not ended.
	GetOpenSession() (*models.Session, error)
	CreateSession(session *models.Session) error
	UpdateSession(session *models.Session) error
	// SetSessionHeat writes only the jackpot-heat column, so a redemption
	// committing late never clobbers a concurrent lifecycle transition.
	SetSessionHeat(sessionID string, heat int) error

	// Codes
	SessionCodes(sessionID string) ([]models.Code, error)
	GetCode(id string) (*models.Code, error)
	// GetCodeByString resolves a code within a session by its exact string.
	// Duplicate strings resolve to the first-created row, so once that row
	// is redeemed the string stays redeemed; later duplicates are dead.
	GetCodeByString(sessionID, codeString string) (*models.Code, error)
	CreateCode(code *models.Code) error
	// ClaimCode atomically sets the redemption fields if and only if the
	// code is still unredeemed. Returns false when another claimant won.
	ClaimCode(codeID, teamID string, at time.Time) (bool, error)
	DeleteCode(id string) error

	// Teams
	SessionTeams(sessionID string) ([]models.Team, error)
	GetTeam(id string) (*models.Team, error)
	CreateTeam(team *models.Team) error
	// AddTeamPoints applies delta as a serialized increment and returns the
	// updated row.
	AddTeamPoints(teamID string, delta int) (*models.Team, error)

	// Players
	SessionPlayers(sessionID string) ([]models.Player, error)
	GetPlayer(id string) (*models.Player, error)
	CreatePlayer(player *models.Player) error

	// Scans
	SessionScans(sessionID string) ([]models.Scan, error)
	CreateScan(scan *models.Scan) error
}
