package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"
	"github.com/katarmal-ram/huntqr/internal/storage"
	"github.com/katarmal-ram/huntqr/internal/ws"

	"github.com/google/uuid"
)

// GameService orchestrates the redemption flow across the session state
// machine, the code ledger, the scoring engine, the team aggregator and the
// broadcast hub.
type GameService struct {
	store    storage.Store
	sessions *SessionService
	codes    *CodeService
	scoring  *ScoringService
	teams    *TeamService
	hub      *ws.Hub
	now      func() time.Time
}

func NewGameService(store storage.Store, sessions *SessionService, codes *CodeService,
	scoring *ScoringService, teams *TeamService, hub *ws.Hub) *GameService {
	return &GameService{
		store:    store,
		sessions: sessions,
		codes:    codes,
		scoring:  scoring,
		teams:    teams,
		hub:      hub,
		now:      time.Now,
	}
}

type RedeemResult struct {
	Points int         `json:"points"`
	Scan   models.Scan `json:"scan"`
}

// Join binds a new player to a team in the current session. Team membership
// is set once and never changes.
func (g *GameService) Join(name, teamID string) (*models.Player, error) {
	session, err := g.sessions.Active()
	if err != nil {
		return nil, err
	}

	team, err := g.teams.Get(teamID)
	if err != nil {
		return nil, err
	}
	if team.SessionID != session.ID {
		return nil, fmt.Errorf("%w: team belongs to another session", game.ErrNotFound)
	}

	player := &models.Player{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		TeamID:    teamID,
		Name:      name,
		Role:      models.PlayerRolePlayer,
		CreatedAt: g.now(),
	}
	if err := g.store.CreatePlayer(player); err != nil {
		return nil, err
	}

	log.Printf("game: player %q joined team %s in session %s", name, teamID, session.ID)
	g.hub.Publish(ws.Event{
		SessionID: session.ID,
		Type:      ws.EventPlayerJoined,
		Player:    player,
	})
	return player, nil
}

func (g *GameService) Player(playerID string) (*models.Player, error) {
	return g.store.GetPlayer(playerID)
}

// RedeemCode runs the whole redemption for one player: active-session check,
// claim, scoring, scan record, team total, broadcast. The claim is the
// linearization point; everything after it happens in the same store
// transaction, so a failed redemption leaves no partial state. The status
// snapshot taken here is the one rule for timer races: a redemption that
// begins before the session expires completes.
func (g *GameService) RedeemCode(playerID, codeString string) (*RedeemResult, error) {
	player, err := g.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	session, err := g.store.GetActiveSession()
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active session", game.ErrInvalidState)
		}
		return nil, err
	}
	if g.sessions.Expired(session) {
		// Lazy auto-end: converge to ended before rejecting.
		if _, err := g.sessions.End(session.ID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: session has ended", game.ErrInvalidState)
	}
	if session.Status != models.SessionStatusActive {
		return nil, fmt.Errorf("%w: session is not active", game.ErrInvalidState)
	}
	if player.SessionID != session.ID {
		return nil, fmt.Errorf("%w: player is not in the current session", game.ErrInvalidState)
	}

	var (
		result    *RedeemResult
		standings []models.Team
	)
	err = g.store.Atomic(func(tx storage.Store) error {
		at := g.now()
		code, err := g.codes.Claim(tx, session.ID, codeString, player.TeamID, at)
		if err != nil {
			return err
		}

		// Heat is read under the session row lock so concurrent
		// redemptions see each other's increments and a jackpot's reset
		// to zero cannot be overwritten by a late baiting write.
		fresh, err := tx.GetSessionForUpdate(session.ID)
		if err != nil {
			return err
		}
		points, draw, newHeat := g.scoring.Compute(fresh.JackpotHeat)

		scan := &models.Scan{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			TeamID:    player.TeamID,
			PlayerID:  player.ID,
			CodeID:    code.ID,
			Points:    points,
			RandSeed:  draw,
			CreatedAt: at,
		}
		if err := tx.CreateScan(scan); err != nil {
			return err
		}
		if err := tx.SetSessionHeat(session.ID, newHeat); err != nil {
			return err
		}
		if _, err := g.teams.Apply(tx, player.TeamID, points); err != nil {
			return err
		}

		standings, err = g.teams.Standings(tx, session.ID)
		if err != nil {
			return err
		}
		result = &RedeemResult{Points: points, Scan: *scan}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("game: %s redeemed %q for %+d points (draw %.3f)",
		player.Name, NormalizeCode(codeString), result.Points, result.Scan.RandSeed)
	g.hub.Publish(ws.Event{
		SessionID: session.ID,
		Type:      ws.EventScanCompleted,
		Scan:      &result.Scan,
		Teams:     standings,
	})
	return result, nil
}

func (g *GameService) Scans(sessionID string) ([]models.Scan, error) {
	return g.store.SessionScans(sessionID)
}

// LedgerRow is one line of the export: the scans of a session replayed in
// creation order with a running total per team.
type LedgerRow struct {
	Timestamp  time.Time
	Team       string
	Player     string
	Points     int
	Cumulative int
}

// Ledger replays a session's scans into the flat export rows. Pure
// projection; no engine invariants of its own.
func (g *GameService) Ledger(sessionID string) ([]LedgerRow, error) {
	scans, err := g.store.SessionScans(sessionID)
	if err != nil {
		return nil, err
	}
	teams, err := g.store.SessionTeams(sessionID)
	if err != nil {
		return nil, err
	}
	players, err := g.store.SessionPlayers(sessionID)
	if err != nil {
		return nil, err
	}

	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	playerNames := make(map[string]string, len(players))
	for _, p := range players {
		playerNames[p.ID] = p.Name
	}

	running := make(map[string]int)
	rows := make([]LedgerRow, 0, len(scans))
	for _, scan := range scans {
		running[scan.TeamID] += scan.Points

		teamName := teamNames[scan.TeamID]
		if teamName == "" {
			teamName = "Unknown"
		}
		playerName := playerNames[scan.PlayerID]
		if playerName == "" {
			playerName = "Unknown"
		}

		rows = append(rows, LedgerRow{
			Timestamp:  scan.CreatedAt,
			Team:       teamName,
			Player:     playerName,
			Points:     scan.Points,
			Cumulative: running[scan.TeamID],
		})
	}
	return rows, nil
}
