package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"
)

// MemoryStore is an in-process Store used by tests and by STORE_DRIVER=memory
// dev mode. A single mutex serializes every operation, which is what gives
// ClaimCode and AddTeamPoints their atomicity. Atomic serializes whole
// redemptions against each other but does not roll back: in-memory writes
// only fail on absent rows, which the engine checks before writing.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	sessions     map[string]*models.Session
	sessionOrder []string
	codes        map[string]*models.Code
	codeOrder    []string
	teams        map[string]*models.Team
	teamOrder    []string
	players      map[string]*models.Player
	playerOrder  []string
	scans        []models.Scan
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		codes:    make(map[string]*models.Code),
		teams:    make(map[string]*models.Team),
		players:  make(map[string]*models.Player),
	}
}

func (s *MemoryStore) Atomic(fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// Sessions

func (s *MemoryStore) GetSession(id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session", game.ErrNotFound)
	}
	copy := *session
	return &copy, nil
}

func (s *MemoryStore) GetSessionForUpdate(id string) (*models.Session, error) {
	// Atomic already serializes whole transactions, so the plain read is
	// the locked read here.
	return s.GetSession(id)
}

func (s *MemoryStore) GetActiveSession() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.sessionOrder {
		if s.sessions[id].Status == models.SessionStatusActive {
			copy := *s.sessions[id]
			return &copy, nil
		}
	}
	// Newest setup session, if any.
	for i := len(s.sessionOrder) - 1; i >= 0; i-- {
		if s.sessions[s.sessionOrder[i]].Status == models.SessionStatusSetup {
			copy := *s.sessions[s.sessionOrder[i]]
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("%w: session", game.ErrNotFound)
}

func (s *MemoryStore) GetOpenSession() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.sessionOrder) - 1; i >= 0; i-- {
		if s.sessions[s.sessionOrder[i]].Status != models.SessionStatusEnded {
			copy := *s.sessions[s.sessionOrder[i]]
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("%w: session", game.ErrNotFound)
}

func (s *MemoryStore) CreateSession(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *session
	s.sessions[session.ID] = &copy
	s.sessionOrder = append(s.sessionOrder, session.ID)
	return nil
}

func (s *MemoryStore) UpdateSession(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return fmt.Errorf("%w: session", game.ErrNotFound)
	}
	copy := *session
	s.sessions[session.ID] = &copy
	return nil
}

func (s *MemoryStore) SetSessionHeat(sessionID string, heat int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: session", game.ErrNotFound)
	}
	session.JackpotHeat = heat
	return nil
}

// Codes

func (s *MemoryStore) SessionCodes(sessionID string) ([]models.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var codes []models.Code
	for _, id := range s.codeOrder {
		if c, ok := s.codes[id]; ok && c.SessionID == sessionID {
			codes = append(codes, *c)
		}
	}
	return codes, nil
}

func (s *MemoryStore) GetCode(id string) (*models.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[id]
	if !ok {
		return nil, fmt.Errorf("%w: code", game.ErrNotFound)
	}
	copy := *code
	return &copy, nil
}

func (s *MemoryStore) GetCodeByString(sessionID, codeString string) (*models.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.codeOrder {
		c, ok := s.codes[id]
		if !ok || c.SessionID != sessionID || c.CodeString != codeString {
			continue
		}
		copy := *c
		return &copy, nil
	}
	return nil, fmt.Errorf("%w: code", game.ErrNotFound)
}

func (s *MemoryStore) CreateCode(code *models.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *code
	s.codes[code.ID] = &copy
	s.codeOrder = append(s.codeOrder, code.ID)
	return nil
}

func (s *MemoryStore) ClaimCode(codeID, teamID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[codeID]
	if !ok {
		return false, fmt.Errorf("%w: code", game.ErrNotFound)
	}
	if code.Redeemed() {
		return false, nil
	}
	team := teamID
	used := at
	code.UsedByTeamID = &team
	code.UsedAt = &used
	return true, nil
}

func (s *MemoryStore) DeleteCode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, id)
	return nil
}

// Teams

func (s *MemoryStore) SessionTeams(sessionID string) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var teams []models.Team
	for _, id := range s.teamOrder {
		if t, ok := s.teams[id]; ok && t.SessionID == sessionID {
			teams = append(teams, *t)
		}
	}
	return teams, nil
}

func (s *MemoryStore) GetTeam(id string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, fmt.Errorf("%w: team", game.ErrNotFound)
	}
	copy := *team
	return &copy, nil
}

func (s *MemoryStore) CreateTeam(team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *team
	s.teams[team.ID] = &copy
	s.teamOrder = append(s.teamOrder, team.ID)
	return nil
}

func (s *MemoryStore) AddTeamPoints(teamID string, delta int) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok {
		return nil, fmt.Errorf("%w: team", game.ErrNotFound)
	}
	team.TotalPoints += delta
	copy := *team
	return &copy, nil
}

// Players

func (s *MemoryStore) SessionPlayers(sessionID string) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var players []models.Player
	for _, id := range s.playerOrder {
		if p, ok := s.players[id]; ok && p.SessionID == sessionID {
			players = append(players, *p)
		}
	}
	return players, nil
}

func (s *MemoryStore) GetPlayer(id string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: player", game.ErrNotFound)
	}
	copy := *player
	return &copy, nil
}

func (s *MemoryStore) CreatePlayer(player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *player
	s.players[player.ID] = &copy
	s.playerOrder = append(s.playerOrder, player.ID)
	return nil
}

// Scans

func (s *MemoryStore) SessionScans(sessionID string) ([]models.Scan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var scans []models.Scan
	for _, scan := range s.scans {
		if scan.SessionID == sessionID {
			scans = append(scans, scan)
		}
	}
	return scans, nil
}

func (s *MemoryStore) CreateScan(scan *models.Scan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = append(s.scans, *scan)
	return nil
}
