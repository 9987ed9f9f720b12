package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Atomic(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", game.ErrNotFound, what)
	}
	return err
}

// Sessions

func (s *GormStore) GetSession(id string) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "session")
	}
	return &session, nil
}

func (s *GormStore) GetSessionForUpdate(id string) (*models.Session, error) {
	// SELECT ... FOR UPDATE. The claim's compare-and-swap only locks the
	// code row, so without this two redemptions of different codes could
	// both read the same heat and lose an increment under Read Committed.
	var session models.Session
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "session")
	}
	return &session, nil
}

func (s *GormStore) GetActiveSession() (*models.Session, error) {
	var session models.Session
	err := s.db.Where("status = ?", models.SessionStatusActive).First(&session).Error
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Where("status = ?", models.SessionStatusSetup).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, notFound(err, "session")
	}
	return &session, nil
}

func (s *GormStore) GetOpenSession() (*models.Session, error) {
	var session models.Session
	err := s.db.Where("status != ?", models.SessionStatusEnded).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, notFound(err, "session")
	}
	return &session, nil
}

func (s *GormStore) CreateSession(session *models.Session) error {
	return s.db.Create(session).Error
}

func (s *GormStore) UpdateSession(session *models.Session) error {
	return s.db.Save(session).Error
}

func (s *GormStore) SetSessionHeat(sessionID string, heat int) error {
	res := s.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("jackpot_heat", heat)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: session", game.ErrNotFound)
	}
	return nil
}

// Codes

func (s *GormStore) SessionCodes(sessionID string) ([]models.Code, error) {
	var codes []models.Code
	err := s.db.Where("session_id = ?", sessionID).Find(&codes).Error
	return codes, err
}

func (s *GormStore) GetCode(id string) (*models.Code, error) {
	var code models.Code
	if err := s.db.First(&code, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "code")
	}
	return &code, nil
}

func (s *GormStore) GetCodeByString(sessionID, codeString string) (*models.Code, error) {
	var code models.Code
	err := s.db.Where("session_id = ? AND code_string = ?", sessionID, codeString).
		Order("created_at ASC").
		First(&code).Error
	if err != nil {
		return nil, notFound(err, "code")
	}
	return &code, nil
}

func (s *GormStore) CreateCode(code *models.Code) error {
	return s.db.Create(code).Error
}

func (s *GormStore) ClaimCode(codeID, teamID string, at time.Time) (bool, error) {
	// Conditional update is the claim's compare-and-swap: the row only
	// changes if it is still unredeemed, and RowsAffected tells us whether
	// this caller won the race.
	res := s.db.Model(&models.Code{}).
		Where("id = ? AND used_by_team_id IS NULL", codeID).
		Updates(map[string]interface{}{
			"used_by_team_id": teamID,
			"used_at":         at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) DeleteCode(id string) error {
	return s.db.Delete(&models.Code{}, "id = ?", id).Error
}

// Teams

func (s *GormStore) SessionTeams(sessionID string) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Where("session_id = ?", sessionID).Find(&teams).Error
	return teams, err
}

func (s *GormStore) GetTeam(id string) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "team")
	}
	return &team, nil
}

func (s *GormStore) CreateTeam(team *models.Team) error {
	return s.db.Create(team).Error
}

func (s *GormStore) AddTeamPoints(teamID string, delta int) (*models.Team, error) {
	res := s.db.Model(&models.Team{}).
		Where("id = ?", teamID).
		Update("total_points", gorm.Expr("total_points + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: team", game.ErrNotFound)
	}
	return s.GetTeam(teamID)
}

// Players

func (s *GormStore) SessionPlayers(sessionID string) ([]models.Player, error) {
	var players []models.Player
	err := s.db.Where("session_id = ?", sessionID).Find(&players).Error
	return players, err
}

func (s *GormStore) GetPlayer(id string) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "player")
	}
	return &player, nil
}

func (s *GormStore) CreatePlayer(player *models.Player) error {
	return s.db.Create(player).Error
}

// Scans

func (s *GormStore) SessionScans(sessionID string) ([]models.Scan, error) {
	var scans []models.Scan
	err := s.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&scans).Error
	return scans, err
}

func (s *GormStore) CreateScan(scan *models.Scan) error {
	return s.db.Create(scan).Error
}
