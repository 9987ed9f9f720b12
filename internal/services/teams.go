package services

import (
	"sort"

	"github.com/katarmal-ram/huntqr/internal/models"
	"github.com/katarmal-ram/huntqr/internal/storage"

	"github.com/google/uuid"
)

// TeamService applies point deltas to team totals. The increment itself is
// serialized per team by the store, so concurrent redemptions never lose an
// update; different teams proceed independently.
type TeamService struct {
	store storage.Store
}

func NewTeamService(store storage.Store) *TeamService {
	return &TeamService{store: store}
}

var defaultTeams = []struct {
	Name  string
	Color string
}{
	{"Team Alpha", "team-1"},
	{"Team Beta", "team-2"},
	{"Team Gamma", "team-3"},
	{"Team Delta", "team-4"},
	{"Team Epsilon", "team-5"},
}

func (s *TeamService) SeedDefaults(sessionID string) error {
	for _, t := range defaultTeams {
		if _, err := s.Create(sessionID, t.Name, t.Color); err != nil {
			return err
		}
	}
	return nil
}

func (s *TeamService) Create(sessionID, name, color string) (*models.Team, error) {
	team := &models.Team{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Name:      name,
		Color:     color,
	}
	if err := s.store.CreateTeam(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Get(teamID string) (*models.Team, error) {
	return s.store.GetTeam(teamID)
}

func (s *TeamService) List(sessionID string) ([]models.Team, error) {
	return s.store.SessionTeams(sessionID)
}

// Apply adds delta to the team's running total and returns the updated row.
// It runs against the given store view so a redemption can apply it inside
// its transaction.
func (s *TeamService) Apply(st storage.Store, teamID string, delta int) (*models.Team, error) {
	return st.AddTeamPoints(teamID, delta)
}

// Standings returns the session's teams ordered by points, highest first.
func (s *TeamService) Standings(st storage.Store, sessionID string) ([]models.Team, error) {
	teams, err := st.SessionTeams(sessionID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].TotalPoints > teams[j].TotalPoints
	})
	return teams, nil
}
