package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/katarmal-ram/huntqr/internal/game"
	"github.com/katarmal-ram/huntqr/internal/models"
	"github.com/katarmal-ram/huntqr/internal/storage"

	"github.com/google/uuid"
)

// CodeService is the ledger of single-use codes. Claim is the one operation
// in the engine where concurrent callers contend for the same resource; the
// store's compare-and-swap decides the winner.
type CodeService struct {
	store storage.Store
}

func NewCodeService(store storage.Store) *CodeService {
	return &CodeService{store: store}
}

// NormalizeCode makes code matching case-insensitive: trimmed and uppercased
// both when stored and when redeemed.
func NormalizeCode(codeString string) string {
	return strings.ToUpper(strings.TrimSpace(codeString))
}

func (s *CodeService) List(sessionID string) ([]models.Code, error) {
	return s.store.SessionCodes(sessionID)
}

// Add registers a new unredeemed code. Duplicate strings are not rejected;
// the first redemption of a duplicate wins and the rest become dead codes.
func (s *CodeService) Add(sessionID, codeString string) (*models.Code, error) {
	normalized := NormalizeCode(codeString)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty code string", game.ErrConflict)
	}
	code := &models.Code{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		CodeString: normalized,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateCode(code); err != nil {
		return nil, err
	}
	return code, nil
}

// Remove deletes an unredeemed code. Redeemed codes are part of the audit
// trail and cannot be removed.
func (s *CodeService) Remove(codeID string) error {
	code, err := s.store.GetCode(codeID)
	if err != nil {
		return err
	}
	if code.Redeemed() {
		return fmt.Errorf("%w: code already redeemed", game.ErrConflict)
	}
	return s.store.DeleteCode(codeID)
}

// Claim atomically marks the code as redeemed by the team and returns the
// pre-claim snapshot. Exactly one of N concurrent claims on the same code
// succeeds; the rest get ErrAlreadyRedeemed. Runs against the given store
// view so the redemption transaction is the concurrency boundary.
func (s *CodeService) Claim(st storage.Store, sessionID, codeString, teamID string, at time.Time) (*models.Code, error) {
	code, err := st.GetCodeByString(sessionID, NormalizeCode(codeString))
	if err != nil {
		return nil, err
	}
	if code.Redeemed() {
		return nil, fmt.Errorf("%w: %s", game.ErrAlreadyRedeemed, code.CodeString)
	}

	won, err := st.ClaimCode(code.ID, teamID, at)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("%w: %s", game.ErrAlreadyRedeemed, code.CodeString)
	}
	return code, nil
}
