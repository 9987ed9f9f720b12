package services

import "github.com/katarmal-ram/huntqr/internal/models"

// ScoringService computes the point delta for a redemption. The distribution
// is deliberately not fair: non-jackpot draws grow the session's heat counter
// so the 5% jackpot check, which only pays while heat is positive, feels
// increasingly "due". The thresholds and ranges are fixed; changing them
// changes the game.
type ScoringService struct {
	rng Rand
}

func NewScoringService(rng Rand) *ScoringService {
	return &ScoringService{rng: rng}
}

// baitingPayouts skews toward small wins so players mostly win a little and
// occasionally lose a little.
var baitingPayouts = [...]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, -1, -2, -3, -4, -5}

// Compute draws once and returns the payout, the raw draw (recorded on the
// Scan for auditability) and the session's next heat value. Payout is always
// within [-10, 30].
func (s *ScoringService) Compute(heat int) (points int, draw float64, newHeat int) {
	draw = s.rng.Float64()

	switch {
	case draw < 0.05 && heat > 0:
		// Jackpot: pay out the accumulated heat plus a kicker, then cool off.
		points = heat + s.rng.Intn(10)
		if points > models.MaxJackpotHeat {
			points = models.MaxJackpotHeat
		}
		newHeat = 0
	case draw < 0.75:
		newHeat = bumpHeat(heat)
		points = baitingPayouts[s.rng.Intn(len(baitingPayouts))]
	default:
		// Drain: a guaranteed loss in [-10, -6].
		newHeat = bumpHeat(heat)
		points = -10 + s.rng.Intn(5)
	}
	return points, draw, newHeat
}

func bumpHeat(heat int) int {
	if heat >= models.MaxJackpotHeat {
		return models.MaxJackpotHeat
	}
	return heat + 1
}
