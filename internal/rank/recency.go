package rank

import (
	"math"
	"time"

	"github.com/mnemo-systems/mnemo/internal/store"
)

// RecencyScore implements the exponential half-life decay shared by spec
// sections 4.5 and 4.6: recency = exp(-ln2 * age_days / half_life(type)).
func RecencyScore(memType store.MemoryType, createdAt, now time.Time) float64 {
	halfLife, ok := HalfLives[memType]
	if !ok {
		halfLife = DefaultHalfLife
	}
	ageDays := now.Sub(createdAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	halfLifeDays := halfLife.Hours() / 24
	return math.Exp(-math.Ln2 * ageDays / halfLifeDays)
}
