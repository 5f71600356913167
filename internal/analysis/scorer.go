package analysis

import "math"

// Band awards a flat bonus to BPM candidates inside an inclusive range
type Band struct {
	Lo    float64
	Hi    float64
	Bonus int
}

// Scorer scores BPM candidates against configurable plausibility bands.
// The bands are data, not logic: tuning the selection for a different genre
// means swapping the band table, not editing the estimator.
type Scorer struct {
	MinBPM     float64
	MaxBPM     float64
	Bands      []Band
	RoundBonus int // awarded when the candidate is a multiple of 10
}

// DefaultScorer returns the scoring profile tuned for karaoke charts:
// uptempo vocal tracks score higher because UltraStar charts are usually
// authored at double or quadruple the perceived tempo.
func DefaultScorer() Scorer {
	return Scorer{
		MinBPM: 60,
		MaxBPM: 400,
		Bands: []Band{
			{120, 140, 10},
			{140, 180, 15},
			{180, 220, 20},
			{220, 280, 25},
			{250, 270, 20},
		},
		RoundBonus: 5,
	}
}

// Score returns the total bonus for a BPM candidate
func (s Scorer) Score(bpm float64) int {
	score := 0
	for _, b := range s.Bands {
		if bpm >= b.Lo && bpm <= b.Hi {
			score += b.Bonus
		}
	}
	if s.RoundBonus != 0 && math.Mod(bpm, 10) == 0 {
		score += s.RoundBonus
	}
	return score
}
