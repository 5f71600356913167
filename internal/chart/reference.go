package chart

// plausible syllable duration range in milliseconds, used when inferring the
// beat factor from a reference chart's first note interval
const (
	minSyllableMS = 200
	maxSyllableMS = 1000
)

// beatFactorCandidates are tried in order; the first plausible one wins
var beatFactorCandidates = [...]int{1, 2, 4, 8}

// InferBeatFactor estimates the beat scaling constant from a reference chart
// by checking which factor makes the interval between its first two sung
// notes a plausible syllable length at the chart's tempo. This is best-effort
// reverse engineering, not a format rule: any ambiguity or parse failure
// falls back to the default factor.
func InferBeatFactor(path string, fallback int) int {
	c, err := ParseFile(path)
	if err != nil || c.Meta.BPM <= 0 {
		return fallback
	}

	var beats []int
	for _, n := range c.Notes {
		if n.Kind == Pause {
			continue
		}
		beats = append(beats, n.Beat)
		if len(beats) == 2 {
			break
		}
	}
	if len(beats) < 2 {
		return fallback
	}

	beatDiff := float64(beats[1] - beats[0])
	if beatDiff <= 0 {
		return fallback
	}

	for _, factor := range beatFactorCandidates {
		ms := beatDiff * 60000 / (c.Meta.BPM * float64(factor))
		if ms >= minSyllableMS && ms <= maxSyllableMS {
			return factor
		}
	}
	return fallback
}
