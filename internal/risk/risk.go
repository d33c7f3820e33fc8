package risk

import "healthdash/internal/api"

// Band is the risk classification derived from a score in [0,1]. Lower
// bounds are closed: exactly 0.4 is Moderate, exactly 0.7 is High.
type Band int

const (
	Low Band = iota
	Moderate
	High
)

func (b Band) String() string {
	switch b {
	case High:
		return "High"
	case Moderate:
		return "Moderate"
	default:
		return "Low"
	}
}

// Verdict is the one-line guidance shown next to a classified score.
func (b Band) Verdict() string {
	switch b {
	case High:
		return "High risk: recommend medical follow up"
	case Moderate:
		return "Moderate risk: consider lifestyle changes"
	default:
		return "Low risk: keep up the good habits"
	}
}

func BandFor(score float64) Band {
	switch {
	case score >= 0.7:
		return High
	case score >= 0.4:
		return Moderate
	default:
		return Low
	}
}

// Stats summarises a prediction history for the dashboard.
type Stats struct {
	Total    int
	Low      int
	Moderate int
	High     int
	Average  float64
}

// Compute tallies band counts and the average score. An empty history
// yields all zeros.
func Compute(history []api.MeasurementOut) Stats {
	stats := Stats{Total: len(history)}
	if stats.Total == 0 {
		return stats
	}

	sum := 0.0
	for _, m := range history {
		sum += m.RiskScore
		switch BandFor(m.RiskScore) {
		case High:
			stats.High++
		case Moderate:
			stats.Moderate++
		default:
			stats.Low++
		}
	}
	stats.Average = sum / float64(stats.Total)
	return stats
}
