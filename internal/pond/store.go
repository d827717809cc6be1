package pond

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Metrics holds the live water readings as the sensors report them:
// decimal strings, not parsed numbers, so a flaky probe can't poison
// the whole record.
type Metrics struct {
	Temp    string `json:"temp"`
	PH      string `json:"ph"`
	Oxygen  string `json:"oxygen"`
	Ammonia string `json:"ammonia"`
}

// Pond is the single monitored aquaculture unit. HealthScore is
// operator/system-set; it is never derived from Metrics here.
type Pond struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TankSize    string    `json:"tankSize"`
	FishCount   int       `json:"fishCount"`
	FishType    string    `json:"fishType"`
	Metrics     Metrics   `json:"metrics"`
	HealthScore int       `json:"healthScore"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CrisisScore is the fixed health score applied by the crisis simulation.
const CrisisScore = 38

// Store keeps the session-scoped pond record shared across flows.
// All mutations go through the mutex; no flow may assume parallel
// mutation of pond state.
type Store struct {
	mu   sync.RWMutex
	pond Pond
}

func seedPond() Pond {
	return Pond{
		ID:        "POND-ALPHA-01",
		Name:      "Pond Alpha",
		TankSize:  "5,000 Liters",
		FishCount: 1200,
		FishType:  "Rohu & Catla",
		Metrics: Metrics{
			Temp:    "28.5",
			PH:      "7.8",
			Oxygen:  "6.2",
			Ammonia: "0.02",
		},
		HealthScore: 84,
		UpdatedAt:   time.Now(),
	}
}

// NewStore seeds the store with the fixed session-start pond.
func NewStore() *Store {
	return &Store{pond: seedPond()}
}

// Reset restores the session seed, discarding every metric and score
// change made since.
func (s *Store) Reset() Pond {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pond = seedPond()
	return s.pond
}

// Snapshot returns a copy of the current pond state.
func (s *Store) Snapshot() Pond {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pond
}

// SetHealthScore sets the operator-facing score. The 0-100 range is the
// only constraint; no formula ties it to metrics.
func (s *Store) SetHealthScore(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("health score must be 0-100, got %d", score)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pond.HealthScore = score
	s.pond.UpdatedAt = time.Now()
	return nil
}

// UpdateMetrics overwrites readings that are present (non-blank) in m.
func (s *Store) UpdateMetrics(m Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(m.Temp) != "" {
		s.pond.Metrics.Temp = strings.TrimSpace(m.Temp)
	}
	if strings.TrimSpace(m.PH) != "" {
		s.pond.Metrics.PH = strings.TrimSpace(m.PH)
	}
	if strings.TrimSpace(m.Oxygen) != "" {
		s.pond.Metrics.Oxygen = strings.TrimSpace(m.Oxygen)
	}
	if strings.TrimSpace(m.Ammonia) != "" {
		s.pond.Metrics.Ammonia = strings.TrimSpace(m.Ammonia)
	}
	s.pond.UpdatedAt = time.Now()
}

// SimulateCrisis drops the score to the fixed crisis value.
func (s *Store) SimulateCrisis() Pond {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pond.HealthScore = CrisisScore
	s.pond.UpdatedAt = time.Now()
	return s.pond
}

// HealthLabel buckets the score the way the dashboard presents it.
func HealthLabel(score int) string {
	switch {
	case score >= 85:
		return "EXCELLENT"
	case score >= 70:
		return "STABLE"
	default:
		return "CRITICAL"
	}
}
