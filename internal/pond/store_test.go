package pond

import "testing"

func TestSnapshotReturnsSeedPond(t *testing.T) {
	s := NewStore()
	p := s.Snapshot()
	if p.ID != "POND-ALPHA-01" {
		t.Fatalf("ID = %q, want POND-ALPHA-01", p.ID)
	}
	if p.Name != "Pond Alpha" {
		t.Fatalf("Name = %q, want Pond Alpha", p.Name)
	}
	if p.HealthScore != 84 {
		t.Fatalf("HealthScore = %d, want 84", p.HealthScore)
	}
	if p.Metrics.Temp != "28.5" || p.Metrics.Ammonia != "0.02" {
		t.Fatalf("Metrics = %+v, want seed readings", p.Metrics)
	}
}

func TestSetHealthScoreRejectsOutOfRange(t *testing.T) {
	s := NewStore()
	if err := s.SetHealthScore(-1); err == nil {
		t.Fatalf("SetHealthScore(-1) error = nil, want error")
	}
	if err := s.SetHealthScore(101); err == nil {
		t.Fatalf("SetHealthScore(101) error = nil, want error")
	}
	if err := s.SetHealthScore(0); err != nil {
		t.Fatalf("SetHealthScore(0) error = %v", err)
	}
	if err := s.SetHealthScore(100); err != nil {
		t.Fatalf("SetHealthScore(100) error = %v", err)
	}
}

func TestSimulateCrisisSetsFixedScore(t *testing.T) {
	s := NewStore()
	p := s.SimulateCrisis()
	if p.HealthScore != CrisisScore {
		t.Fatalf("HealthScore = %d, want %d", p.HealthScore, CrisisScore)
	}
	if got := s.Snapshot().HealthScore; got != CrisisScore {
		t.Fatalf("Snapshot().HealthScore = %d, want %d", got, CrisisScore)
	}
}

func TestResetRestoresSeedAfterCrisis(t *testing.T) {
	s := NewStore()
	s.SimulateCrisis()
	s.UpdateMetrics(Metrics{Temp: "33.0", Ammonia: "0.9"})

	p := s.Reset()
	if p.HealthScore != 84 {
		t.Fatalf("HealthScore = %d, want seed 84", p.HealthScore)
	}
	if p.Metrics.Temp != "28.5" || p.Metrics.Ammonia != "0.02" {
		t.Fatalf("Metrics = %+v, want seed readings", p.Metrics)
	}
	if got := s.Snapshot(); got.HealthScore != 84 || got.Metrics.Temp != "28.5" {
		t.Fatalf("Snapshot after Reset = %+v, want seed pond", got)
	}
}

func TestUpdateMetricsSkipsBlankReadings(t *testing.T) {
	s := NewStore()
	s.UpdateMetrics(Metrics{Temp: "30.1", PH: "  "})
	m := s.Snapshot().Metrics
	if m.Temp != "30.1" {
		t.Fatalf("Temp = %q, want 30.1", m.Temp)
	}
	if m.PH != "7.8" {
		t.Fatalf("PH = %q, want unchanged 7.8", m.PH)
	}
}

func TestHealthLabelBuckets(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "EXCELLENT"},
		{85, "EXCELLENT"},
		{84, "STABLE"},
		{70, "STABLE"},
		{69, "CRITICAL"},
		{CrisisScore, "CRITICAL"},
		{0, "CRITICAL"},
	}
	for _, c := range cases {
		if got := HealthLabel(c.score); got != c.want {
			t.Fatalf("HealthLabel(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}
