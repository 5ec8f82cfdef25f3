package foodex2

import (
	"testing"
	"time"
)

func TestMetrics_RecordValidation(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(10*time.Millisecond, true)
	m.RecordValidation(20*time.Millisecond, false)

	if m.ValidationsTotal() != 2 {
		t.Errorf("ValidationsTotal() = %d; want 2", m.ValidationsTotal())
	}
	if m.ValidationsValid() != 1 {
		t.Errorf("ValidationsValid() = %d; want 1", m.ValidationsValid())
	}
	if rate := m.ValidationRate(); rate != 0.5 {
		t.Errorf("ValidationRate() = %v; want 0.5", rate)
	}
	if m.MinValidationTime() != 10*time.Millisecond {
		t.Errorf("MinValidationTime() = %v; want 10ms", m.MinValidationTime())
	}
	if m.MaxValidationTime() != 20*time.Millisecond {
		t.Errorf("MaxValidationTime() = %v; want 20ms", m.MaxValidationTime())
	}
}

func TestMetrics_RecordWarning(t *testing.T) {
	m := NewMetrics()
	m.RecordWarning(SeverityError, RuleBaseNotFound)
	m.RecordWarning(SeverityHigh, "BR03")
	m.RecordWarning(SeverityHigh, "BR03")
	m.RecordWarning(SeverityLow, "BR10")

	if m.ErrorsTotal() != 1 {
		t.Errorf("ErrorsTotal() = %d; want 1", m.ErrorsTotal())
	}
	if m.HighsTotal() != 2 {
		t.Errorf("HighsTotal() = %d; want 2", m.HighsTotal())
	}
	if m.LowsTotal() != 1 {
		t.Errorf("LowsTotal() = %d; want 1", m.LowsTotal())
	}
	if hits := m.RuleHits("BR03"); hits != 2 {
		t.Errorf("RuleHits(BR03) = %d; want 2", hits)
	}
	if hits := m.RuleHits("BR99"); hits != 0 {
		t.Errorf("RuleHits(BR99) = %d; want 0", hits)
	}
}

func TestMetrics_CacheHitRate(t *testing.T) {
	m := NewMetrics()
	if m.CacheHitRate() != 0 {
		t.Error("CacheHitRate() with no samples should be 0")
	}
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()

	if rate := m.CacheHitRate(); rate != 0.75 {
		t.Errorf("CacheHitRate() = %v; want 0.75", rate)
	}
}

func TestMetrics_PoolLeaks(t *testing.T) {
	m := NewMetrics()
	m.RecordPoolAcquire()
	m.RecordPoolAcquire()
	m.RecordPoolRelease()

	if leaks := m.PoolLeaks(); leaks != 1 {
		t.Errorf("PoolLeaks() = %d; want 1", leaks)
	}
}

func TestMetrics_RecordPhase(t *testing.T) {
	m := NewMetrics()
	m.RecordPhase("structural", 5*time.Millisecond, 1)
	m.RecordPhase("structural", 15*time.Millisecond, 0)

	stats, ok := m.PhaseStats("structural")
	if !ok {
		t.Fatal("expected phase stats for structural")
	}
	if stats.Invocations != 2 {
		t.Errorf("Invocations = %d; want 2", stats.Invocations)
	}
	if stats.AvgTime != 10*time.Millisecond {
		t.Errorf("AvgTime = %v; want 10ms", stats.AvgTime)
	}
	if stats.IssuesFound != 1 {
		t.Errorf("IssuesFound = %d; want 1", stats.IssuesFound)
	}

	if _, ok := m.PhaseStats("rules"); ok {
		t.Error("expected no stats for unrecorded phase")
	}
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(time.Millisecond, true)
	m.RecordWarning(SeverityError, RuleBaseNotFound)
	m.RecordPhase("rules", time.Millisecond, 1)

	snap := m.Snapshot()
	if snap.ValidationsTotal != 1 {
		t.Errorf("snapshot ValidationsTotal = %d; want 1", snap.ValidationsTotal)
	}
	if snap.ErrorsTotal != 1 {
		t.Errorf("snapshot ErrorsTotal = %d; want 1", snap.ErrorsTotal)
	}
	if snap.RuleHits[RuleBaseNotFound] != 1 {
		t.Errorf("snapshot RuleHits[%s] = %d; want 1", RuleBaseNotFound, snap.RuleHits[RuleBaseNotFound])
	}
	if len(snap.Phases) != 1 {
		t.Errorf("len(snapshot.Phases) = %d; want 1", len(snap.Phases))
	}
}

func TestMetrics_Export(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(time.Millisecond, true)
	exported := m.Export()
	if exported["validations_total"] != uint64(1) {
		t.Errorf("Export()[validations_total] = %v; want 1", exported["validations_total"])
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(time.Millisecond, true)
	m.RecordWarning(SeverityError, RuleBaseNotFound)
	m.RecordPhase("structural", time.Millisecond, 1)

	m.Reset()

	if m.ValidationsTotal() != 0 {
		t.Error("Reset should clear ValidationsTotal")
	}
	if m.ErrorsTotal() != 0 {
		t.Error("Reset should clear ErrorsTotal")
	}
	if m.RuleHits(RuleBaseNotFound) != 0 {
		t.Error("Reset should clear rule hit counters")
	}
	if _, ok := m.PhaseStats("structural"); ok {
		t.Error("Reset should clear phase timing")
	}
	if m.MinValidationTime() != 0 {
		t.Error("Reset should clear MinValidationTime")
	}
}
