package foodex2

import (
	"sync"
	"testing"
)

func TestResult_Basic(t *testing.T) {
	r := NewResult()

	if !r.Valid {
		t.Error("NewResult should be valid initially")
	}
	if len(r.Warnings) != 0 {
		t.Errorf("len(Warnings) = %d; want 0", len(r.Warnings))
	}
}

func TestResult_AddWarning(t *testing.T) {
	r := NewResult()

	r.AddWarning(Warning{Severity: SeverityLow, Rule: "BR10"})
	r.Finalize(true)

	if !r.Valid {
		t.Error("Result should still be valid after a LOW warning")
	}
	if len(r.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d; want 1", len(r.Warnings))
	}

	r.AddWarning(Warning{Severity: SeverityError, Rule: RuleBaseNotFound})
	r.Finalize(true)

	if r.Valid {
		t.Error("Result should be invalid after an ERROR warning")
	}
	if len(r.Warnings) != 2 {
		t.Errorf("len(Warnings) = %d; want 2", len(r.Warnings))
	}
}

func TestResult_FinalizeBlockOnHigh(t *testing.T) {
	r := NewResult()
	r.AddWarning(Warning{Severity: SeverityHigh, Rule: "BR03"})

	r.Finalize(true)
	if r.Valid {
		t.Error("HIGH should block by default (BlockOnHigh=true)")
	}

	r.Finalize(false)
	if !r.Valid {
		t.Error("HIGH should not block when BlockOnHigh=false")
	}
}

func TestResult_Severity_MaxOverWarnings(t *testing.T) {
	r := NewResult()
	r.AddWarning(Warning{Severity: SeverityLow})
	if r.Severity != SeverityLow {
		t.Errorf("Severity = %s; want LOW", r.Severity)
	}
	r.AddWarning(Warning{Severity: SeverityHigh})
	if r.Severity != SeverityHigh {
		t.Errorf("Severity = %s; want HIGH", r.Severity)
	}
	r.AddWarning(Warning{Severity: SeverityLow})
	if r.Severity != SeverityHigh {
		t.Errorf("Severity = %s; want HIGH (must not regress)", r.Severity)
	}
}

func TestResult_Counts(t *testing.T) {
	r := NewResult()
	r.AddWarning(Warning{Severity: SeverityError})
	r.AddWarning(Warning{Severity: SeverityHigh})
	r.AddWarning(Warning{Severity: SeverityHigh})
	r.AddWarning(Warning{Severity: SeverityLow})
	r.AddWarning(Warning{Severity: SeverityNone})

	if r.Counts.Error != 1 || r.Counts.High != 2 || r.Counts.Low != 1 || r.Counts.Info != 1 {
		t.Errorf("Counts = %+v; want {Error:1 High:2 Low:1 Info:1}", r.Counts)
	}
	if r.Counts.Total != 5 {
		t.Errorf("Counts.Total = %d; want 5", r.Counts.Total)
	}
}

func TestResult_Buckets(t *testing.T) {
	r := NewResult()
	r.AddWarning(Warning{Severity: SeverityError, Rule: RuleBaseNotFound})
	r.AddWarning(Warning{Severity: SeverityHigh, Rule: "BR03"})
	r.AddWarning(Warning{Severity: SeverityLow, Rule: "BR10"})
	r.AddWarning(Warning{Severity: SeverityNone, Rule: "BR22"})

	hard, soft, info := r.Buckets()
	if len(hard) != 2 {
		t.Errorf("len(hard) = %d; want 2", len(hard))
	}
	if len(soft) != 1 {
		t.Errorf("len(soft) = %d; want 1", len(soft))
	}
	if len(info) != 1 {
		t.Errorf("len(info) = %d; want 1", len(info))
	}
}

func TestResult_Merge(t *testing.T) {
	r1 := NewResult()
	r1.AddWarning(Warning{Severity: SeverityLow})

	r2 := NewResult()
	r2.AddWarning(Warning{Severity: SeverityError})

	r1.Merge(r2)
	r1.Finalize(true)

	if r1.Valid {
		t.Error("Merged result should be invalid")
	}
	if len(r1.Warnings) != 2 {
		t.Errorf("len(Warnings) = %d; want 2", len(r1.Warnings))
	}
}

func TestResult_Merge_Nil(t *testing.T) {
	r := NewResult()
	r.Merge(nil)
	if len(r.Warnings) != 0 {
		t.Errorf("len(Warnings) = %d; want 0", len(r.Warnings))
	}
}

func TestResult_Clone(t *testing.T) {
	r := NewResult()
	r.AddWarning(Warning{Severity: SeverityError})
	r.OriginalCode = "A0B9Z"

	clone := r.Clone()
	clone.AddWarning(Warning{Severity: SeverityHigh})

	if len(r.Warnings) != 1 {
		t.Error("Original should not be affected by clone modification")
	}
	if clone.OriginalCode != r.OriginalCode {
		t.Error("Clone OriginalCode mismatch")
	}
}

func TestResult_Reset(t *testing.T) {
	r := NewResult()
	r.AddWarning(Warning{Severity: SeverityError})
	r.OriginalCode = "A0B9Z"
	r.Severity = SeverityError

	r.Reset()

	if !r.Valid {
		t.Error("Reset should set Valid to true")
	}
	if len(r.Warnings) != 0 {
		t.Errorf("len(Warnings) after Reset = %d; want 0", len(r.Warnings))
	}
	if r.OriginalCode != "" {
		t.Error("Reset should clear OriginalCode")
	}
	if r.Severity != SeverityNone {
		t.Error("Reset should clear Severity")
	}
}

func TestResult_Pool(t *testing.T) {
	r := AcquireResult()
	if r == nil {
		t.Fatal("AcquireResult returned nil")
	}
	if !r.Valid {
		t.Error("Acquired result should be valid")
	}

	r.AddWarning(Warning{Severity: SeverityError})
	r.Release()

	r2 := AcquireResult()
	if !r2.Valid {
		t.Error("Re-acquired result should be valid (reset)")
	}
	if len(r2.Warnings) != 0 {
		t.Errorf("Re-acquired result should have no warnings, got %d", len(r2.Warnings))
	}
	r2.Release()
}

func TestResult_Pool_NilRelease(t *testing.T) {
	var r *Result
	r.Release()
}

func TestResult_Concurrent(t *testing.T) {
	r := NewResult()
	var wg sync.WaitGroup
	n := 100

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.AddWarning(Warning{Severity: SeverityError})
			} else {
				r.AddWarning(Warning{Severity: SeverityLow})
			}
		}(i)
	}

	wg.Wait()

	if len(r.Warnings) != n {
		t.Errorf("len(Warnings) = %d; want %d", len(r.Warnings), n)
	}
}

func BenchmarkResult_AddWarning(b *testing.B) {
	r := NewResult()
	w := Warning{Severity: SeverityHigh, Rule: "BR03", Message: "example"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.AddWarning(w)
	}
}

func BenchmarkResult_Pool(b *testing.B) {
	for i := 0; i < b.N; i++ {
		r := AcquireResult()
		r.AddWarning(Warning{Severity: SeverityError})
		r.Release()
	}
}
