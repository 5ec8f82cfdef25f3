package pipeline

import (
	"testing"

	foodex2 "github.com/efsa/foodex2validator"
)

func TestAcquireContext_StartsClean(t *testing.T) {
	ctx := AcquireContext()
	defer ctx.Release()

	if ctx.OriginalCode != "" {
		t.Errorf("OriginalCode = %q; want empty", ctx.OriginalCode)
	}
	if ctx.Result != nil {
		t.Error("Result should be nil until a phase sets it")
	}
}

func TestContext_ReuseAfterRelease(t *testing.T) {
	ctx := AcquireContext()
	ctx.OriginalCode = "A0B9Z#F28.A07KQ"
	ctx.SetMetadata("k", "v")
	ctx.Release()

	reused := AcquireContext()
	defer reused.Release()

	if reused.OriginalCode != "" {
		t.Errorf("OriginalCode = %q; want reset to empty", reused.OriginalCode)
	}
	if _, ok := reused.GetMetadata("k"); ok {
		t.Error("metadata should be cleared on reuse")
	}
}

func TestContext_Metadata(t *testing.T) {
	ctx := AcquireContext()
	defer ctx.Release()

	if _, ok := ctx.GetMetadata("missing"); ok {
		t.Error("expected missing key to report not found")
	}

	ctx.SetMetadata("normalized", true)
	v, ok := ctx.GetMetadata("normalized")
	if !ok || v != true {
		t.Errorf("GetMetadata() = (%v, %v); want (true, true)", v, ok)
	}
}

func TestContext_AddWarning(t *testing.T) {
	ctx := AcquireContext()
	defer ctx.Release()
	ctx.Result = foodex2.AcquireResult()
	defer ctx.Result.Release()

	ctx.AddWarning(foodex2.NewWarning("BR10", foodex2.SeverityLow).Build())

	if len(ctx.Result.AllWarnings()) != 1 {
		t.Errorf("len(Warnings) = %d; want 1", len(ctx.Result.AllWarnings()))
	}
}

func TestContext_AddWarnings(t *testing.T) {
	ctx := AcquireContext()
	defer ctx.Release()
	ctx.Result = foodex2.AcquireResult()
	defer ctx.Result.Release()

	ctx.AddWarnings([]foodex2.Warning{
		foodex2.NewWarning("BR10", foodex2.SeverityLow).Build(),
		foodex2.NewWarning("BR20", foodex2.SeverityHigh).Build(),
	})

	if len(ctx.Result.AllWarnings()) != 2 {
		t.Errorf("len(Warnings) = %d; want 2", len(ctx.Result.AllWarnings()))
	}
}

func TestContext_ShouldStop(t *testing.T) {
	ctx := AcquireContext()
	defer ctx.Release()
	ctx.Result = foodex2.AcquireResult()
	defer ctx.Result.Release()
	ctx.Options = &ContextOptions{MaxWarnings: 1}

	if ctx.ShouldStop() {
		t.Error("should not stop before any warning is added")
	}
	ctx.AddWarning(foodex2.NewWarning("BR10", foodex2.SeverityLow).Build())
	if !ctx.ShouldStop() {
		t.Error("should stop once MaxWarnings is reached")
	}
}

func TestContext_ShouldStop_NoLimit(t *testing.T) {
	ctx := AcquireContext()
	defer ctx.Release()
	ctx.Result = foodex2.AcquireResult()
	defer ctx.Result.Release()

	for i := 0; i < 5; i++ {
		ctx.AddWarning(foodex2.NewWarning("BR10", foodex2.SeverityLow).Build())
	}
	if ctx.ShouldStop() {
		t.Error("should never stop when Options is nil")
	}
}

func TestNewContext(t *testing.T) {
	ctx := NewContext()
	if ctx.OriginalCode != "" {
		t.Errorf("OriginalCode = %q; want empty", ctx.OriginalCode)
	}
	ctx.SetMetadata("k", 1)
	if v, ok := ctx.GetMetadata("k"); !ok || v != 1 {
		t.Errorf("GetMetadata() = (%v, %v)", v, ok)
	}
}
