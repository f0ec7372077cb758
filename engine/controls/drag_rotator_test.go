package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/go-gl/mathgl/mgl32"
)

const angleEpsilon = 1e-5

type emission struct {
	first, second common.Radians
}

// recorder collects every emitted pair.
type recorder struct {
	got []emission
}

func (r *recorder) handle(first, second common.Radians) {
	r.got = append(r.got, emission{first, second})
}

func newScenarioRotator(r *recorder) DragRotator {
	return NewDragRotator(WithSurfaceSize(360, 180), WithRotationHandler(r.handle))
}

func assertAngle(t *testing.T, what string, got common.Radians, want float64) {
	t.Helper()
	if !mgl32.FloatEqualThreshold(float32(got), float32(want), angleEpsilon) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestDragRotatorStartsIdle(t *testing.T) {
	d := NewDragRotator()
	if d.Dragging() {
		t.Fatal("new rotator should be idle")
	}
	first, second := d.Angles()
	if first != 0 || second != 0 {
		t.Errorf("Angles() = (%v, %v), want (0, 0)", first, second)
	}
	if got := d.SurfaceSize(); got != (common.Size{Width: 1, Height: 1}) {
		t.Errorf("default SurfaceSize() = %v", got)
	}
}

func TestDragRotatorHorizontalMove(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragStart(common.Point{X: 100, Y: 50})
	d.DragMove(common.Point{X: 130, Y: 50})

	if len(r.got) != 1 {
		t.Fatalf("expected 1 emission, got %d", len(r.got))
	}
	assertAngle(t, "first", r.got[0].first, 0)
	assertAngle(t, "second", r.got[0].second, math.Pi/6)
}

func TestDragRotatorAccumulatesSwapped(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragStart(common.Point{X: 100, Y: 50})
	d.DragMove(common.Point{X: 130, Y: 50})
	d.DragMove(common.Point{X: 130, Y: 80})

	if len(r.got) != 2 {
		t.Fatalf("expected 2 emissions, got %d", len(r.got))
	}
	assertAngle(t, "first", r.got[1].first, math.Pi/3)
	assertAngle(t, "second", r.got[1].second, math.Pi/6)

	first, second := d.Angles()
	if first != r.got[1].first || second != r.got[1].second {
		t.Errorf("Angles() = (%v, %v), want last emission %v", first, second, r.got[1])
	}
}

func TestDragRotatorEndStopsEmission(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragStart(common.Point{X: 100, Y: 50})
	d.DragMove(common.Point{X: 130, Y: 50})
	d.DragMove(common.Point{X: 130, Y: 80})
	d.DragEnd()

	if d.Dragging() {
		t.Fatal("rotator should be idle after DragEnd")
	}
	beforeFirst, beforeSecond := d.Angles()

	d.DragMove(common.Point{X: 200, Y: 200})

	if len(r.got) != 2 {
		t.Errorf("expected no emission after DragEnd, got %d total", len(r.got))
	}
	first, second := d.Angles()
	if first != beforeFirst || second != beforeSecond {
		t.Errorf("angles changed while idle: (%v, %v) -> (%v, %v)", beforeFirst, beforeSecond, first, second)
	}
}

func TestDragRotatorIdleCallsAreNoOps(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragMove(common.Point{X: 10, Y: 10})
	d.DragEnd()
	d.DragEnd()

	if len(r.got) != 0 {
		t.Errorf("expected no emissions while idle, got %v", r.got)
	}
	if d.Dragging() {
		t.Error("DragEnd while idle must not start a drag")
	}
}

func TestDragRotatorRestartResetsReference(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragStart(common.Point{X: 100, Y: 50})
	d.DragStart(common.Point{X: 300, Y: 50})
	d.DragMove(common.Point{X: 330, Y: 50})

	if len(r.got) != 1 {
		t.Fatalf("expected 1 emission, got %d", len(r.got))
	}
	// Measured from the second start point, not the first.
	assertAngle(t, "second", r.got[0].second, math.Pi/6)
	if !d.Dragging() {
		t.Error("rotator should still be dragging")
	}
}

func TestDragRotatorKeepsTotalsAcrossDrags(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragStart(common.Point{X: 0, Y: 0})
	d.DragMove(common.Point{X: 90, Y: 0})
	d.DragEnd()

	d.DragStart(common.Point{X: 500, Y: 500})
	d.DragMove(common.Point{X: 590, Y: 545})

	assertAngle(t, "second", r.got[1].second, math.Pi)
	assertAngle(t, "first", r.got[1].first, math.Pi/2)
}

func TestDragRotatorNegativeDelta(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)

	d.DragStart(common.Point{X: 200, Y: 100})
	d.DragMove(common.Point{X: 110, Y: 55})

	assertAngle(t, "first", r.got[0].first, -math.Pi/2)
	assertAngle(t, "second", r.got[0].second, -math.Pi/2)
}

func TestDragRotatorNilHandler(t *testing.T) {
	d := NewDragRotator(WithSurfaceSize(360, 180))
	d.DragStart(common.Point{X: 0, Y: 0})
	d.DragMove(common.Point{X: 360, Y: 0})

	_, second := d.Angles()
	assertAngle(t, "second", second, 2*math.Pi)
}

func TestDragRotatorSetRotationHandler(t *testing.T) {
	first := &recorder{}
	second := &recorder{}
	d := NewDragRotator(WithSurfaceSize(360, 180), WithRotationHandler(first.handle))

	d.DragStart(common.Point{})
	d.DragMove(common.Point{X: 1})
	d.SetRotationHandler(second.handle)
	d.DragMove(common.Point{X: 2})
	d.SetRotationHandler(nil)
	d.DragMove(common.Point{X: 3})

	if len(first.got) != 1 || len(second.got) != 1 {
		t.Errorf("emissions: first=%d second=%d, want 1 and 1", len(first.got), len(second.got))
	}
}

func TestDragRotatorSurfaceResize(t *testing.T) {
	r := &recorder{}
	d := newScenarioRotator(r)
	d.SetSurfaceSize(common.Size{Width: 720, Height: 360})

	d.DragStart(common.Point{})
	d.DragMove(common.Point{X: 60, Y: 60})

	assertAngle(t, "first", r.got[0].first, math.Pi/3)
	assertAngle(t, "second", r.got[0].second, math.Pi/6)
}

func TestDragRotatorZeroSizeSurface(t *testing.T) {
	r := &recorder{}
	d := NewDragRotator(WithSurfaceSize(0, 0), WithRotationHandler(r.handle))

	d.DragStart(common.Point{})
	d.DragMove(common.Point{X: 5, Y: 0})

	if !math.IsInf(float64(r.got[0].second), 1) {
		t.Errorf("second = %v, want +Inf", r.got[0].second)
	}
	if !math.IsNaN(float64(r.got[0].first)) {
		t.Errorf("first = %v, want NaN", r.got[0].first)
	}
}
