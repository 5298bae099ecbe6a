package axis

import "testing"

func TestNewLineState_InitialShape(t *testing.T) {
	st, err := NewLineState(9, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.XMin != 0 || st.YMin != 0 {
		t.Errorf("minima must start at zero, got x=%v y=%v", st.XMin, st.YMin)
	}
	if st.NumXTicks != 3 || st.NumYTicks != 3 {
		t.Errorf("expected 3 initial ticks per axis, got x=%d y=%d", st.NumXTicks, st.NumYTicks)
	}
	if st.XMax != 9 || st.YMax != 20 {
		t.Errorf("unexpected maxima: x=%v y=%v", st.XMax, st.YMax)
	}
}

func TestNewLineState_RejectsNonPositiveMax(t *testing.T) {
	if _, err := NewLineState(0, 20); err == nil {
		t.Error("expected error for zero x max")
	}
	if _, err := NewLineState(9, -1); err == nil {
		t.Error("expected error for negative y max")
	}
	if _, err := NewBarState(0); err == nil {
		t.Error("expected error for zero y max")
	}
}

func TestGrowY_RescaleExample(t *testing.T) {
	// Three visible values 10, 20, 15 give {min 0, max 20, 3 ticks}.
	vals := []float64{10, 20, 15, 25, 18}
	st, err := NewBarState(WindowMax(vals, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.YMin != 0 || st.YMax != 20 || st.NumYTicks != 3 {
		t.Fatalf("initial state = {%v, %v, %d}, want {0, 20, 3}", st.YMin, st.YMax, st.NumYTicks)
	}

	// Revealing 25 crosses the max: one more tick, max recomputed over the
	// look-ahead prefix.
	if vals[3] < st.YMax {
		t.Fatal("test data must cross the max")
	}
	st = st.GrowY(WindowMax(vals, 5), 6)
	if st.NumYTicks != 4 {
		t.Errorf("tick count = %d, want 4", st.NumYTicks)
	}
	if st.YMax != 25 {
		t.Errorf("y max = %v, want 25", st.YMax)
	}
	if st.YMin != 0 {
		t.Errorf("y min changed to %v", st.YMin)
	}
}

func TestGrowY_TickCeiling(t *testing.T) {
	st, err := NewBarState(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		st = st.GrowY(float64(20+i), 5)
	}
	if st.NumYTicks != 5 {
		t.Errorf("tick count = %d, want ceiling 5", st.NumYTicks)
	}
	if st.YMax != 29 {
		t.Errorf("y max = %v, want 29", st.YMax)
	}
}

func TestGrow_Monotonic(t *testing.T) {
	st, err := NewLineState(5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prevX, prevY := st.NumXTicks, st.NumYTicks
	for i := 0; i < 8; i++ {
		st = st.GrowY(st.YMax+1, 6)
		st = st.GrowX(st.XMax+1, 6)
		if st.NumYTicks < prevY || st.NumXTicks < prevX {
			t.Fatalf("tick counts shrank at step %d", i)
		}
		prevX, prevY = st.NumXTicks, st.NumYTicks
	}
}

func TestTickSizes(t *testing.T) {
	st := State{XMax: 9, NumXTicks: 3, YMax: 20, NumYTicks: 4}
	if got := st.XTickSize(); got != 3 {
		t.Errorf("x tick size = %v, want 3", got)
	}
	if got := st.YTickSize(); got != 5 {
		t.Errorf("y tick size = %v, want 5", got)
	}
	xr := st.XRange()
	if xr != [3]float64{0, 9, 3} {
		t.Errorf("x range = %v, want [0 9 3]", xr)
	}
	yr := st.YRange()
	if yr != [3]float64{0, 20, 5} {
		t.Errorf("y range = %v, want [0 20 5]", yr)
	}
}
