package axis

import "testing"

func TestLinspace(t *testing.T) {
	got := Linspace(0, 20, 5)
	want := []float64{0, 5, 10, 15, 20}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if one := Linspace(3, 9, 1); len(one) != 1 || one[0] != 3 {
		t.Errorf("single-point linspace = %v, want [3]", one)
	}
}

func TestSampleIndices(t *testing.T) {
	idx := SampleIndices(50, 10)
	if len(idx) != 10 {
		t.Fatalf("length = %d, want 10", len(idx))
	}
	if idx[0] != 0 || idx[len(idx)-1] != 49 {
		t.Errorf("endpoints = %d, %d, want 0, 49", idx[0], idx[len(idx)-1])
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			t.Fatalf("indices not strictly increasing at %d: %v", i, idx)
		}
	}
}

func TestSampleIndices_CappedAtRows(t *testing.T) {
	idx := SampleIndices(5, 100)
	want := []int{0, 1, 2, 3, 4}
	if len(idx) != len(want) {
		t.Fatalf("length = %d, want %d", len(idx), len(want))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Errorf("idx[%d] = %d, want %d", i, idx[i], want[i])
		}
	}
}

func TestValueLabels_SuppressesFirst(t *testing.T) {
	ticks := ValueLabels(0, 20, 4, false)
	if len(ticks) != 4 {
		t.Fatalf("length = %d, want 4", len(ticks))
	}
	wantPos := []float64{5, 10, 15, 20}
	wantLabel := []string{"5.00", "10.00", "15.00", "20.00"}
	for i := range ticks {
		if ticks[i].Pos != wantPos[i] || ticks[i].Label != wantLabel[i] {
			t.Errorf("tick %d = {%v, %q}, want {%v, %q}",
				i, ticks[i].Pos, ticks[i].Label, wantPos[i], wantLabel[i])
		}
	}
}

func TestValueLabels_Rounded(t *testing.T) {
	ticks := ValueLabels(0, 10, 4, true)
	wantLabel := []string{"2", "5", "7", "10"}
	for i := range ticks {
		if ticks[i].Label != wantLabel[i] {
			t.Errorf("tick %d label = %q, want %q", i, ticks[i].Label, wantLabel[i])
		}
	}
}

func TestIndexLabels_TruncatesAndClamps(t *testing.T) {
	x := []int{2000, 2001, 2002, 2003, 2004}
	ticks := IndexLabels(x, 0, 4, 2)
	if len(ticks) != 2 {
		t.Fatalf("length = %d, want 2", len(ticks))
	}
	if ticks[0].Label != "2002" || ticks[1].Label != "2004" {
		t.Errorf("labels = %q, %q, want 2002, 2004", ticks[0].Label, ticks[1].Label)
	}

	// Positions beyond the data clamp to the last index.
	ticks = IndexLabels(x, 0, 10, 2)
	if ticks[1].Label != "2004" {
		t.Errorf("clamped label = %q, want 2004", ticks[1].Label)
	}
}

func TestWindowMax(t *testing.T) {
	vals := []float64{10, 20, 15, 25, 5}
	tests := []struct {
		hi   int
		want float64
	}{
		{1, 10},
		{2, 20},
		{3, 20},
		{4, 25},
		{100, 25},
	}
	for _, tt := range tests {
		if got := WindowMax(vals, tt.hi); got != tt.want {
			t.Errorf("WindowMax(hi=%d) = %v, want %v", tt.hi, got, tt.want)
		}
	}
}
