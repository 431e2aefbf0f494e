package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxIntersectsCircle(t *testing.T) {
	box := NewBox(-1, -10, 2, 10) // pipe from y=-10 up to y=0, x in [-1, 1]

	tests := []struct {
		name     string
		x, y, r  float64
		expected bool
	}{
		{"center inside", 0, -5, 0.5, true},
		{"just above top", 0, 0.6, 0.5, false},
		{"grazing top", 0, 0.4, 0.5, true},
		{"touching top exactly", 0, 0.5, 0.5, false},
		{"beside the box", 2, -5, 0.5, false},
		{"near corner", 1.3, 0.3, 0.5, true},
		{"outside corner", 1.4, 0.4, 0.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.IntersectsCircle(tc.x, tc.y, tc.r); got != tc.expected {
				t.Errorf("IntersectsCircle(%v, %v, %v) = %v, expected %v", tc.x, tc.y, tc.r, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if got := ClampF(8.4, 5.0, 8.0); got != 8.0 {
		t.Errorf("ClampF(8.4, 5, 8) = %v, expected 8", got)
	}
}

func TestAxisLock(t *testing.T) {
	playing := LockAllButVertical
	if playing.Has(LockTranslationY) {
		t.Error("vertical translation should be free while playing")
	}
	if !playing.Has(LockTranslationX | LockTranslationZ | LockRotation) {
		t.Errorf("expected x, z and rotation locked, got %s", playing)
	}
	if !LockAll.Has(LockTranslation) {
		t.Error("LockAll should lock translation")
	}
	if got := LockNone.With(LockTranslationY).Without(LockTranslationY); got != LockNone {
		t.Errorf("With/Without round trip = %s", got)
	}
	if LockNone.String() != "none" || LockTranslationX.String() != "tx" {
		t.Errorf("unexpected names %q %q", LockNone.String(), LockTranslationX.String())
	}
}

func TestEdgeRise(t *testing.T) {
	var e Edge
	levels := []bool{false, true, true, true, false, true}
	expected := []bool{false, true, false, false, false, true}

	for i, level := range levels {
		if got := e.Rise(level); got != expected[i] {
			t.Errorf("frame %d: Rise(%v) = %v, expected %v", i, level, got, expected[i])
		}
	}
}

func TestScoreInfoAdd(t *testing.T) {
	s := ScoreInfo{High: 2}
	s.Add(1)
	if s.Current != 1 || s.High != 2 {
		t.Errorf("after first point: %+v", s)
	}
	s.Add(2)
	if s.Current != 3 || s.High != 3 {
		t.Errorf("high score should follow current past the record: %+v", s)
	}
	s.ResetCurrent()
	if s.Current != 0 || s.High != 3 {
		t.Errorf("ResetCurrent should keep the high score: %+v", s)
	}
}
