package application

import "testing"

func TestAnimator_AtMostOneAnimation(t *testing.T) {
	a := NewAnimator(49)

	if !a.Start() {
		t.Fatal("first Start should succeed")
	}
	if a.Start() {
		t.Fatal("Start while animating must be a no-op")
	}
	if !a.Animating() {
		t.Fatal("state changed by rejected Start")
	}
}

func TestAnimator_StepClamping(t *testing.T) {
	a := NewAnimator(49)
	a.Start()

	tests := []struct {
		current, target int
		wantDelta       int
	}{
		{0, 500, 49},   // far below target: full step down the page
		{490, 500, 10}, // close: exact remainder
		{600, 500, -49},
		{505, 500, -5},
	}
	for _, tt := range tests {
		a = NewAnimator(49)
		a.Start()
		delta, done := a.Step(tt.current, tt.target)
		if done {
			t.Errorf("Step(%d, %d) terminated early", tt.current, tt.target)
			continue
		}
		if delta != tt.wantDelta {
			t.Errorf("Step(%d, %d) delta = %d, want %d", tt.current, tt.target, delta, tt.wantDelta)
		}
	}
}

func TestAnimator_ArrivalTerminates(t *testing.T) {
	a := NewAnimator(49)
	a.Start()

	if _, done := a.Step(200, 200); !done {
		t.Fatal("exact arrival should terminate")
	}
	if a.Animating() {
		t.Fatal("animator should be idle after arrival")
	}
	if !a.Start() {
		t.Fatal("animator should accept a new animation after arrival")
	}
}

func TestAnimator_StallTerminates(t *testing.T) {
	a := NewAnimator(49)
	a.Start()

	// Scroll boundary: the offset stops moving even though the target
	// was never reached.
	if _, done := a.Step(100, 500); done {
		t.Fatal("first frame should continue")
	}
	if _, done := a.Step(100, 500); !done {
		t.Fatal("unchanged offset should terminate as stalled")
	}
	if a.Animating() {
		t.Fatal("animator should be idle after stall")
	}
}

func TestAnimator_ProgressResetsStallSample(t *testing.T) {
	a := NewAnimator(49)
	a.Start()

	offsets := []int{0, 49, 98, 147}
	for _, off := range offsets {
		if _, done := a.Step(off, 500); done {
			t.Fatalf("moving offset %d should not stall", off)
		}
	}
}

func TestAnimator_StepWhileIdle(t *testing.T) {
	a := NewAnimator(49)

	delta, done := a.Step(0, 500)
	if !done || delta != 0 {
		t.Fatalf("Step while idle = (%d, %v), want (0, true)", delta, done)
	}
}
