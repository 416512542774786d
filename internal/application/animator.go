package application

// AnimState is the scroll animator's lifecycle state.
type AnimState int

const (
	AnimIdle AnimState = iota
	AnimAnimating
)

// Animator drives a cancellable, frame-stepped scroll toward a target
// offset. It owns no clock: the caller schedules one Step per display
// frame and applies the returned delta, so frames execute strictly
// sequentially. At most one animation runs at a time.
type Animator struct {
	state   AnimState
	stepCap int

	lastOffsetY int
	hasLast     bool
}

// NewAnimator returns an animator clamping each frame's step to
// ±stepCap units, which produces the deceleration toward the target.
func NewAnimator(stepCap int) *Animator {
	return &Animator{stepCap: stepCap}
}

// Animating reports whether an animation is in flight.
func (a *Animator) Animating() bool { return a.state == AnimAnimating }

// Start begins an animation. Returns false while one is already in
// flight, leaving that animation untouched.
func (a *Animator) Start() bool {
	if a.state == AnimAnimating {
		return false
	}
	a.state = AnimAnimating
	a.hasLast = false
	return true
}

// Step evaluates one frame: current is the live scroll offset, targetTop
// the target section's top offset. It returns the clamped delta to
// apply this frame and whether the animation terminated. Termination
// happens on exact arrival or when the offset stopped moving between
// frames (stalled at a scroll boundary); either way the animator resets
// to idle and clears its stall sample.
func (a *Animator) Step(current, targetTop int) (delta int, done bool) {
	if a.state != AnimAnimating {
		return 0, true
	}

	difference := targetTop - current
	if difference == 0 {
		a.finish()
		return 0, true
	}
	if a.hasLast && current == a.lastOffsetY {
		a.finish()
		return 0, true
	}
	a.lastOffsetY = current
	a.hasLast = true

	if difference > a.stepCap {
		difference = a.stepCap
	} else if difference < -a.stepCap {
		difference = -a.stepCap
	}
	return difference, false
}

func (a *Animator) finish() {
	a.state = AnimIdle
	a.hasLast = false
}
