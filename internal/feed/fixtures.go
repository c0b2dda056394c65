package feed

import "time"

// Fixture names accepted by Fixture.
const (
	FixtureSteady = "steady"
	FixtureMixed  = "mixed"
)

// Steady returns n successful outcomes with the same delay.
func Steady(n int, delay time.Duration) []Outcome {
	out := make([]Outcome, n)
	for i := range out {
		out[i] = Outcome{Delay: delay, Succeeded: true}
	}
	return out
}

// Mixed returns four outcomes: two normal parts, one that outlasts a 4s
// timeout, and one that fails fast.
func Mixed() []Outcome {
	return []Outcome{
		{Delay: 1000 * time.Millisecond, Succeeded: true},
		{Delay: 2000 * time.Millisecond, Succeeded: true},
		{Delay: 4700 * time.Millisecond, Succeeded: true},
		{Delay: 100 * time.Millisecond, Succeeded: false},
	}
}

// Fixture resolves a fixture name to its outcome sequence for n parts.
func Fixture(name string, n int) ([]Outcome, bool) {
	switch name {
	case FixtureSteady, "":
		return Steady(n, 100*time.Millisecond), true
	case FixtureMixed:
		return Mixed(), true
	default:
		return nil, false
	}
}
