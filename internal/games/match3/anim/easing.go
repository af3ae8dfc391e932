package anim

// Easing maps linear progress to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseOutCubic decelerates toward the end.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Overshoot constants for EaseOutBack.
const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// EaseOutBack overshoots past 1 and settles back.
func EaseOutBack(t float64) float64 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
