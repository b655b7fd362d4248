package mandel

// Escape-time parameters shared by every rendering mode.
const (
	MaxIterations   = 10000
	EscapeThreshold = 2.0
)

// DidNotEscape is returned by Iterate for points whose orbit stays bounded
// through MaxIterations. Escape counts start at 1, which leaves 0 free to
// act as the sentinel.
const DidNotEscape = 0

// Iterate runs z ← z²+c from z = 0 and returns the iteration at which the
// orbit crossed the escape threshold, or DidNotEscape. The squared magnitude
// re²+im² is held against the threshold, so c = 2 already escapes on the
// first step.
func Iterate(c complex128) int {
	var z complex128
	for n := 1; n <= MaxIterations; n++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > EscapeThreshold {
			return n
		}
	}
	return DidNotEscape
}
