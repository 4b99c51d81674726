package utils

// CheckedAdd returns a+b and true when the sum stays within [0, limit].
// Both operands must be non-negative.
func CheckedAdd(a, b, limit int) (int, bool) {
	if a < 0 || b < 0 || a > limit || b > limit-a {
		return 0, false
	}
	return a + b, true
}

// CheckedSub returns a-b and true when the result is non-negative
func CheckedSub(a, b int) (int, bool) {
	if b < 0 || a < b {
		return 0, false
	}
	return a - b, true
}
