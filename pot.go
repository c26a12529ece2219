package texprep

import "math/bits"

// HighestPowerOfTwo returns the largest power of two not exceeding n,
// or 0 when n <= 0.
//
//	HighestPowerOfTwo(5)    // 4
//	HighestPowerOfTwo(1024) // 1024
func HighestPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}
