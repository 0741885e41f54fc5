package schnorr

import (
	"crypto/subtle"
	"runtime"
)

// SecureCompare reports whether a and b are equal in time independent of
// their contents
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ZeroizeBytes securely clears a byte slice
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}
