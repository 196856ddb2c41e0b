package test

import (
	"math/rand"
	"sync"
	"time"
)

const alphanum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	seededMu sync.Mutex
	seeded   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString generates an alphanumeric string whose length falls
// inclusively between minLen and maxLen. Useful for unique emails and
// passwords in registration tests.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	length := minLen
	if maxLen > minLen {
		length += intn(maxLen - minLen + 1)
	}

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphanum[intn(len(alphanum))]
	}
	return string(buf)
}

func intn(n int) int {
	seededMu.Lock()
	defer seededMu.Unlock()
	return seeded.Intn(n)
}
