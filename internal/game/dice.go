package game

import (
	"crypto/rand"
	"encoding/binary"
)

// crypto-rand small helpers; plenty for an adventure
func d6() int {
	return pick(6) + 1
}

func roll2d6() int {
	return d6() + d6()
}

func coinFlip() bool {
	return pick(2) == 0
}

// pick returns a uniform value in [0, n).
func pick(n int) int {
	var b [8]byte
	_, _ = rand.Read(b[:])
	v := binary.LittleEndian.Uint64(b[:])
	return int(v % uint64(n))
}
