package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const defaultByteLength = 16

// Generator creates opaque identifiers such as request IDs.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random IDs of a fixed byte length.
type RandomGenerator struct {
	byteLength int
}

func NewRandomGenerator() *RandomGenerator {
	return NewRandomGeneratorWithLength(defaultByteLength)
}

func NewRandomGeneratorWithLength(byteLength int) *RandomGenerator {
	if byteLength <= 0 {
		byteLength = defaultByteLength
	}
	return &RandomGenerator{byteLength: byteLength}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
