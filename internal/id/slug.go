package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	SlugPrefix        = "share-"
	SlugRandomLength  = 6
	base36Alphabet    = "0123456789abcdefghijklmnopqrstuvwxyz"
	base36RejectAbove = 252 // largest multiple of 36 that fits in a byte
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// SlugGenerator builds share slugs of the form share-<base36 unix millis>-<6 base36 chars>.
type SlugGenerator struct {
	now    Clock
	random io.Reader
}

// NewSlugGenerator returns a generator backed by the given clock and random source.
// Nil arguments fall back to time.Now and crypto/rand.
func NewSlugGenerator(now Clock, random io.Reader) *SlugGenerator {
	if now == nil {
		now = time.Now
	}
	if random == nil {
		random = rand.Reader
	}
	return &SlugGenerator{now: now, random: random}
}

func (g *SlugGenerator) NewSlug() (string, error) {
	ts := strconv.FormatInt(g.now().UnixMilli(), 36)

	suffix, err := g.randomBase36(SlugRandomLength)
	if err != nil {
		return "", fmt.Errorf("generate slug: %w", err)
	}

	return SlugPrefix + ts + "-" + suffix, nil
}

func (g *SlugGenerator) randomBase36(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)

	for len(out) < n {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// Bytes at or above 252 would bias the modulo toward the first digits.
			if b >= base36RejectAbove {
				continue
			}
			out = append(out, base36Alphabet[b%36])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}
