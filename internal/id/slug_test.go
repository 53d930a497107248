package id

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugPattern = regexp.MustCompile(`^share-[0-9a-z]+-[0-9a-z]{6}$`)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestSlugGenerator_Format(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	gen := NewSlugGenerator(fixedClock(now), nil)

	slug, err := gen.NewSlug()
	require.NoError(t, err)

	assert.Regexp(t, slugPattern, slug)
	assert.True(t, strings.HasPrefix(slug, "share-"+strconv.FormatInt(now.UnixMilli(), 36)+"-"))
}

func TestSlugGenerator_Deterministic(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	random := []byte{0, 1, 10, 35, 36, 71}

	gen := NewSlugGenerator(fixedClock(now), bytes.NewReader(random))
	slug, err := gen.NewSlug()
	require.NoError(t, err)

	// 0->0, 1->1, 10->a, 35->z, 36->0, 71->z
	assert.Equal(t, "share-"+strconv.FormatInt(now.UnixMilli(), 36)+"-01az0z", slug)
}

func TestSlugGenerator_RejectsBiasedBytes(t *testing.T) {
	now := time.UnixMilli(1)
	random := []byte{252, 253, 254, 255, 0, 0, 1, 2, 3, 4, 5, 6}

	gen := NewSlugGenerator(fixedClock(now), bytes.NewReader(random))
	slug, err := gen.NewSlug()
	require.NoError(t, err)

	assert.Equal(t, "share-1-001234", slug)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestSlugGenerator_RandomSourceError(t *testing.T) {
	gen := NewSlugGenerator(nil, failingReader{})

	_, err := gen.NewSlug()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}

func TestSlugGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewSlugGenerator(nil, nil)

	const n = 200
	slugs := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := gen.NewSlug()
			assert.NoError(t, err)
			slugs[i] = s
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, s := range slugs {
		_, dup := seen[s]
		assert.False(t, dup, "duplicate slug %s", s)
		seen[s] = struct{}{}
	}
}

func TestGenerateIDWithPrefix(t *testing.T) {
	a := GenerateIDWithPrefix("tok_")
	b := GenerateIDWithPrefix("tok_")

	assert.True(t, strings.HasPrefix(a, "tok_"))
	assert.Len(t, a, len("tok_")+27)
	assert.NotEqual(t, a, b)
}
