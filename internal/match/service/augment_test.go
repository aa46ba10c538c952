package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAugmentNameBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	variants := AugmentName("فلاجيل 500 مجم 20 قرص", rng)

	assert.NotEmpty(t, variants)
	assert.LessOrEqual(t, len(variants), 70)

	seen := make(map[string]struct{})
	for _, v := range variants {
		assert.NotEmpty(t, v)
		_, dup := seen[v]
		assert.False(t, dup, "duplicate variant %q", v)
		seen[v] = struct{}{}
	}
}

func TestAugmentNameStillMatchable(t *testing.T) {
	name := "فلاجيل 500 مجم 20 قرص"
	rng := rand.New(rand.NewSource(7))
	for _, v := range AugmentName(name, rng) {
		if r := TokenSortRatio(Normalize(v), Normalize(name)); r < 40 {
			t.Errorf("variant %q drifted too far from %q (ratio %d)", v, name, r)
		}
	}
}

func TestAugmentNameReproducible(t *testing.T) {
	a := AugmentName("بانادول اكسترا 24 قرص", rand.New(rand.NewSource(42)))
	b := AugmentName("بانادول اكسترا 24 قرص", rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestAugmentNameEmpty(t *testing.T) {
	assert.Nil(t, AugmentName("   ", rand.New(rand.NewSource(1))))
}
